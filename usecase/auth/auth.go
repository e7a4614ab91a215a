package auth

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/daydone/backend/domain"
)

// Token is an issued bearer token with its expiry.
type Token struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UseCase exchanges the configured access key for a signed JWT. With no
// access key configured the service runs unauthenticated and the middleware
// passes everything through.
type UseCase struct {
	accessKey string
	secret    string
	issuer    string
	ttl       time.Duration
	logger    *zap.Logger
}

func New(accessKey, secret, issuer string, ttl time.Duration, logger *zap.Logger) *UseCase {
	if secret == "" {
		secret = accessKey
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		accessKey: accessKey,
		secret:    secret,
		issuer:    issuer,
		ttl:       ttl,
		logger:    logger,
	}
}

// Enabled reports whether authentication is configured.
func (uc *UseCase) Enabled() bool {
	return uc.accessKey != ""
}

// Secret returns the signing secret shared with the middleware.
func (uc *UseCase) Secret() string {
	return uc.secret
}

// IssueToken validates the access key and returns a fresh token.
func (uc *UseCase) IssueToken(ctx context.Context, accessKey string) (*Token, error) {
	if !uc.Enabled() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "authentication is disabled")
	}
	if subtle.ConstantTimeCompare([]byte(accessKey), []byte(uc.accessKey)) != 1 {
		uc.logger.Warn("token request with wrong access key")
		return nil, domain.ErrUnauthorized
	}

	now := time.Now()
	expiresAt := now.Add(uc.ttl)
	claims := jwt.MapClaims{
		"iss": uc.issuer,
		"sub": "owner",
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(uc.secret))
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "sign token", err)
	}

	return &Token{Token: signed, ExpiresAt: expiresAt}, nil
}
