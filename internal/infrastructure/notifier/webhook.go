package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/daydone/backend/domain"
)

// Webhook POSTs notifications as JSON to a configured endpoint, standing in
// for the browser notification surface.
type Webhook struct {
	client  *fasthttp.Client
	url     string
	timeout time.Duration
	logger  *zap.Logger
}

func NewWebhook(url string, timeout time.Duration, logger *zap.Logger) *Webhook {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Webhook{
		client:  &fasthttp.Client{},
		url:     url,
		timeout: timeout,
		logger:  logger,
	}
}

func (n *Webhook) Send(ctx context.Context, notification domain.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(n.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(payload)

	if err := n.client.DoTimeout(req, resp, n.timeout); err != nil {
		return fmt.Errorf("webhook post: %w", err)
	}
	if code := resp.StatusCode(); code >= 300 {
		return fmt.Errorf("webhook post: unexpected status %d", code)
	}

	n.logger.Debug("notification delivered",
		zap.String("tag", notification.Tag))
	return nil
}
