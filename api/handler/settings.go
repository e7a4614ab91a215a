package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/daydone/backend/api/transport"
	"github.com/daydone/backend/domain"
	"github.com/daydone/backend/pkg/httpcontext"
	"github.com/daydone/backend/usecase/settings"
)

type SettingsHandler struct {
	baseHandler
	uc *settings.Service
}

func NewSettingsHandler(uc *settings.Service, adapter *httpcontext.Adapter, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Current settings
// @Tags settings
// @Router /api/v1/settings [get]
func (h *SettingsHandler) GetSettings(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.respondSuccess(ctx, http.StatusOK, h.uc.Get(stdCtx))
}

// @Summary Change theme
// @Tags settings
// @Router /api/v1/settings/theme [put]
func (h *SettingsHandler) SetTheme(ctx *fasthttp.RequestCtx) {
	var req transport.ThemeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.SetTheme(stdCtx, req.Theme); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, h.uc.Get(stdCtx))
}

// @Summary Toggle notifications
// @Tags settings
// @Router /api/v1/settings/notifications [put]
func (h *SettingsHandler) SetNotifications(ctx *fasthttp.RequestCtx) {
	var req transport.NotificationsRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.SetNotificationsEnabled(stdCtx, req.Enabled); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, h.uc.Get(stdCtx))
}

// @Summary Record the notification permission decision
// @Tags settings
// @Router /api/v1/settings/permission [put]
func (h *SettingsHandler) SetPermission(ctx *fasthttp.RequestCtx) {
	var req transport.PermissionRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.SetPermission(stdCtx, req.Permission); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, h.uc.Get(stdCtx))
}
