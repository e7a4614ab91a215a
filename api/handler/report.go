package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/daydone/backend/pkg/httpcontext"
	"github.com/daydone/backend/usecase/report"
)

type ReportHandler struct {
	baseHandler
	uc *report.Service
}

func NewReportHandler(uc *report.Service, adapter *httpcontext.Adapter, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Productivity report
// @Tags reports
// @Router /api/v1/report [get]
func (h *ReportHandler) GetReport(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.respondSuccess(ctx, http.StatusOK, h.uc.Build(stdCtx))
}

// @Summary Download the report as JSON
// @Tags reports
// @Router /api/v1/report/export [get]
func (h *ReportHandler) ExportReport(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	payload, filename, err := h.uc.ExportReport(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondFile(ctx, "application/json", filename, payload)
}

// @Summary Download the report as PDF
// @Tags reports
// @Router /api/v1/report/pdf [get]
func (h *ReportHandler) ExportPDF(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	payload, filename, err := h.uc.PDF(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondFile(ctx, "application/pdf", filename, payload)
}
