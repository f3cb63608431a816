package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/swolemates/backend/internal/infrastructure/monitor"
	"github.com/swolemates/backend/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
	version string
}

func NewHealthHandler(m *monitor.Monitor, version string, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     m,
		version:     version,
	}
}

// @Summary Liveness probe
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Liveness(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, map[string]string{
		"status":  "alive",
		"version": h.version,
	})
}

// @Summary Readiness probe with dependency status
// @Tags health
// @Router /ready [get]
func (h *HealthHandler) Readiness(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	code := http.StatusOK
	if !status.PostgreSQL {
		code = http.StatusServiceUnavailable
	}
	h.respondSuccess(ctx, code, status)
}
