package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/swolemates/backend/domain"
	"github.com/swolemates/backend/pkg/httpcontext"
	gymUC "github.com/swolemates/backend/usecase/gym"
)

type GymHandler struct {
	baseHandler
	uc            *gymUC.UseCase
	defaultRadius float64
}

func NewGymHandler(uc *gymUC.UseCase, defaultRadiusKm float64, adapter *httpcontext.Adapter, logger *zap.Logger) *GymHandler {
	return &GymHandler{
		baseHandler:   newBaseHandler(adapter, logger),
		uc:            uc,
		defaultRadius: defaultRadiusKm,
	}
}

// @Summary Gyms near a location
// @Tags gyms
// @Router /api/v1/gyms/nearby [get]
func (h *GymHandler) GetNearby(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	origin := domain.Point{
		Longitude: parseFloat(string(ctx.QueryArgs().Peek("lng")), 0),
		Latitude:  parseFloat(string(ctx.QueryArgs().Peek("lat")), 0),
	}
	radius := parseFloat(string(ctx.QueryArgs().Peek("max_distance")), h.defaultRadius)
	limit := parseInt(string(ctx.QueryArgs().Peek("limit")), 0)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	gyms, err := h.uc.Nearby(stdCtx, origin, radius, limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, gyms)
}

// @Summary Gym details
// @Tags gyms
// @Router /api/v1/gyms/{id} [get]
func (h *GymHandler) GetGym(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing gym id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	gym, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, gym)
}
