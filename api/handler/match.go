package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/swolemates/backend/api/transport"
	"github.com/swolemates/backend/domain"
	"github.com/swolemates/backend/pkg/httpcontext"
	matchingUC "github.com/swolemates/backend/usecase/matching"
)

type MatchHandler struct {
	baseHandler
	uc *matchingUC.UseCase
}

func NewMatchHandler(uc *matchingUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *MatchHandler {
	return &MatchHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Ranked candidate partners
// @Tags matching
// @Router /api/v1/candidates [get]
func (h *MatchHandler) GetCandidates(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	limit := parseInt(string(ctx.QueryArgs().Peek("limit")), 0)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	candidates, err := h.uc.Candidates(stdCtx, userID, limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, candidates)
}

// @Summary Submit a swipe decision
// @Tags matching
// @Router /api/v1/swipe [post]
func (h *MatchHandler) Swipe(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.SwipeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	if req.TargetUserID == "" {
		h.respondInvalid(ctx, "missing target_user_id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.Swipe(stdCtx, userID, req.TargetUserID, domain.SwipeAction(req.Action))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}

// @Summary List mutual matches
// @Tags matching
// @Router /api/v1/matches [get]
func (h *MatchHandler) GetMatches(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	matches, err := h.uc.Matches(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, matches)
}
