package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/swolemates/backend/api/transport"
	"github.com/swolemates/backend/pkg/httpcontext"
	chatUC "github.com/swolemates/backend/usecase/chat"
)

type ChatHandler struct {
	baseHandler
	uc *chatUC.UseCase
}

func NewChatHandler(uc *chatUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Conversation history with another user
// @Tags chat
// @Router /api/v1/messages/{user_id} [get]
func (h *ChatHandler) GetConversation(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	otherID, _ := ctx.UserValue("user_id").(string)
	if otherID == "" {
		h.respondInvalid(ctx, "missing user id")
		return
	}
	limit := parseInt(string(ctx.QueryArgs().Peek("limit")), 0)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	messages, err := h.uc.Conversation(stdCtx, userID, otherID, limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, messages)
}

// @Summary Send a message to a matched user
// @Tags chat
// @Router /api/v1/messages [post]
func (h *ChatHandler) SendMessage(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.MessageRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	if req.ReceiverID == "" {
		h.respondInvalid(ctx, "missing receiver_id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	message, err := h.uc.Send(stdCtx, userID, req.ReceiverID, req.Content)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, message)
}

// @Summary Mark a conversation as read
// @Tags chat
// @Router /api/v1/messages/{user_id}/read [put]
func (h *ChatHandler) MarkRead(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	otherID, _ := ctx.UserValue("user_id").(string)
	if otherID == "" {
		h.respondInvalid(ctx, "missing user id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.MarkRead(stdCtx, userID, otherID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]bool{"read": true})
}
