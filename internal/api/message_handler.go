package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waryix/FightFind/internal/domain"
	"github.com/waryix/FightFind/internal/middleware"
	"github.com/waryix/FightFind/pkg/response"
)

type MessageHandler struct {
	msgService *domain.MessageService
	logger     *zap.Logger
}

func NewMessageHandler(msgService *domain.MessageService, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{
		msgService: msgService,
		logger:     logger,
	}
}

// ListMessages handles GET /connections/{id}/messages. Clients poll this
// endpoint; there is no push channel.
func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	connID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid connection id")
		return
	}

	messages, err := h.msgService.ListMessages(r.Context(), connID, userID)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	response.OK(w, messages)
}

// SendMessage handles POST /connections/{id}/messages
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	connID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid connection id")
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request")
		return
	}

	msg, err := h.msgService.SendMessage(r.Context(), connID, userID, req.Content)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	response.Created(w, msg)
}

// MarkRead handles POST /connections/{id}/messages/read
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	connID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid connection id")
		return
	}

	updated, err := h.msgService.MarkRead(r.Context(), connID, userID)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	response.OK(w, map[string]int{"updated": updated})
}
