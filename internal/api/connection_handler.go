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

type ConnectionHandler struct {
	connService *domain.ConnectionService
	logger      *zap.Logger
}

func NewConnectionHandler(connService *domain.ConnectionService, logger *zap.Logger) *ConnectionHandler {
	return &ConnectionHandler{
		connService: connService,
		logger:      logger,
	}
}

// CreateConnection handles POST /connections. The authenticated caller is
// the requester.
func (h *ConnectionHandler) CreateConnection(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	var req struct {
		ReceiverID string  `json:"receiver_id"`
		Message    *string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request")
		return
	}

	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		response.BadRequest(w, "invalid receiver id")
		return
	}

	conn, err := h.connService.CreateConnection(r.Context(), userID, receiverID, req.Message)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	response.Created(w, conn)
}

// ListConnections handles GET /connections: every connection the caller is
// a party to, any state, enriched with the other party.
func (h *ConnectionHandler) ListConnections(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	conns, err := h.connService.ListConnections(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	response.OK(w, conns)
}

// UpdateStatus handles PATCH /connections/{id}
func (h *ConnectionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
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
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request")
		return
	}

	conn, err := h.connService.UpdateStatus(r.Context(), connID, domain.ConnectionStatus(req.Status), userID)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	response.OK(w, conn)
}
