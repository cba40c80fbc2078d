package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anxornot/QuickQanava/application/commands"
	"github.com/anxornot/QuickQanava/application/commands/bus"
	"github.com/anxornot/QuickQanava/pkg/auth"
	"github.com/anxornot/QuickQanava/pkg/common"
	"github.com/anxornot/QuickQanava/pkg/errors"
	"github.com/anxornot/QuickQanava/pkg/utils"
)

// EdgeHandler handles edge-related HTTP requests
type EdgeHandler struct {
	commandBus *bus.CommandBus
	errors     *errors.ErrorHandler
	logger     *zap.Logger
}

// NewEdgeHandler creates a new edge handler
func NewEdgeHandler(commandBus *bus.CommandBus, errorHandler *errors.ErrorHandler, logger *zap.Logger) *EdgeHandler {
	return &EdgeHandler{
		commandBus: commandBus,
		errors:     errorHandler,
		logger:     logger,
	}
}

// CreateEdgeRequest represents the request body for creating an edge
type CreateEdgeRequest struct {
	SourceID      string `json:"source_id" validate:"required,uuid"`
	DestinationID string `json:"destination_id" validate:"required,uuid"`
}

// CreateEdgeResponse represents the response for creating an edge
type CreateEdgeResponse struct {
	ID            string `json:"id"`
	SourceID      string `json:"source_id"`
	DestinationID string `json:"destination_id"`
}

// CreateEdge handles POST /edges
func (h *EdgeHandler) CreateEdge(w http.ResponseWriter, r *http.Request) {
	var req CreateEdgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userCtx, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		h.errors.HandleStatus(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	edgeID := uuid.New().String()

	cmd := commands.InsertEdgeCommand{
		OwnerID:       userCtx.UserID,
		EdgeID:        edgeID,
		SourceID:      req.SourceID,
		DestinationID: req.DestinationID,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, CreateEdgeResponse{
		ID:            edgeID,
		SourceID:      req.SourceID,
		DestinationID: req.DestinationID,
	})
}

// DeleteEdge handles DELETE /edges/{edgeID}
func (h *EdgeHandler) DeleteEdge(w http.ResponseWriter, r *http.Request) {
	edgeID := chi.URLParam(r, "edgeID")
	if _, err := uuid.Parse(edgeID); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Invalid edge ID format")
		return
	}

	userCtx, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		h.errors.HandleStatus(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cmd := commands.RemoveEdgeCommand{
		OwnerID: userCtx.UserID,
		EdgeID:  edgeID,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
