package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anxornot/QuickQanava/application/commands"
	"github.com/anxornot/QuickQanava/application/commands/bus"
	"github.com/anxornot/QuickQanava/application/queries"
	querybus "github.com/anxornot/QuickQanava/application/queries/bus"
	"github.com/anxornot/QuickQanava/pkg/auth"
	"github.com/anxornot/QuickQanava/pkg/common"
	"github.com/anxornot/QuickQanava/pkg/errors"
	"github.com/anxornot/QuickQanava/pkg/utils"
)

// NodeHandler handles node-related HTTP requests
type NodeHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *errors.ErrorHandler
	logger     *zap.Logger
}

// NewNodeHandler creates a new node handler
func NewNodeHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *errors.ErrorHandler,
	logger *zap.Logger,
) *NodeHandler {
	return &NodeHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errorHandler,
		logger:     logger,
	}
}

// CreateNodeRequest represents the request body for creating a node
type CreateNodeRequest struct {
	Label string `json:"label,omitempty" validate:"omitempty,max=200"`
}

// CreateNodeResponse represents the response for creating a node
type CreateNodeResponse struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

// SetLabelRequest represents the request body for updating a label
type SetLabelRequest struct {
	Label string `json:"label" validate:"max=200"`
}

// CreateNode handles POST /nodes
func (h *NodeHandler) CreateNode(w http.ResponseWriter, r *http.Request) {
	var req CreateNodeRequest
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

	// Node identity is decided here so the response can carry it
	nodeID := uuid.New().String()

	cmd := commands.InsertNodeCommand{
		OwnerID: userCtx.UserID,
		NodeID:  nodeID,
		Label:   req.Label,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, CreateNodeResponse{
		ID:    nodeID,
		Label: req.Label,
	})
}

// GetNode handles GET /nodes/{nodeID}
func (h *NodeHandler) GetNode(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")
	if _, err := uuid.Parse(nodeID); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Invalid node ID format")
		return
	}

	userCtx, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		h.errors.HandleStatus(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	query := queries.GetNodeQuery{
		OwnerID: userCtx.UserID,
		NodeID:  nodeID,
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// SetNodeLabel handles PUT /nodes/{nodeID}/label
func (h *NodeHandler) SetNodeLabel(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")
	if _, err := uuid.Parse(nodeID); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Invalid node ID format")
		return
	}

	var req SetLabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userCtx, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		h.errors.HandleStatus(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cmd := commands.SetNodeLabelCommand{
		OwnerID: userCtx.UserID,
		NodeID:  nodeID,
		Label:   req.Label,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{
		"id":    nodeID,
		"label": req.Label,
	})
}

// DeleteNode handles DELETE /nodes/{nodeID}
func (h *NodeHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")
	if _, err := uuid.Parse(nodeID); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Invalid node ID format")
		return
	}

	userCtx, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		h.errors.HandleStatus(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cmd := commands.RemoveNodeCommand{
		OwnerID: userCtx.UserID,
		NodeID:  nodeID,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListNodes handles GET /nodes
func (h *NodeHandler) ListNodes(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		h.errors.HandleStatus(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	params := common.ExtractPaginationParams(r)

	query := queries.ListNodesQuery{
		OwnerID:  userCtx.UserID,
		Page:     params.Page,
		PageSize: params.PageSize,
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
