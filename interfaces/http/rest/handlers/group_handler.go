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

// GroupHandler handles group-related HTTP requests
type GroupHandler struct {
	commandBus *bus.CommandBus
	errors     *errors.ErrorHandler
	logger     *zap.Logger
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(commandBus *bus.CommandBus, errorHandler *errors.ErrorHandler, logger *zap.Logger) *GroupHandler {
	return &GroupHandler{
		commandBus: commandBus,
		errors:     errorHandler,
		logger:     logger,
	}
}

// CreateGroupRequest represents the request body for creating a group
type CreateGroupRequest struct {
	Label string `json:"label,omitempty" validate:"omitempty,max=200"`
}

// CreateGroupResponse represents the response for creating a group
type CreateGroupResponse struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

// CreateGroup handles POST /groups
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
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

	groupID := uuid.New().String()

	cmd := commands.InsertGroupCommand{
		OwnerID: userCtx.UserID,
		GroupID: groupID,
		Label:   req.Label,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, CreateGroupResponse{
		ID:    groupID,
		Label: req.Label,
	})
}

// DeleteGroup handles DELETE /groups/{groupID}. Member nodes survive the
// group and stay in the graph.
func (h *GroupHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	if _, err := uuid.Parse(groupID); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Invalid group ID format")
		return
	}

	userCtx, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		h.errors.HandleStatus(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cmd := commands.RemoveGroupCommand{
		OwnerID: userCtx.UserID,
		GroupID: groupID,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetGroupLabel handles PUT /groups/{groupID}/label
func (h *GroupHandler) SetGroupLabel(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	if _, err := uuid.Parse(groupID); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Invalid group ID format")
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

	cmd := commands.SetGroupLabelCommand{
		OwnerID: userCtx.UserID,
		GroupID: groupID,
		Label:   req.Label,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{
		"id":    groupID,
		"label": req.Label,
	})
}

// GroupNode handles PUT /groups/{groupID}/nodes/{nodeID}
func (h *GroupHandler) GroupNode(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	nodeID := chi.URLParam(r, "nodeID")
	if _, err := uuid.Parse(groupID); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Invalid group ID format")
		return
	}
	if _, err := uuid.Parse(nodeID); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Invalid node ID format")
		return
	}

	userCtx, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		h.errors.HandleStatus(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cmd := commands.GroupNodeCommand{
		OwnerID: userCtx.UserID,
		GroupID: groupID,
		NodeID:  nodeID,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UngroupNode handles DELETE /groups/{groupID}/nodes/{nodeID}
func (h *GroupHandler) UngroupNode(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	nodeID := chi.URLParam(r, "nodeID")
	if _, err := uuid.Parse(groupID); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Invalid group ID format")
		return
	}
	if _, err := uuid.Parse(nodeID); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Invalid node ID format")
		return
	}

	userCtx, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		h.errors.HandleStatus(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cmd := commands.UngroupNodeCommand{
		OwnerID: userCtx.UserID,
		GroupID: groupID,
		NodeID:  nodeID,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
