package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/anxornot/QuickQanava/application/services"
	"github.com/anxornot/QuickQanava/pkg/auth"
	"github.com/anxornot/QuickQanava/pkg/common"
	"github.com/anxornot/QuickQanava/pkg/errors"
	"github.com/anxornot/QuickQanava/pkg/utils"
)

// ObserverHandler handles node observer management requests
type ObserverHandler struct {
	observers *services.ObserverService
	errors    *errors.ErrorHandler
	logger    *zap.Logger
}

// NewObserverHandler creates a new observer handler
func NewObserverHandler(observers *services.ObserverService, errorHandler *errors.ErrorHandler, logger *zap.Logger) *ObserverHandler {
	return &ObserverHandler{
		observers: observers,
		errors:    errorHandler,
		logger:    logger,
	}
}

// AttachObserverRequest represents the request body for attaching an observer
type AttachObserverRequest struct {
	Name   string `json:"name" validate:"required,max=100"`
	NodeID string `json:"node_id" validate:"required,uuid"`
	Kind   string `json:"kind,omitempty" validate:"omitempty,oneof=audit metrics"`
}

// AttachObserver handles POST /observers
func (h *ObserverHandler) AttachObserver(w http.ResponseWriter, r *http.Request) {
	var req AttachObserverRequest
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

	if err := h.observers.Attach(r.Context(), userCtx.UserID, req.NodeID, req.Name, req.Kind); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, map[string]string{
		"name":    req.Name,
		"node_id": req.NodeID,
	})
}

// DetachObserver handles DELETE /observers/{name}
func (h *ObserverHandler) DetachObserver(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	userCtx, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		h.errors.HandleStatus(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.observers.Detach(r.Context(), userCtx.UserID, name); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// EnableObserver handles POST /observers/{name}/enable
func (h *ObserverHandler) EnableObserver(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	userCtx, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		h.errors.HandleStatus(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.observers.Enable(r.Context(), userCtx.UserID, name); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DisableObserver handles POST /observers/{name}/disable
func (h *ObserverHandler) DisableObserver(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	userCtx, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		h.errors.HandleStatus(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.observers.Disable(r.Context(), userCtx.UserID, name); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListObservers handles GET /observers
func (h *ObserverHandler) ListObservers(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		h.errors.HandleStatus(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result := h.observers.List(r.Context(), userCtx.UserID)
	common.RespondJSON(w, http.StatusOK, result)
}
