package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Pushkar3232/SitePilot-sub001/internal/adapter/api/middleware"
	"github.com/Pushkar3232/SitePilot-sub001/internal/domain"
	"github.com/Pushkar3232/SitePilot-sub001/internal/usecase"
)

// ComponentsHandler exposes component ordering operations over HTTP.
type ComponentsHandler struct {
	components *usecase.ComponentService
	logger     *slog.Logger
}

// NewComponentsHandler creates a new ComponentsHandler.
func NewComponentsHandler(components *usecase.ComponentService, logger *slog.Logger) *ComponentsHandler {
	return &ComponentsHandler{components: components, logger: logger}
}

type insertComponentRequest struct {
	Type     string           `json:"type"`
	Props    json.RawMessage  `json:"props,omitempty"`
	Position *positionRequest `json:"position,omitempty"`
}

// Insert handles POST /pages/{pageID}/components.
func (h *ComponentsHandler) Insert(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	pageID, err := uuid.Parse(chi.URLParam(r, "pageID"))
	if err != nil {
		http.Error(w, "Invalid page ID", http.StatusBadRequest)
		return
	}

	var req insertComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	pos, err := req.Position.toPosition()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	component, err := h.components.Insert(r.Context(), actor, actor.TenantID, pageID,
		usecase.ComponentDraft{Type: domain.ComponentType(req.Type), Props: req.Props}, pos)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, component)
}

// List handles GET /pages/{pageID}/components.
func (h *ComponentsHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	pageID, err := uuid.Parse(chi.URLParam(r, "pageID"))
	if err != nil {
		http.Error(w, "Invalid page ID", http.StatusBadRequest)
		return
	}

	components, err := h.components.ListOrdered(r.Context(), actor, actor.TenantID, pageID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, components)
}

type moveComponentRequest struct {
	Position *positionRequest `json:"position"`
}

// Move handles POST /components/{componentID}/move.
func (h *ComponentsHandler) Move(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	componentID, err := uuid.Parse(chi.URLParam(r, "componentID"))
	if err != nil {
		http.Error(w, "Invalid component ID", http.StatusBadRequest)
		return
	}

	var req moveComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	pos, err := req.Position.toPosition()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.components.Move(r.Context(), actor, actor.TenantID, componentID, pos); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type reparentComponentRequest struct {
	PageID   uuid.UUID        `json:"page_id"`
	Position *positionRequest `json:"position,omitempty"`
}

// Reparent handles POST /components/{componentID}/reparent.
func (h *ComponentsHandler) Reparent(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	componentID, err := uuid.Parse(chi.URLParam(r, "componentID"))
	if err != nil {
		http.Error(w, "Invalid component ID", http.StatusBadRequest)
		return
	}

	var req reparentComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	pos, err := req.Position.toPosition()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.components.MoveToPage(r.Context(), actor, actor.TenantID, componentID, req.PageID, pos); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reorder handles POST /pages/{pageID}/components/reorder.
func (h *ComponentsHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	pageID, err := uuid.Parse(chi.URLParam(r, "pageID"))
	if err != nil {
		http.Error(w, "Invalid page ID", http.StatusBadRequest)
		return
	}

	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.components.Reorder(r.Context(), actor, actor.TenantID, pageID, req.Order); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /components/{componentID}.
func (h *ComponentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	componentID, err := uuid.Parse(chi.URLParam(r, "componentID"))
	if err != nil {
		http.Error(w, "Invalid component ID", http.StatusBadRequest)
		return
	}

	if err := h.components.Delete(r.Context(), actor, actor.TenantID, componentID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
