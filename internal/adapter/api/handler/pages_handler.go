package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Pushkar3232/SitePilot-sub001/internal/adapter/api/middleware"
	"github.com/Pushkar3232/SitePilot-sub001/internal/usecase"
)

// PagesHandler exposes page ordering operations over HTTP.
type PagesHandler struct {
	pages  *usecase.PageService
	logger *slog.Logger
}

// NewPagesHandler creates a new PagesHandler.
func NewPagesHandler(pages *usecase.PageService, logger *slog.Logger) *PagesHandler {
	return &PagesHandler{pages: pages, logger: logger}
}

type insertPageRequest struct {
	Title    string           `json:"title"`
	Slug     string           `json:"slug"`
	Position *positionRequest `json:"position,omitempty"`
}

// Insert handles POST /websites/{websiteID}/pages.
func (h *PagesHandler) Insert(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	websiteID, err := uuid.Parse(chi.URLParam(r, "websiteID"))
	if err != nil {
		http.Error(w, "Invalid website ID", http.StatusBadRequest)
		return
	}

	var req insertPageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	pos, err := req.Position.toPosition()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, err := h.pages.Insert(r.Context(), actor, actor.TenantID, websiteID,
		usecase.PageDraft{Title: req.Title, Slug: req.Slug}, pos)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, page)
}

// List handles GET /websites/{websiteID}/pages.
func (h *PagesHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	websiteID, err := uuid.Parse(chi.URLParam(r, "websiteID"))
	if err != nil {
		http.Error(w, "Invalid website ID", http.StatusBadRequest)
		return
	}

	pages, err := h.pages.ListOrdered(r.Context(), actor, actor.TenantID, websiteID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, pages)
}

type movePageRequest struct {
	Position *positionRequest `json:"position"`
}

// Move handles POST /pages/{pageID}/move.
func (h *PagesHandler) Move(w http.ResponseWriter, r *http.Request) {
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

	var req movePageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	pos, err := req.Position.toPosition()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.pages.Move(r.Context(), actor, actor.TenantID, pageID, pos); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type reorderRequest struct {
	Order []uuid.UUID `json:"order"`
}

// Reorder handles POST /websites/{websiteID}/pages/reorder.
func (h *PagesHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	websiteID, err := uuid.Parse(chi.URLParam(r, "websiteID"))
	if err != nil {
		http.Error(w, "Invalid website ID", http.StatusBadRequest)
		return
	}

	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.pages.Reorder(r.Context(), actor, actor.TenantID, websiteID, req.Order); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetHome handles POST /pages/{pageID}/home.
func (h *PagesHandler) SetHome(w http.ResponseWriter, r *http.Request) {
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

	if err := h.pages.SetHome(r.Context(), actor, actor.TenantID, pageID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /pages/{pageID}.
func (h *PagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.pages.Delete(r.Context(), actor, actor.TenantID, pageID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
