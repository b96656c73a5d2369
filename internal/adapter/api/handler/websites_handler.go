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

// WebsitesHandler exposes website lifecycle operations over HTTP.
type WebsitesHandler struct {
	websites *usecase.WebsiteService
	logger   *slog.Logger
}

// NewWebsitesHandler creates a new WebsitesHandler.
func NewWebsitesHandler(websites *usecase.WebsiteService, logger *slog.Logger) *WebsitesHandler {
	return &WebsitesHandler{websites: websites, logger: logger}
}

type createWebsiteRequest struct {
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
}

// Create handles POST /websites.
func (h *WebsitesHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createWebsiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	site, err := h.websites.Create(r.Context(), actor, actor.TenantID,
		usecase.WebsiteDraft{Name: req.Name, Subdomain: req.Subdomain})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, site)
}

// List handles GET /websites.
func (h *WebsitesHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sites, err := h.websites.List(r.Context(), actor, actor.TenantID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, sites)
}

// Delete handles DELETE /websites/{websiteID}.
func (h *WebsitesHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.websites.Delete(r.Context(), actor, actor.TenantID, websiteID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
