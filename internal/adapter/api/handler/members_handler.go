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

// MembersHandler exposes team membership operations over HTTP.
type MembersHandler struct {
	members *usecase.MemberService
	logger  *slog.Logger
}

// NewMembersHandler creates a new MembersHandler.
func NewMembersHandler(members *usecase.MemberService, logger *slog.Logger) *MembersHandler {
	return &MembersHandler{members: members, logger: logger}
}

// List handles GET /team.
func (h *MembersHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	members, err := h.members.List(r.Context(), actor, actor.TenantID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, members)
}

type addMemberRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

// Add handles POST /team.
func (h *MembersHandler) Add(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	member, err := h.members.Add(r.Context(), actor, actor.TenantID, req.UserID, domain.Role(req.Role))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, member)
}

// Remove handles DELETE /team/{userID}.
func (h *MembersHandler) Remove(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	if err := h.members.Remove(r.Context(), actor, actor.TenantID, userID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

// ChangeRole handles PUT /team/{userID}/role.
func (h *MembersHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	var req changeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.members.ChangeRole(r.Context(), actor, actor.TenantID, userID, domain.Role(req.Role)); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
