package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Pushkar3232/SitePilot-sub001/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError is the single boundary translating internal error values into
// HTTP responses. Wrong-tenant, not-a-member and permission-denied all
// collapse into the same generic not-found here, so a response never reveals
// whether a resource exists in someone else's tenant. The distinction
// survives in logs and metrics only.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var planErr *domain.PlanLimitError

	switch {
	case errors.As(err, &planErr):
		writeJSON(w, http.StatusPaymentRequired, map[string]any{
			"error":    "plan_limit_exceeded",
			"resource": planErr.Resource,
			"current":  planErr.Current,
			"limit":    planErr.Limit,
		})
	case errors.Is(err, domain.ErrWrongTenant),
		errors.Is(err, domain.ErrNotAMember),
		errors.Is(err, domain.ErrPermissionDenied),
		errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, domain.ErrSiblingNotFound):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "sibling not found in parent"})
	case errors.Is(err, domain.ErrSelfReferential):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "position references the entity being moved"})
	case errors.Is(err, domain.ErrOwnerImmutable):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "tenant owner membership cannot be changed"})
	default:
		logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
