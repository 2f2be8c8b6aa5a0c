package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"skill_tracker/internal/api/middleware"
	"skill_tracker/internal/common"

	"github.com/go-chi/chi/v5"
)

// requireUserID writes 401 and returns false when the request carries no
// authenticated user.
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return userID, true
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, common.ErrBadRequest)
	}
	return id, nil
}
