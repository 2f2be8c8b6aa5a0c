package middleware

import (
	"context"
	"errors"
	"net/http"

	"skill_tracker/internal/common"
	"skill_tracker/internal/common/security"
	"skill_tracker/internal/domain/model"
	"skill_tracker/internal/domain/repository"
	"skill_tracker/internal/platform/logger"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	SessionCtxKey contextKey = "session"
)

// UserLookup loads the current user row for admin checks.
type UserLookup interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// Authenticator requires a verified, unrevoked session token. It must run
// after jwtauth.Verifier.
func Authenticator(sessions repository.SessionRepository, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				if errors.Is(err, jwtauth.ErrNoTokenFound) {
					common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
				} else {
					common.RespondWithError(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
				}
				return
			}
			if token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			userID, err := security.GetUserIDFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
				return
			}
			tokenID, err := security.GetTokenIDFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
				return
			}

			revoked, err := sessions.IsRevoked(r.Context(), tokenID)
			if err != nil {
				common.RespondWithServiceError(w, r, log, err)
				return
			}
			if revoked {
				common.RespondWithError(w, http.StatusUnauthorized, "Session has been logged out")
				return
			}

			session := &security.Session{UserID: userID, TokenID: tokenID, ExpiresAt: token.Expiration()}
			ctx := context.WithValue(r.Context(), SessionCtxKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin re-reads the caller's user row on every request so that
// revoking admin rights takes effect immediately.
func RequireAdmin(users UserLookup, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserIDFromContext(r.Context())
			if !ok {
				common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
				return
			}
			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					common.RespondWithError(w, http.StatusForbidden, "Admin access required")
					return
				}
				common.RespondWithServiceError(w, r, log, err)
				return
			}
			if !user.IsAdmin {
				common.RespondWithError(w, http.StatusForbidden, "Admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func SessionFromContext(ctx context.Context) (*security.Session, bool) {
	s, ok := ctx.Value(SessionCtxKey).(*security.Session)
	return s, ok && s != nil
}

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	s, ok := SessionFromContext(ctx)
	if !ok {
		return "", false
	}
	return s.UserID, true
}
