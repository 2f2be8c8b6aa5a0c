package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skill_tracker/internal/common/security"
	"skill_tracker/internal/domain/model"
	"skill_tracker/internal/domain/repository/memory"
	"skill_tracker/internal/platform/logger"
	"skill_tracker/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoUser(w http.ResponseWriter, r *http.Request) {
	id, _ := GetUserIDFromContext(r.Context())
	w.Write([]byte(id))
}

func authedRouter(tokens *security.TokenManager, store *memory.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(tokens.Auth))
	r.Use(Authenticator(store.Sessions(), logger.Nop()))
	r.Get("/me", echoUser)
	r.With(RequireAdmin(store.Users(), logger.Nop())).Get("/admin", echoUser)
	return r
}

func get(t *testing.T, h http.Handler, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticator(t *testing.T) {
	tokens := security.NewTokenManager([]byte("secret"), time.Hour)
	store := memory.NewStore()
	h := authedRouter(tokens, store)

	rec := get(t, h, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authorization token required")

	token, session, err := tokens.GenerateToken("user-7")
	require.NoError(t, err)
	rec = get(t, h, "/me", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-7", rec.Body.String())

	other := security.NewTokenManager([]byte("other-secret"), time.Hour)
	forged, _, err := other.GenerateToken("user-7")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(t, h, "/me", forged).Code)

	require.NoError(t, store.Sessions().Revoke(context.Background(), session.TokenID, time.Hour))
	rec = get(t, h, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatorRejectsExpiredToken(t *testing.T) {
	tokens := security.NewTokenManager([]byte("secret"), -time.Minute)
	h := authedRouter(tokens, memory.NewStore())

	token, _, err := tokens.GenerateToken("user-7")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(t, h, "/me", token).Code)
}

func TestRequireAdmin(t *testing.T) {
	tokens := security.NewTokenManager([]byte("secret"), time.Hour)
	store := memory.NewStore()
	store.PutUser(model.User{ID: "member"})
	store.PutUser(model.User{ID: "boss", IsAdmin: true})
	h := authedRouter(tokens, store)

	member, _, err := tokens.GenerateToken("member")
	require.NoError(t, err)
	boss, _, err := tokens.GenerateToken("boss")
	require.NoError(t, err)
	ghost, _, err := tokens.GenerateToken("ghost")
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, get(t, h, "/admin", member).Code)
	assert.Equal(t, http.StatusForbidden, get(t, h, "/admin", ghost).Code)
	rec := get(t, h, "/admin", boss)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "boss", rec.Body.String())
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/widgets/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/widgets/{id}", "418")
	before := testutil.ToFloat64(counter)

	get(t, r, "/widgets/1", "")
	get(t, r, "/widgets/2", "")

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}
