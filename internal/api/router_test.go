package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"skill_tracker/internal/app/advisor"
	"skill_tracker/internal/app/service"
	"skill_tracker/internal/common/security"
	"skill_tracker/internal/domain/model"
	"skill_tracker/internal/domain/repository/memory"
	"skill_tracker/internal/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const identitySecret = "idp-secret"

type testServer struct {
	t     *testing.T
	store *memory.Store
	srv   *httptest.Server
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := logger.Nop()
	store := memory.NewStore()
	tokens := security.NewTokenManager([]byte("session-secret"), time.Hour)
	identity := security.NewIdentityVerifier([]byte(identitySecret), "")
	advisorClient := advisor.NewOpenAIClient("", "http://127.0.0.1:1", "gpt-4o", nil, log)

	svc := Services{
		Auth:            service.NewAuthService(store.Users(), store.Sessions(), tokens, identity),
		Profile:         service.NewProfileService(store.Users()),
		Skills:          service.NewSkillService(store.Skills(), nil, log),
		Badges:          service.NewBadgeService(store.Badges(), store.Users()),
		Recommendations: service.NewRecommendationService(store.Recommendations(), store.Users(), store.Skills()),
		Challenges:      service.NewChallengeService(store.Challenges()),
		Leaderboard:     service.NewLeaderboardService(store.Users()),
		Coding:          service.NewCodingService(store.Coding(), store.Users(), store.Skills(), advisorClient, nil, log),
		Career:          service.NewCareerService(store.Users(), store.Skills(), advisorClient),
		Admin:           service.NewAdminService(store.Users()),
	}
	router := NewRouter(RouterConfig{
		Tokens:         tokens,
		Sessions:       store.Sessions(),
		Users:          store.Users(),
		AllowedOrigins: []string{"http://localhost:5173"},
		Gatherer:       prometheus.NewRegistry(),
		Log:            log,
	}, svc)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testServer{t: t, store: store, srv: srv}
}

// login signs an identity token for subject and exchanges it for a session
// token.
func (s *testServer) login(subject string) string {
	s.t.Helper()
	idToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, security.IdentityClaims{
		Email: subject + "@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString([]byte(identitySecret))
	require.NoError(s.t, err)

	resp, body := s.do(http.MethodPost, "/api/login", "", map[string]string{"idToken": idToken})
	require.Equal(s.t, http.StatusOK, resp.StatusCode, string(body))
	var auth service.AuthResponse
	require.NoError(s.t, json.Unmarshal(body, &auth))
	require.NotEmpty(s.t, auth.Token)
	assert.Equal(s.t, subject, auth.User.ID)
	return auth.Token
}

func (s *testServer) do(method, path, token string, payload any) (*http.Response, []byte) {
	s.t.Helper()
	var body *bytes.Reader
	switch p := payload.(type) {
	case nil:
		body = bytes.NewReader(nil)
	case string:
		body = bytes.NewReader([]byte(p))
	default:
		raw, err := json.Marshal(p)
		require.NoError(s.t, err)
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, s.srv.URL+path, body)
	require.NoError(s.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.srv.Client().Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(s.t, err)
	return resp, buf.Bytes()
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	resp, body := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/api/skills", "/api/auth/user", "/api/leaderboard", "/api/admin/users"} {
		resp, _ := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}

	resp, _ := s.do(http.MethodGet, "/api/skills", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginRejectsBadIdentityToken(t *testing.T) {
	s := newTestServer(t)

	resp, _ := s.do(http.MethodPost, "/api/login", "", map[string]string{"idToken": "garbage"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := s.do(http.MethodPost, "/api/login", "", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "idToken is required")
}

func TestSkillLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.login("user-1")

	resp, body := s.do(http.MethodPost, "/api/skills", token, map[string]any{
		"name": "Python", "category": "Programming", "level": "Beginner", "progress": 0,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created model.Skill
	require.NoError(t, json.Unmarshal(body, &created))
	assert.NotZero(t, created.ID)

	resp, body = s.do(http.MethodGet, "/api/skills", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var skills []model.Skill
	require.NoError(t, json.Unmarshal(body, &skills))
	require.Len(t, skills, 1)
	assert.Equal(t, created.ID, skills[0].ID)
	assert.Equal(t, "user-1", skills[0].UserID)
	assert.Equal(t, "Python", skills[0].Name)
	assert.Equal(t, "Programming", skills[0].Category)
	assert.Equal(t, model.LevelBeginner, skills[0].Level)
	assert.Equal(t, 0, skills[0].Progress)
	assert.False(t, skills[0].CreatedAt.IsZero())
	assert.False(t, skills[0].UpdatedAt.IsZero())

	path := "/api/skills/" + jsonNumber(created.ID)
	resp, body = s.do(http.MethodPut, path, token, map[string]any{"progress": 60})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var updated model.Skill
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, 60, updated.Progress)
	assert.Equal(t, "Python", updated.Name)

	resp, _ = s.do(http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = s.do(http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSkillValidation(t *testing.T) {
	s := newTestServer(t)
	token := s.login("user-1")

	resp, body := s.do(http.MethodPost, "/api/skills", token, map[string]any{
		"name": "Go", "category": "Programming", "level": "Beginner", "progress": 150,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "progress")

	resp, _ = s.do(http.MethodPost, "/api/skills", token, `{"name":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(http.MethodPut, "/api/skills/abc", token, map[string]any{"progress": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSkillsAreOwnerScoped(t *testing.T) {
	s := newTestServer(t)
	owner := s.login("owner")
	other := s.login("other")

	resp, body := s.do(http.MethodPost, "/api/skills", owner, map[string]any{
		"name": "SQL", "category": "Data", "level": "Intermediate",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created model.Skill
	require.NoError(t, json.Unmarshal(body, &created))

	path := "/api/skills/" + jsonNumber(created.ID)
	resp, _ = s.do(http.MethodPut, path, other, map[string]any{"level": "Advanced"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = s.do(http.MethodDelete, path, other, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = s.do(http.MethodGet, "/api/skills", other, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))
}

func TestAdminRoutes(t *testing.T) {
	s := newTestServer(t)
	token := s.login("user-1")

	resp, _ := s.do(http.MethodGet, "/api/admin/users", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = s.do(http.MethodGet, "/api/admin/stats", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Admin rights are re-read per request, so promotion applies to the
	// existing session.
	u, err := s.store.Users().FindByID(t.Context(), "user-1")
	require.NoError(t, err)
	u.IsAdmin = true
	s.store.PutUser(*u)

	resp, body := s.do(http.MethodGet, "/api/admin/users", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var users []model.User
	require.NoError(t, json.Unmarshal(body, &users))
	assert.Len(t, users, 1)

	resp, body = s.do(http.MethodGet, "/api/admin/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"totalUsers":1,"totalSkills":0,"activeUsers":0}`, string(body))

	resp, body = s.do(http.MethodPost, "/api/admin/recommendations", token, map[string]any{
		"title": "Learn Docker", "description": "Containers", "type": "Course", "tags": []string{"devops"}, "matchPercentage": 80,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = s.do(http.MethodGet, "/api/recommendations", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var recs []model.Recommendation
	require.NoError(t, json.Unmarshal(body, &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "Learn Docker", recs[0].Title)
}

func TestLogoutRevokesSession(t *testing.T) {
	s := newTestServer(t)
	token := s.login("user-1")

	resp, body := s.do(http.MethodGet, "/api/auth/user", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"id":"user-1"`)

	resp, _ = s.do(http.MethodPost, "/api/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = s.do(http.MethodGet, "/api/auth/user", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "logged out")
}

func TestProfileUpdate(t *testing.T) {
	s := newTestServer(t)
	token := s.login("user-1")

	resp, body := s.do(http.MethodPut, "/api/profile", token, map[string]any{
		"college": "MIT", "graduationYear": 2026, "preferredJobRole": "Backend Developer",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var u model.User
	require.NoError(t, json.Unmarshal(body, &u))
	require.NotNil(t, u.College)
	assert.Equal(t, "MIT", *u.College)
	assert.Equal(t, "Backend Developer", u.JobRole())

	resp, _ = s.do(http.MethodPut, "/api/profile", token, map[string]any{"graduationYear": 1800})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChallengeIsNullWithoutActiveChallenge(t *testing.T) {
	s := newTestServer(t)
	token := s.login("user-1")

	resp, body := s.do(http.MethodGet, "/api/challenge", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "null", strings.TrimSpace(string(body)))
}

func TestLeaderboardAndCareerGuidance(t *testing.T) {
	s := newTestServer(t)
	token := s.login("user-1")
	s.login("user-2")
	s.store.PutSkill(model.Skill{UserID: "user-2", Name: "Go", Category: "Programming", Level: model.LevelAdvanced})

	resp, body := s.do(http.MethodGet, "/api/leaderboard?scope=all", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entries []model.LeaderboardEntry
	require.NoError(t, json.Unmarshal(body, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "user-2", entries[0].User.ID)
	assert.Equal(t, 1, entries[0].SkillCount)

	// No preferred job role: the fixed roadmap comes back without an AI call.
	resp, body = s.do(http.MethodGet, "/api/career-guidance", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var g model.CareerGuidance
	require.NoError(t, json.Unmarshal(body, &g))
	assert.NotEmpty(t, g.Roadmap)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	req, err := http.NewRequest(http.MethodOptions, s.srv.URL+"/api/skills", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := s.srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func jsonNumber(id int64) string {
	raw, _ := json.Marshal(id)
	return string(raw)
}
