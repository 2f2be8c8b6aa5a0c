package api

import (
	"net/http"
	"time"

	"skill_tracker/internal/api/handler"
	"skill_tracker/internal/api/middleware"
	"skill_tracker/internal/app/service"
	"skill_tracker/internal/common/security"
	"skill_tracker/internal/domain/repository"
	"skill_tracker/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// Services bundles everything the HTTP layer calls into.
type Services struct {
	Auth            *service.AuthService
	Profile         *service.ProfileService
	Skills          *service.SkillService
	Badges          *service.BadgeService
	Recommendations *service.RecommendationService
	Challenges      *service.ChallengeService
	Leaderboard     *service.LeaderboardService
	Coding          *service.CodingService
	Career          *service.CareerService
	Admin           *service.AdminService
}

type RouterConfig struct {
	Tokens         *security.TokenManager
	Sessions       repository.SessionRepository
	Users          middleware.UserLookup
	AllowedOrigins []string
	// Gatherer backs /metrics. Nil uses the default registry.
	Gatherer prometheus.Gatherer
	Log      *logger.Logger
}

func NewRouter(cfg RouterConfig, svc Services) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(cfg.Log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(middleware.Metrics)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	// Searches "Authorization: Bearer T" and puts the verified token in context.
	r.Use(jwtauth.Verifier(cfg.Tokens.Auth))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	authHandler := handler.NewAuthHandler(svc.Auth, svc.Profile, cfg.Log)
	skillHandler := handler.NewSkillHandler(svc.Skills, svc.Badges, cfg.Log)
	catalogHandler := handler.NewCatalogHandler(svc.Recommendations, svc.Challenges, svc.Leaderboard, cfg.Log)
	codingHandler := handler.NewCodingHandler(svc.Coding, svc.Career, cfg.Log)
	adminHandler := handler.NewAdminHandler(svc.Admin, svc.Recommendations, svc.Challenges, svc.Coding, svc.Badges, cfg.Log)

	r.Route("/api", func(api chi.Router) {
		api.Group(authHandler.RegisterPublicRoutes)

		api.Group(func(authed chi.Router) {
			authed.Use(middleware.Authenticator(cfg.Sessions, cfg.Log))

			authHandler.RegisterRoutes(authed)
			skillHandler.RegisterRoutes(authed)
			catalogHandler.RegisterRoutes(authed)
			codingHandler.RegisterRoutes(authed)

			authed.Route("/admin", func(admin chi.Router) {
				admin.Use(middleware.RequireAdmin(cfg.Users, cfg.Log))
				adminHandler.RegisterRoutes(admin)
			})
		})
	})

	return r
}
