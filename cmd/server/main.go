package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skill_tracker/internal/api"
	"skill_tracker/internal/app/advisor"
	"skill_tracker/internal/app/service"
	"skill_tracker/internal/app/worker"
	"skill_tracker/internal/common/security"
	"skill_tracker/internal/domain/repository"
	"skill_tracker/internal/platform/config"
	"skill_tracker/internal/platform/database"
	"skill_tracker/internal/platform/logger"
	"skill_tracker/internal/platform/metrics"
	"skill_tracker/internal/platform/queue"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// 1. Configuration and logging
	cfg := config.Load()
	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		os.Stderr.WriteString("failed to init logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	startCtx, startCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startCancel()

	// 2. Database
	db, err := database.Connect(startCtx, cfg)
	if err != nil {
		log.Fatal("Database connection failed", "error", err)
	}
	defer db.Close()
	applied, err := database.Migrate(startCtx, db)
	if err != nil {
		log.Fatal("Migration failed", "error", err)
	}
	log.Info("Database ready", "applied_migrations", applied)

	// 3. Redis
	rdb, err := queue.ConnectRedis(startCtx, cfg)
	if err != nil {
		log.Fatal("Redis connection failed", "error", err)
	}
	defer rdb.Close()
	log.Info("Redis connected", "addr", cfg.RedisAddr)

	metrics.Register(prometheus.DefaultRegisterer)

	// 4. Repositories
	userRepo := repository.NewPgUserRepository(db)
	skillRepo := repository.NewPgSkillRepository(db)
	badgeRepo := repository.NewPgBadgeRepository(db)
	recRepo := repository.NewPgRecommendationRepository(db)
	challengeRepo := repository.NewPgChallengeRepository(db)
	codingRepo := repository.NewPgCodingRepository(db)
	sessionRepo := repository.NewRedisSessionRepository(rdb)

	// 5. Services
	tokens := security.NewTokenManager(cfg.JWTKey, cfg.JWTExp)
	identity := security.NewIdentityVerifier(cfg.IdentityTokenSecret, cfg.IdentityIssuer)
	if cfg.OpenAIAPIKey == "" {
		log.Warn("OPENAI_API_KEY is not set, advisory endpoints will return fallback results")
	}
	advisorClient := advisor.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, nil, log.With("component", "advisor"))
	activity := service.NewActivityQueue(rdb, cfg.ActivityQueueName)

	svc := api.Services{
		Auth:            service.NewAuthService(userRepo, sessionRepo, tokens, identity),
		Profile:         service.NewProfileService(userRepo),
		Skills:          service.NewSkillService(skillRepo, activity, log),
		Badges:          service.NewBadgeService(badgeRepo, userRepo),
		Recommendations: service.NewRecommendationService(recRepo, userRepo, skillRepo),
		Challenges:      service.NewChallengeService(challengeRepo),
		Leaderboard:     service.NewLeaderboardService(userRepo),
		Coding:          service.NewCodingService(codingRepo, userRepo, skillRepo, advisorClient, activity, log),
		Career:          service.NewCareerService(userRepo, skillRepo, advisorClient),
		Admin:           service.NewAdminService(userRepo),
	}
	// 6. Activity worker
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	workerDone := make(chan struct{})
	if cfg.EmbeddedWorker {
		achievements := service.NewAchievementService(skillRepo, badgeRepo, challengeRepo, codingRepo, log.With("component", "achievements"))
		activityWorker := worker.NewActivityWorker(rdb, achievements, worker.Options{
			QueueName:  cfg.ActivityQueueName,
			LockPrefix: cfg.ActivityLockPrefix,
			LockTTL:    time.Duration(cfg.ActivityLockTTLSeconds) * time.Second,
		}, log.With("component", "activity_worker"))
		go func() {
			defer close(workerDone)
			activityWorker.Start(workerCtx)
		}()
	} else {
		close(workerDone)
		log.Info("Embedded activity worker disabled")
	}

	// 7. Router and HTTP server
	router := api.NewRouter(api.RouterConfig{
		Tokens:         tokens,
		Sessions:       sessionRepo,
		Users:          userRepo,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Log:            log,
	}, svc)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info("Server starting", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Could not listen", "port", cfg.APIPort, "error", err)
		}
	}()

	<-stop
	log.Info("Shutting down server...")
	workerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
	}
	select {
	case <-workerDone:
	case <-shutdownCtx.Done():
		log.Warn("Activity worker did not stop before the shutdown deadline")
	}
	log.Info("Server and worker stopped gracefully")
}
