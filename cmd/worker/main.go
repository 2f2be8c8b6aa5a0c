// Command worker runs the activity worker as its own process. Several can
// run side by side; the per-user redis lock keeps their work apart.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"skill_tracker/internal/app/service"
	"skill_tracker/internal/app/worker"
	"skill_tracker/internal/domain/repository"
	"skill_tracker/internal/platform/config"
	"skill_tracker/internal/platform/database"
	"skill_tracker/internal/platform/logger"
	"skill_tracker/internal/platform/metrics"
	"skill_tracker/internal/platform/queue"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		os.Stderr.WriteString("failed to init logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal("Database connection failed", "error", err)
	}
	defer db.Close()

	rdb, err := queue.ConnectRedis(ctx, cfg)
	if err != nil {
		log.Fatal("Redis connection failed", "error", err)
	}
	defer rdb.Close()

	metrics.Register(prometheus.DefaultRegisterer)
	metricsServer := &http.Server{Addr: ":" + cfg.WorkerMetricsPort, Handler: promhttp.Handler()}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Metrics server failed", "error", err)
		}
	}()

	achievements := service.NewAchievementService(
		repository.NewPgSkillRepository(db),
		repository.NewPgBadgeRepository(db),
		repository.NewPgChallengeRepository(db),
		repository.NewPgCodingRepository(db),
		log.With("component", "achievements"),
	)
	activityWorker := worker.NewActivityWorker(rdb, achievements, worker.Options{
		QueueName:  cfg.ActivityQueueName,
		LockPrefix: cfg.ActivityLockPrefix,
		LockTTL:    time.Duration(cfg.ActivityLockTTLSeconds) * time.Second,
	}, log.With("component", "activity_worker"))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		activityWorker.Start(ctx)
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Shutdown signal received")
	cancel()
	wg.Wait()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	metricsServer.Shutdown(shutdownCtx)
	log.Info("Worker exited cleanly")
}

