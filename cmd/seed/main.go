package main

import (
	"context"
	"flag"
	"os"
	"time"

	"skill_tracker/internal/app/catalog"
	"skill_tracker/internal/domain/repository"
	"skill_tracker/internal/platform/config"
	"skill_tracker/internal/platform/database"
	"skill_tracker/internal/platform/logger"
)

func main() {
	cfg := config.Load()
	path := flag.String("catalog", cfg.SeedCatalogPath, "path to the catalog YAML file")
	flag.Parse()

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		os.Stderr.WriteString("failed to init logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal("Database connection failed", "error", err)
	}
	defer db.Close()

	if applied, err := database.Migrate(ctx, db); err != nil {
		log.Fatal("Migration failed", "error", err)
	} else if len(applied) > 0 {
		log.Info("Applied migrations", "files", applied)
	}

	c, err := catalog.Load(*path)
	if err != nil {
		log.Fatal("Could not load catalog", "path", *path, "error", err)
	}

	res, err := catalog.Seed(ctx, catalog.Repositories{
		Recommendations: repository.NewPgRecommendationRepository(db),
		Challenges:      repository.NewPgChallengeRepository(db),
		Coding:          repository.NewPgCodingRepository(db),
	}, c, time.Now(), log)
	if err != nil {
		log.Fatal("Seeding failed", "error", err)
	}
	log.Info("Catalog seeded",
		"recommendations", res.Recommendations,
		"coding_challenges", res.CodingChallenges,
		"weekly_challenge", res.WeeklyChallenge,
	)
}
