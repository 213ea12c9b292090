package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ST10257746/prog7314-part1-sub000/internal/client"
	"github.com/ST10257746/prog7314-part1-sub000/internal/config"
	"github.com/ST10257746/prog7314-part1-sub000/internal/logger"
	"github.com/ST10257746/prog7314-part1-sub000/internal/service"
	"github.com/ST10257746/prog7314-part1-sub000/internal/store"
	"github.com/ST10257746/prog7314-part1-sub000/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	if cfg.App.Version == "" {
		cfg.App.Version = build.BuildVersion()
	}

	log := logger.NewClientLogger("fittrackr-client", cfg.Log.FilePath)
	log.Info().
		Str("version", cfg.App.Version).
		Str("date", build.BuildDate()).
		Str("commit", build.BuildCommit()).
		Msg("client starting")

	if err = run(cfg, build, log); err != nil {
		log.Err(err).Msg("client run error")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.ClientConfig, build models.AppBuildInfo, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("create local storage: %w", err)
	}
	defer storages.Close()

	services, err := service.NewClientServices(storages, cfg, log)
	if err != nil {
		return fmt.Errorf("create client services: %w", err)
	}

	return client.NewApp(services, cfg, build, log).Run(ctx)
}
