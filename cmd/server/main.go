package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/ST10257746/prog7314-part1-sub000/internal/config"
	"github.com/ST10257746/prog7314-part1-sub000/internal/handler"
	"github.com/ST10257746/prog7314-part1-sub000/internal/logger"
	"github.com/ST10257746/prog7314-part1-sub000/internal/server"
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
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(build)

	log := logger.NewLogger("fittrackr-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.Version == "" {
		cfg.Version = build.BuildVersion()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storages := store.NewStorages(log)

	services, err := service.NewServices(storages, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server run error")
	}
	log.Info().Msg("server stopped")
}

func printBuildInfo(build models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", build.BuildVersion())
	fmt.Printf("Build date: %s\n", build.BuildDate())
	fmt.Printf("Build commit: %s\n", build.BuildCommit())
}
