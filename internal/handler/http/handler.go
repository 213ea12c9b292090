package http

import (
	"time"

	"github.com/ST10257746/prog7314-part1-sub000/internal/config"
	"github.com/ST10257746/prog7314-part1-sub000/internal/logger"
	"github.com/ST10257746/prog7314-part1-sub000/internal/service"
)

type Handler struct {
	services *service.Services

	// requestTimeout bounds a single request; zero disables the limit
	requestTimeout time.Duration
	// devSessions mounts the credential-free session endpoint
	devSessions bool

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		requestTimeout: cfg.RequestTimeout,
		devSessions:    cfg.DevSessions,
		logger:         logger,
	}
}
