package service

import (
	"fmt"

	"github.com/ST10257746/prog7314-part1-sub000/internal/config"
	"github.com/ST10257746/prog7314-part1-sub000/internal/logger"
	"github.com/ST10257746/prog7314-part1-sub000/internal/store"
)

// Services groups the services of the reference remote store.
type Services struct {
	AuthService     AuthService
	DocumentService DocumentService
	AppInfoService  AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.ServerConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.Version, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	documents := NewDocumentValidationService().Wrap(NewDocumentService(storages.Documents, logger))

	return &Services{
		AuthService:     NewAuthService(cfg.Auth, logger),
		DocumentService: documents,
		AppInfoService:  appInfo,
	}, nil
}
