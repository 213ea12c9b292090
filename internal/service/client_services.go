package service

import (
	"fmt"

	"github.com/ST10257746/prog7314-part1-sub000/internal/adapter"
	"github.com/ST10257746/prog7314-part1-sub000/internal/config"
	"github.com/ST10257746/prog7314-part1-sub000/internal/connectivity"
	"github.com/ST10257746/prog7314-part1-sub000/internal/entity"
	"github.com/ST10257746/prog7314-part1-sub000/internal/identity"
	"github.com/ST10257746/prog7314-part1-sub000/internal/logger"
	"github.com/ST10257746/prog7314-part1-sub000/internal/store"
)

// ClientServices is the wired sync client: identity, the connectivity
// monitor, the sync machinery and the interactive record service.
type ClientServices struct {
	Identity     *identity.Manager
	Monitor      *connectivity.Monitor
	Orchestrator SyncOrchestrator
	SyncJob      SyncJob
	Records      RecordService
}

func NewClientServices(storages *store.ClientStorages, cfg *config.ClientConfig, logger *logger.Logger) (*ClientServices, error) {
	manager := identity.NewManager(storages.Sessions, cfg.Identity, cfg.Adapter.RequestTimeout, logger)

	remote, err := adapter.NewHTTPRemoteClient(cfg.Adapter, cfg.App, manager, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating remote client: %w", err)
	}

	registry, err := entity.NewDefaultRegistry(remote, storages.Records)
	if err != nil {
		return nil, fmt.Errorf("error creating entity registry: %w", err)
	}

	monitor := connectivity.NewMonitor(
		connectivity.NewHTTPProber(cfg.Adapter),
		cfg.Workers.ProbeInterval,
		cfg.Workers.StableProbes,
		logger,
	)

	orchestrator, err := NewSyncOrchestrator(storages.Records, manager, registry, SyncOptions{
		QuarantineRejected: cfg.Workers.QuarantineRejected,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating sync orchestrator: %w", err)
	}

	job := NewSyncJob(orchestrator, NewSyncJobOptions(cfg.Workers, monitor), logger)

	var trigger SyncTrigger
	if cfg.Workers.TriggerOnWrite {
		trigger = job
	}

	return &ClientServices{
		Identity:     manager,
		Monitor:      monitor,
		Orchestrator: orchestrator,
		SyncJob:      job,
		Records:      NewRecordService(storages.Records, manager, registry, manager, trigger, logger),
	}, nil
}
