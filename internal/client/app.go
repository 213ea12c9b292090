package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ST10257746/prog7314-part1-sub000/internal/config"
	"github.com/ST10257746/prog7314-part1-sub000/internal/logger"
	"github.com/ST10257746/prog7314-part1-sub000/internal/service"
	"github.com/ST10257746/prog7314-part1-sub000/internal/workers"
	"github.com/ST10257746/prog7314-part1-sub000/models"
)

type App struct {
	records  service.RecordService
	syncJob  service.SyncJob
	identity Identity
	issuer   SessionIssuer
	workers  Runner

	build models.AppBuildInfo
	args  []string
	out   io.Writer

	logger *logger.Logger
}

func NewApp(services *service.ClientServices, cfg *config.ClientConfig, build models.AppBuildInfo, logger *logger.Logger) *App {
	job := services.SyncJob

	return &App{
		records:  services.Records,
		syncJob:  job,
		identity: services.Identity,
		issuer:   NewHTTPSessionIssuer(cfg.Adapter),
		workers: workers.NewWorkers(logger,
			services.Monitor,
			workers.WorkerFunc(func(ctx context.Context) error {
				job.Start(ctx)
				<-ctx.Done()
				job.Stop()
				return nil
			}),
		),
		build:  build,
		args:   cfg.Args,
		out:    os.Stdout,
		logger: logger,
	}
}

func (a *App) Run(ctx context.Context) error {
	if len(a.args) == 0 {
		return fmt.Errorf("%w: no command given", ErrUsage)
	}

	cmd, args := a.args[0], a.args[1:]
	a.logger.Debug().Str("command", cmd).Msg("running command")

	switch cmd {
	case "login":
		return a.login(ctx, args)
	case "run":
		return a.workers.Run(ctx)
	case "sync":
		return a.sync(ctx)
	case "add":
		return a.add(ctx, args)
	case "list":
		return a.list(ctx, args)
	case "edit":
		return a.edit(ctx, args)
	case "rm":
		return a.remove(ctx, args)
	case "status":
		return a.status(ctx)
	case "logout":
		return a.logout(ctx)
	case "version":
		fmt.Fprintf(a.out, "%s (%s, %s)\n", a.build.BuildVersion(), a.build.BuildDate(), a.build.BuildCommit())
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
}

func (a *App) login(ctx context.Context, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return fmt.Errorf("%w: login <userId>", ErrUsage)
	}

	tokens, err := a.issuer.IssueSession(ctx, args[0])
	if err != nil {
		return err
	}

	ownerID, err := a.identity.SignIn(ctx, tokens.RefreshToken, tokens.IDToken)
	if err != nil {
		return fmt.Errorf("error signing in: %w", err)
	}

	fmt.Fprintf(a.out, "signed in as %s\n", ownerID)
	return nil
}

func (a *App) sync(ctx context.Context) error {
	report := a.syncJob.RunNow(ctx)
	if err := a.print(report); err != nil {
		return err
	}
	if report.Outcome == models.RunShouldRetry {
		return fmt.Errorf("sync aborted: %w", report.Err)
	}
	return nil
}

func (a *App) add(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: add <entity> <json>", ErrUsage)
	}

	e, err := models.ParseEntityType(args[0])
	if err != nil {
		return err
	}

	payload, err := commandPayload(e, args[1])
	if err != nil {
		return err
	}

	rec, err := a.records.Create(ctx, e, payload)
	if err != nil {
		return err
	}
	return a.print(rec)
}

func (a *App) list(ctx context.Context, args []string) error {
	var e models.EntityType
	if len(args) > 0 {
		parsed, err := models.ParseEntityType(args[0])
		if err != nil {
			return err
		}
		e = parsed
	}

	recs, err := a.records.List(ctx, e)
	if err != nil {
		return err
	}
	return a.print(recs)
}

func (a *App) edit(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: edit <localId> <json>", ErrUsage)
	}

	current, err := a.records.Get(ctx, args[0])
	if err != nil {
		return err
	}

	payload, err := commandPayload(current.EntityType, args[1])
	if err != nil {
		return err
	}

	rec, err := a.records.Update(ctx, args[0], payload)
	if err != nil {
		return err
	}

	if w, ok := payload.(models.CustomWorkoutPayload); ok && w.Exercises != nil {
		if rec, err = a.records.UpdateExercises(ctx, args[0], w.Exercises); err != nil {
			return err
		}
	}
	return a.print(rec)
}

func (a *App) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: rm <localId>", ErrUsage)
	}

	err := a.records.Delete(ctx, args[0])
	// the remote delete runs in the background and must finish before exit
	a.records.Wait()
	return err
}

// statusReport is printed by the status command.
type statusReport struct {
	OwnerID   string                               `json:"owner_id,omitempty"`
	SignedIn  bool                                 `json:"signed_in"`
	PerEntity map[models.EntityType]map[string]int `json:"per_entity,omitempty"`
}

func (a *App) status(ctx context.Context) error {
	ownerID, ok := a.identity.CurrentOwner(ctx)
	if !ok {
		return a.print(statusReport{})
	}

	recs, err := a.records.List(ctx, "")
	if err != nil {
		return err
	}

	report := statusReport{
		OwnerID:   ownerID,
		SignedIn:  true,
		PerEntity: make(map[models.EntityType]map[string]int),
	}
	for _, rec := range recs {
		counts, found := report.PerEntity[rec.EntityType]
		if !found {
			counts = make(map[string]int)
			report.PerEntity[rec.EntityType] = counts
		}
		counts[string(rec.Status)]++
	}
	return a.print(report)
}

func (a *App) logout(ctx context.Context) error {
	if err := a.records.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "signed out")
	return nil
}

func (a *App) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// commandPayload turns a JSON argument into a record payload. Custom
// workouts are decoded so their exercises go to the exercise table.
func commandPayload(e models.EntityType, arg string) (any, error) {
	raw := json.RawMessage(arg)
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: payload is not valid JSON", ErrUsage)
	}

	if e != models.EntityCustomWorkout {
		return raw, nil
	}

	var w models.CustomWorkoutPayload
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return w, nil
}
