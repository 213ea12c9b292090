package entity

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ST10257746/prog7314-part1-sub000/internal/adapter"
	"github.com/ST10257746/prog7314-part1-sub000/internal/logger"
	"github.com/ST10257746/prog7314-part1-sub000/models"
)

// dailyActivityAdapter upserts the per-day aggregate at
// PUT /api/daily-activity/{owner}/{date}. The remote id is "{owner}_{date}",
// the document key used by the remote store.
type dailyActivityAdapter struct {
	remote adapter.RemoteClient
}

// NewDailyActivityAdapter returns the adapter of daily activity aggregates.
func NewDailyActivityAdapter(remote adapter.RemoteClient) Adapter {
	return &dailyActivityAdapter{remote: remote}
}

func (d *dailyActivityAdapter) Entity() models.EntityType {
	return models.EntityDailyActivity
}

func (d *dailyActivityAdapter) Push(ctx context.Context, rec models.Record) (string, error) {
	if rec.EntityType != models.EntityDailyActivity {
		return "", fmt.Errorf("%w: %s record handed to %s adapter", ErrEntityMismatch, rec.EntityType, models.EntityDailyActivity)
	}

	var p models.DailyActivityPayload
	if err := rec.DecodePayload(&p); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	if _, err := time.Parse(models.DailyActivityDateLayout, p.Date); err != nil {
		return "", fmt.Errorf("%w: date %q: %w", ErrInvalidPayload, p.Date, err)
	}

	path := dailyActivityPath + "/" + adapter.PathEscape(rec.OwnerID) + "/" + adapter.PathEscape(p.Date)
	if _, err := d.remote.Call(ctx, adapter.Request{Method: http.MethodPut, Path: path, Body: p}); err != nil {
		return "", err
	}

	return rec.OwnerID + "_" + p.Date, nil
}

// Delete is local only: the remote store keeps daily aggregates.
func (d *dailyActivityAdapter) Delete(ctx context.Context, rec models.Record) error {
	logger.FromContext(ctx).Debug().
		Str("func", "dailyActivityAdapter.Delete").
		Str("local_id", rec.LocalID).
		Msg("daily activity is not deleted remotely")
	return nil
}

// profileAdapter upserts the user profile at PUT /api/users/{owner}. The
// remote id is the owner id.
type profileAdapter struct {
	remote adapter.RemoteClient
}

// NewProfileAdapter returns the adapter of the user profile.
func NewProfileAdapter(remote adapter.RemoteClient) Adapter {
	return &profileAdapter{remote: remote}
}

func (p *profileAdapter) Entity() models.EntityType {
	return models.EntityProfile
}

func (p *profileAdapter) Push(ctx context.Context, rec models.Record) (string, error) {
	if rec.EntityType != models.EntityProfile {
		return "", fmt.Errorf("%w: %s record handed to %s adapter", ErrEntityMismatch, rec.EntityType, models.EntityProfile)
	}

	var doc models.ProfilePayload
	if err := rec.DecodePayload(&doc); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	path := usersPath + "/" + adapter.PathEscape(rec.OwnerID)
	if _, err := p.remote.Call(ctx, adapter.Request{Method: http.MethodPut, Path: path, Body: doc}); err != nil {
		return "", err
	}

	return rec.OwnerID, nil
}

// Delete is local only. Deleting the remote user document would delete the
// account.
func (p *profileAdapter) Delete(context.Context, models.Record) error {
	return nil
}
