package entity

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ST10257746/prog7314-part1-sub000/internal/adapter"
	"github.com/ST10257746/prog7314-part1-sub000/internal/logger"
	"github.com/ST10257746/prog7314-part1-sub000/models"
)

// encodeFunc builds the wire document of a record.
type encodeFunc func(ctx context.Context, rec models.Record) (any, error)

// collectionAdapter handles entity types stored remotely as documents with a
// server-assigned id: POST <path> creates, PUT/DELETE <path>/{id} update and
// delete.
type collectionAdapter struct {
	entity      models.EntityType
	path        string
	envelopeKey string
	encode      encodeFunc
	remote      adapter.RemoteClient
}

func (c *collectionAdapter) Entity() models.EntityType {
	return c.entity
}

func (c *collectionAdapter) Push(ctx context.Context, rec models.Record) (string, error) {
	if rec.EntityType != c.entity {
		return "", fmt.Errorf("%w: %s record handed to %s adapter", ErrEntityMismatch, rec.EntityType, c.entity)
	}

	doc, err := c.encode(ctx, rec)
	if err != nil {
		return "", err
	}

	if rec.HasRemote() {
		_, err = c.remote.Call(ctx, adapter.Request{
			Method: http.MethodPut,
			Path:   c.documentPath(*rec.RemoteID),
			Body:   doc,
		})
		if err == nil {
			return *rec.RemoteID, nil
		}
		if !errors.Is(err, adapter.ErrNotFound) {
			return "", err
		}

		// the remote document is gone, create it again
		logger.FromContext(ctx).Warn().
			Str("func", "collectionAdapter.Push").
			Str("entity", c.entity.String()).
			Str("local_id", rec.LocalID).
			Str("remote_id", *rec.RemoteID).
			Msg("remote document not found, recreating")
	}

	resp, err := c.remote.Call(ctx, adapter.Request{
		Method: http.MethodPost,
		Path:   c.path,
		Body:   doc,
	})
	if err != nil {
		return "", err
	}

	remoteID, err := resp.DocumentID(c.envelopeKey)
	if err != nil {
		// the write was accepted, so asking again is safe thanks to clientId
		return "", fmt.Errorf("%w: %w", adapter.ErrNetwork, err)
	}

	return remoteID, nil
}

func (c *collectionAdapter) Delete(ctx context.Context, rec models.Record) error {
	if !rec.HasRemote() {
		return nil
	}

	_, err := c.remote.Call(ctx, adapter.Request{
		Method: http.MethodDelete,
		Path:   c.documentPath(*rec.RemoteID),
	})
	if errors.Is(err, adapter.ErrNotFound) {
		return nil
	}
	return err
}

func (c *collectionAdapter) documentPath(remoteID string) string {
	return c.path + "/" + adapter.PathEscape(remoteID)
}
