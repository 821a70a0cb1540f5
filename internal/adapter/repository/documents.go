package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/eslsoft/aussieprogress/internal/repository"
	"github.com/sirupsen/logrus"
)

// documents reads and writes JSON documents under fixed keys. A document
// that fails to decode is treated as absent.
type documents struct {
	store  repository.DocumentStore
	logger logrus.FieldLogger
}

func newDocuments(store repository.DocumentStore, logger logrus.FieldLogger) documents {
	return documents{store: store, logger: logger}
}

// load decodes key into dst and reports whether a usable document existed.
func (d documents) load(ctx context.Context, key string, dst any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	raw, ok, err := d.store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		d.logger.WithError(err).WithField("key", key).Warn("malformed progress document, using defaults")
		return false, nil
	}
	return true, nil
}

func (d documents) save(ctx context.Context, key string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := d.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (d documents) remove(ctx context.Context, key string) error {
	if err := d.store.Remove(ctx, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
