package database

import (
	"context"
	"fmt"

	"github.com/eslsoft/aussieprogress/internal/infrastructure/config"
	"github.com/eslsoft/aussieprogress/internal/repository"
	"github.com/sirupsen/logrus"
)

// NewStore builds the progress document store for the configured driver.
// An sqlite store that cannot be opened degrades to memory with a warning.
func NewStore(cfg *config.Config, logger *logrus.Logger) (repository.DocumentStore, func(), error) {
	ctx := context.Background()
	switch cfg.Store.Driver {
	case "memory":
		return NewFallbackStore(ctx, nil, logger), func() {}, nil
	case "sqlite3":
		sqlite, cleanup, err := OpenSQLite(ctx, cfg.Store.Path, cfg.StoreDSN())
		if err != nil {
			logger.WithError(err).WithField("path", cfg.Store.Path).Warn("open progress store failed, keeping progress in memory")
			return NewFallbackStore(ctx, nil, logger), func() {}, nil
		}
		logger.WithField("path", cfg.Store.Path).Info("progress store opened")
		return NewFallbackStore(ctx, sqlite, logger), cleanup, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}
