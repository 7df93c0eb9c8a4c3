package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/lineupdraft/go/internal/config"
	"github.com/mcdev12/lineupdraft/go/internal/draft/repository"
)

func setupStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		store, err := repository.OpenPostgres(ctx, cfg.DB.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		log.Info().Str("database", cfg.DB.String()).Msg("connected to postgres")
		return store, nil

	case config.StoreSQLite:
		store, err := repository.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("opened sqlite database")
		return store, nil

	default:
		log.Warn().Msg("using in-memory store, runs are lost on restart")
		return repository.NewMemoryStore(), nil
	}
}
