package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/lineupdraft/go/internal/config"
	"github.com/mcdev12/lineupdraft/go/internal/draft"
	"github.com/mcdev12/lineupdraft/go/internal/draft/events"
	"github.com/mcdev12/lineupdraft/go/internal/draft/repository"
	"github.com/mcdev12/lineupdraft/go/internal/playerstats"
	"github.com/mcdev12/lineupdraft/go/internal/refdata"
	"github.com/mcdev12/lineupdraft/go/internal/scoring"
)

type Services struct {
	Draft     *draft.Service
	Publisher events.Publisher
}

func setupServices(ctx context.Context, cfg *config.Config, store repository.Store) (*Services, error) {
	// Reference data → Stats resolver → Scoring engine → App → Service
	catalog, err := loadCatalog(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	tuning := cfg.Tuning
	resolver := playerstats.NewResolver(catalog, tuning.Scoring.LookbackSeasons, tuning.Baselines)
	engine := scoring.NewEngine(tuning.Scoring, resolver, tuning.TargetSeason)

	publisher, err := setupPublisher(ctx, cfg.NATS)
	if err != nil {
		return nil, err
	}

	app := draft.NewApp(store, catalog, engine, publisher, nil, draft.Settings{
		ShotClock:        tuning.ShotClock(),
		LeaderboardLimit: tuning.LeaderboardLimit,
		ShareCode:        tuning.ShareCode,
	})

	log.Info().
		Int("teams", len(catalog.Teams())).
		Str("target_season", engine.TargetSeason()).
		Int("lookback_seasons", resolver.Lookback()).
		Dur("shot_clock", tuning.ShotClock()).
		Msg("draft app ready")

	return &Services{
		Draft:     draft.NewService(app),
		Publisher: publisher,
	}, nil
}

func loadCatalog(dir string) (*refdata.Catalog, error) {
	if dir == "" {
		catalog, err := refdata.LoadEmbedded()
		if err != nil {
			return nil, fmt.Errorf("failed to load embedded dataset: %w", err)
		}
		return catalog, nil
	}
	catalog, err := refdata.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset from %s: %w", dir, err)
	}
	return catalog, nil
}

func setupPublisher(ctx context.Context, cfg config.NATSConfig) (events.Publisher, error) {
	if !cfg.Enabled() {
		log.Info().Msg("NATS_URL not set, domain events disabled")
		return events.NopPublisher{}, nil
	}

	jsCfg := events.DefaultJetStreamConfig()
	jsCfg.URL = cfg.URL
	jsCfg.StreamName = cfg.Stream
	jsCfg.SubjectPrefix = cfg.SubjectPrefix

	publisher, err := events.NewJetStreamPublisher(ctx, jsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect event publisher: %w", err)
	}
	log.Info().Str("stream", cfg.Stream).Msg("publishing domain events to JetStream")
	return publisher, nil
}
