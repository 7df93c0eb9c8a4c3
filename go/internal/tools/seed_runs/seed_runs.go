// Command seed_runs plays seeded demo rounds and loads them into the
// postgres leaderboard. Share codes derive from each round's seed, so a rerun
// skips the runs it already inserted. The schema is created if missing.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcdev12/lineupdraft/go/internal/config"
	"github.com/mcdev12/lineupdraft/go/internal/draft"
	"github.com/mcdev12/lineupdraft/go/internal/draft/repository"
	"github.com/mcdev12/lineupdraft/go/internal/draw"
	"github.com/mcdev12/lineupdraft/go/internal/models"
	"github.com/mcdev12/lineupdraft/go/internal/playerstats"
	"github.com/mcdev12/lineupdraft/go/internal/refdata"
	"github.com/mcdev12/lineupdraft/go/internal/scoring"
)

const demoGroup = "DEMO"

func main() {
	ctx := context.Background()

	count := 10
	if v := os.Getenv("SEED_RUNS_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			fmt.Fprintf(os.Stderr, "invalid SEED_RUNS_COUNT %q\n", v)
			os.Exit(1)
		}
		count = n
	}

	// 1) Play the demo rounds in memory with the configured tuning
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	catalog, err := refdata.LoadEmbedded()
	if cfg.DataDir != "" {
		catalog, err = refdata.LoadDir(cfg.DataDir)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "load dataset: %v\n", err)
		os.Exit(1)
	}
	app := newDemoApp(cfg.Tuning, catalog)

	runs, err := playDemoRounds(ctx, app, count)
	if err != nil {
		fmt.Fprintf(os.Stderr, "play demo rounds: %v\n", err)
		os.Exit(1)
	}

	// 2) Make sure the schema exists, then connect using shared dbconfig
	schema, err := repository.OpenPostgres(ctx, cfg.DB.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to prepare schema: %v\n", err)
		os.Exit(1)
	}
	schema.Close()

	pool, err := pgxpool.New(ctx, cfg.DB.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// 3) Insert and count
	var (
		total    = len(runs)
		inserted int
		skipped  int
		errs     int
	)
	for _, run := range runs {
		ok, err := insertRun(ctx, pool, run)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error inserting run %s: %v\n", run.ShareCode, err)
			errs++
			continue
		}
		if ok {
			inserted++
		} else {
			skipped++
		}
	}
	fmt.Printf(
		"Demo runs seed: total=%d inserted=%d skipped=%d errors=%d\n",
		total, inserted, skipped, errs,
	)
}

func newDemoApp(tuning config.Tuning, catalog *refdata.Catalog) *draft.App {
	resolver := playerstats.NewResolver(catalog, tuning.Scoring.LookbackSeasons, tuning.Baselines)
	engine := scoring.NewEngine(tuning.Scoring, resolver, tuning.TargetSeason)
	return draft.NewApp(repository.NewMemoryStore(), catalog, engine, nil, nil, draft.Settings{
		ShotClock:        tuning.ShotClock(),
		LeaderboardLimit: tuning.LeaderboardLimit,
		ShareCode:        tuning.ShareCode,
		ShareCodeSource:  demoCodeSource,
	})
}

// demoCodeSource ties a demo round's share code to its seed.
func demoCodeSource(seed *string) draw.Source {
	if seed == nil {
		return nil
	}
	return draw.NewSeeded("share-code:" + *seed)
}

// playDemoRounds drafts count seeded rounds under the DEMO group.
func playDemoRounds(ctx context.Context, app *draft.App, count int) ([]models.Run, error) {
	group := demoGroup
	runs := make([]models.Run, 0, count)
	for i := 1; i <= count; i++ {
		seed := fmt.Sprintf("demo-%d", i)
		sess, err := app.CreateSession(ctx, &group, &seed)
		if err != nil {
			return nil, err
		}
		code, err := autoDraft(ctx, app, sess.SessionToken)
		if err != nil {
			return nil, fmt.Errorf("round %s: %w", seed, err)
		}
		run, err := app.GetRunByShareCode(ctx, code)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, nil
}

// autoDraft takes the first roster player that fits an open slot until the
// round completes, and returns the share code.
func autoDraft(ctx context.Context, app *draft.App, token string) (string, error) {
	for {
		view, err := app.GetView(ctx, token)
		if err != nil {
			return "", err
		}
		if view.Status == models.DraftStatusCompleted {
			if view.RunShareCode == nil {
				return "", errors.New("completed round has no share code")
			}
			return *view.RunShareCode, nil
		}

		player, slot, ok := firstFit(view)
		if !ok {
			return "", fmt.Errorf("no eligible player on %s", *view.CurrentTeamAbbr)
		}
		res, err := app.SubmitPick(ctx, token, player, string(slot))
		if err != nil {
			return "", err
		}
		if res.Completed && res.ShareCode != nil {
			return *res.ShareCode, nil
		}
	}
}

func firstFit(view *draft.DraftView) (string, models.Slot, bool) {
	for _, p := range view.CurrentRoster {
		if slices.Contains(view.ChosenPlayers, p.Name) {
			continue
		}
		for _, slot := range view.OpenSlots {
			if slices.Contains(p.EligibleSlots, slot) {
				return p.Name, slot, true
			}
		}
	}
	return "", "", false
}

func insertRun(ctx context.Context, pool *pgxpool.Pool, run models.Run) (bool, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
            INSERT INTO runs (
              id, share_code, group_code, seed, team_score,
              used_fallback_stats, created_at
            ) VALUES ($1,$2,$3,$4,$5,$6,$7)
            ON CONFLICT (share_code) DO NOTHING
        `,
		run.ID, run.ShareCode, run.GroupCode, run.Seed, run.TeamScore,
		run.UsedFallbackStats, run.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	for _, p := range run.Picks {
		var seasons []byte
		if p.SeasonsUsed != nil {
			if seasons, err = json.Marshal(p.SeasonsUsed); err != nil {
				return false, err
			}
		}
		_, err := tx.Exec(ctx, `
            INSERT INTO run_picks (
              run_id, slot, player_name, team_abbr, team_name,
              bpm, ws48, vorp, epm,
              norm_bpm, norm_ws48, norm_vorp, norm_epm,
              contribution, used_fallback, is_penalty, seasons_used
            ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
        `,
			run.ID, string(p.Slot), p.PlayerName, p.TeamAbbr, p.TeamName,
			p.Stats.BPM, p.Stats.WS48, p.Stats.VORP, p.Stats.EPM,
			p.NormalizedMetrics.BPM, p.NormalizedMetrics.WS48, p.NormalizedMetrics.VORP, p.NormalizedMetrics.EPM,
			p.Contribution, p.UsedFallback, p.IsPenalty, seasons,
		)
		if err != nil {
			return false, err
		}
	}
	return true, tx.Commit(ctx)
}
