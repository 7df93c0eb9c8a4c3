// Package config loads process settings from the environment and an optional
// YAML tuning file.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/mcdev12/lineupdraft/go/internal/dbconfig"
	"github.com/mcdev12/lineupdraft/go/internal/models"
	"github.com/mcdev12/lineupdraft/go/internal/playerstats"
	"github.com/mcdev12/lineupdraft/go/internal/scoring"
	"github.com/mcdev12/lineupdraft/go/internal/sharecode"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"

	DefaultShotClockSeconds = 24
	DefaultTargetSeason     = "2024-25"
	DefaultLeaderboardLimit = 100
	MinShareCodeLength      = 4
)

var seasonPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Config is the process configuration.
type Config struct {
	Port        string `env:"PORT"         envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL"    envDefault:"info"`
	LogPretty   bool   `env:"LOG_PRETTY"   envDefault:"false"`
	StoreDriver string `env:"STORE_DRIVER" envDefault:"memory"`
	SQLitePath  string `env:"SQLITE_PATH"  envDefault:"lineupdraft.db"`
	DataDir     string `env:"DATA_DIR"`
	TuningFile  string `env:"TUNING_FILE"`

	ShotClockSeconds int    `env:"SHOT_CLOCK_SECONDS" envDefault:"24"`
	TargetSeason     string `env:"TARGET_SEASON"      envDefault:"2024-25"`

	NATS NATSConfig
	DB   dbconfig.Config

	// Tuning is filled by Load from the env values and TUNING_FILE.
	Tuning Tuning
}

// NATSConfig enables event publishing when URL is set.
type NATSConfig struct {
	URL           string `env:"NATS_URL"`
	Stream        string `env:"NATS_STREAM"         envDefault:"LINEUP_EVENTS"`
	SubjectPrefix string `env:"NATS_SUBJECT_PREFIX" envDefault:"lineup.events"`
}

// Enabled reports whether a NATS server is configured.
func (n NATSConfig) Enabled() bool { return n.URL != "" }

// Tuning holds the game and scoring knobs.
type Tuning struct {
	ShotClockSeconds int                                `yaml:"shot_clock_seconds"`
	TargetSeason     string                             `yaml:"target_season"`
	LeaderboardLimit int                                `yaml:"leaderboard_limit"`
	Scoring          scoring.Config                     `yaml:"scoring"`
	Baselines        map[models.Slot]models.PlayerStats `yaml:"baselines"`
	ShareCode        sharecode.Options                  `yaml:"share_code"`
}

// DefaultTuning returns the built-in tuning.
func DefaultTuning() Tuning {
	return Tuning{
		ShotClockSeconds: DefaultShotClockSeconds,
		TargetSeason:     DefaultTargetSeason,
		LeaderboardLimit: DefaultLeaderboardLimit,
		Scoring:          scoring.DefaultConfig(),
		Baselines:        playerstats.DefaultBaselines(),
		ShareCode: sharecode.Options{
			Alphabet:    sharecode.Alphabet,
			Length:      sharecode.DefaultLength,
			MaxAttempts: sharecode.DefaultMaxAttempts,
		},
	}
}

// ShotClock returns the shot clock as a duration.
func (t Tuning) ShotClock() time.Duration {
	return time.Duration(t.ShotClockSeconds) * time.Second
}

// Validate rejects tuning the engine cannot run with.
func (t Tuning) Validate() error {
	if t.ShotClockSeconds <= 0 {
		return errors.New("shot_clock_seconds must be positive")
	}
	if !seasonPattern.MatchString(t.TargetSeason) {
		return fmt.Errorf("target_season %q must look like 2024-25", t.TargetSeason)
	}
	if t.LeaderboardLimit <= 0 {
		return errors.New("leaderboard_limit must be positive")
	}
	if err := t.Scoring.Validate(); err != nil {
		return err
	}
	for _, slot := range models.LineupSlots {
		if _, ok := t.Baselines[slot]; !ok {
			return fmt.Errorf("missing baseline for %s", slot)
		}
	}
	if t.ShareCode.Length < MinShareCodeLength {
		return fmt.Errorf("share_code.length must be at least %d", MinShareCodeLength)
	}
	if t.ShareCode.MaxAttempts < 1 {
		return errors.New("share_code.max_attempts must be at least 1")
	}
	return sharecode.ValidateAlphabet(t.ShareCode.Alphabet)
}

// Load parses the environment, then applies TUNING_FILE on top of it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	switch cfg.StoreDriver {
	case StoreMemory, StorePostgres, StoreSQLite:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.ShotClockSeconds <= 0 {
		cfg.ShotClockSeconds = DefaultShotClockSeconds
	}

	tuning := DefaultTuning()
	tuning.ShotClockSeconds = cfg.ShotClockSeconds
	tuning.TargetSeason = cfg.TargetSeason
	if cfg.TuningFile != "" {
		if err := LoadTuning(cfg.TuningFile, &tuning); err != nil {
			return nil, err
		}
	}
	if err := tuning.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning: %w", err)
	}
	cfg.Tuning = tuning
	return &cfg, nil
}

// LoadTuning overlays the YAML file at path onto t. Keys missing from the
// file keep their current value.
func LoadTuning(path string, t *Tuning) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(data, t); err != nil {
		return fmt.Errorf("failed to parse tuning file: %w", err)
	}
	if t.ShotClockSeconds <= 0 {
		t.ShotClockSeconds = DefaultShotClockSeconds
	}
	return nil
}
