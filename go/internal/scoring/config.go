package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/mcdev12/lineupdraft/go/internal/models"
)

// Range is the clamp interval for a metric before rescaling to [0, 100].
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Ranges holds one Range per metric.
type Ranges struct {
	BPM  Range `yaml:"bpm"`
	WS48 Range `yaml:"ws48"`
	VORP Range `yaml:"vorp"`
	EPM  Range `yaml:"epm"`
}

// Config tunes the scoring engine.
type Config struct {
	Weights         models.PlayerStats `yaml:"weights"`
	Ranges          Ranges             `yaml:"ranges"`
	LookbackSeasons int                `yaml:"lookback_seasons"`
	MaxSampleBoost  float64            `yaml:"max_sample_boost"`
}

// DefaultConfig weights per-possession metrics above cumulative ones.
func DefaultConfig() Config {
	return Config{
		Weights: models.PlayerStats{BPM: 0.35, WS48: 0.30, VORP: 0.15, EPM: 0.20},
		Ranges: Ranges{
			BPM:  Range{Min: -8, Max: 12},
			WS48: Range{Min: -0.05, Max: 0.35},
			VORP: Range{Min: -1, Max: 8},
			EPM:  Range{Min: -6, Max: 8},
		},
		LookbackSeasons: 3,
		MaxSampleBoost:  1.6,
	}
}

// Validate checks that weights sum to one and every range is non-empty.
func (c Config) Validate() error {
	w := c.Weights
	for _, v := range []float64{w.BPM, w.WS48, w.VORP, w.EPM} {
		if v < 0 {
			return errors.New("scoring weights must be non-negative")
		}
	}
	if sum := w.BPM + w.WS48 + w.VORP + w.EPM; math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("scoring weights must sum to 1, got %.6f", sum)
	}
	for name, r := range map[string]Range{
		"bpm":  c.Ranges.BPM,
		"ws48": c.Ranges.WS48,
		"vorp": c.Ranges.VORP,
		"epm":  c.Ranges.EPM,
	} {
		if r.Max <= r.Min {
			return fmt.Errorf("range for %s must have max > min", name)
		}
	}
	if c.LookbackSeasons < 1 {
		return errors.New("lookback_seasons must be at least 1")
	}
	if c.MaxSampleBoost < 1 {
		return errors.New("max_sample_boost must be at least 1")
	}
	return nil
}
