// Package scoring turns raw player metrics into bounded contributions and a team score.
package scoring

import (
	"math"

	"github.com/mcdev12/lineupdraft/go/internal/models"
)

// StatsResolver resolves a player's metrics for a season.
type StatsResolver interface {
	Resolve(playerName, targetSeason string) models.StatsLookup
}

// PlayerScore is the normalized breakdown for one set of metrics.
type PlayerScore struct {
	NormalizedMetrics models.PlayerStats `json:"normalizedMetrics"`
	Contribution      float64            `json:"contribution"`
}

// LineupScore is the scored result for a full lineup.
type LineupScore struct {
	TeamScore         float64          `json:"teamScore"`
	PlayerScores      []models.RunPick `json:"playerScores"`
	UsedFallbackStats bool             `json:"usedFallbackStats"`
}

// Engine scores lineups against a target season.
type Engine struct {
	cfg          Config
	resolver     StatsResolver
	targetSeason string
}

// NewEngine creates an engine. cfg is assumed to be validated.
func NewEngine(cfg Config, resolver StatsResolver, targetSeason string) *Engine {
	return &Engine{cfg: cfg, resolver: resolver, targetSeason: targetSeason}
}

// TargetSeason returns the season the engine resolves stats for.
func (e *Engine) TargetSeason() string { return e.targetSeason }

// ScorePlayer normalizes stats and computes the weighted contribution.
func (e *Engine) ScorePlayer(stats models.PlayerStats) PlayerScore {
	r := e.cfg.Ranges
	n := models.PlayerStats{
		BPM:  Normalize(stats.BPM, r.BPM),
		WS48: Normalize(stats.WS48, r.WS48),
		VORP: Normalize(stats.VORP, r.VORP),
		EPM:  Normalize(stats.EPM, r.EPM),
	}
	w := e.cfg.Weights
	raw := n.BPM*w.BPM + n.WS48*w.WS48 + n.VORP*w.VORP + n.EPM*w.EPM
	return PlayerScore{NormalizedMetrics: n, Contribution: clamp(Round1(raw), 0, 100)}
}

// AdjustForSampleSize scales VORP up for players with a short history.
func (e *Engine) AdjustForSampleSize(lookup models.StatsLookup) models.StatsLookup {
	if lookup.UsedFallback || lookup.SeasonsAveraged <= 0 || lookup.SeasonsAveraged >= e.cfg.LookbackSeasons {
		return lookup
	}
	factor := math.Min(e.cfg.MaxSampleBoost, float64(e.cfg.LookbackSeasons)/float64(lookup.SeasonsAveraged))
	lookup.Stats.VORP *= factor
	return lookup
}

// ScoreLineup resolves and scores every pick. Penalty picks score zero.
func (e *Engine) ScoreLineup(picks []models.LineupPick) LineupScore {
	out := LineupScore{PlayerScores: make([]models.RunPick, 0, len(picks))}
	if len(picks) == 0 {
		return out
	}

	var total float64
	for _, p := range picks {
		rp := models.RunPick{
			Slot:       p.Slot,
			PlayerName: p.PlayerName,
			TeamAbbr:   p.TeamAbbr,
			TeamName:   p.TeamName,
			IsPenalty:  p.IsPenalty,
		}
		if !p.IsPenalty {
			lookup := e.AdjustForSampleSize(e.resolver.Resolve(p.PlayerName, e.targetSeason))
			score := e.ScorePlayer(lookup.Stats)
			rp.Stats = lookup.Stats
			rp.NormalizedMetrics = score.NormalizedMetrics
			rp.Contribution = score.Contribution
			rp.UsedFallback = lookup.UsedFallback
			rp.SeasonsUsed = lookup.SeasonsUsed
			if lookup.UsedFallback {
				out.UsedFallbackStats = true
			}
		}
		total += rp.Contribution
		out.PlayerScores = append(out.PlayerScores, rp)
	}

	out.TeamScore = clamp(Round1(total/float64(len(picks))), 0, 100)
	return out
}

// Normalize rescales v from r onto [0, 100], clamping out-of-range input.
// A degenerate range maps everything to the midpoint.
func Normalize(v float64, r Range) float64 {
	if r.Max == r.Min {
		return 50
	}
	return clamp((v-r.Min)/(r.Max-r.Min)*100, 0, 100)
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
