// Package playerstats resolves a player's advanced metrics for a target season.
package playerstats

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/mcdev12/lineupdraft/go/internal/models"
)

// DefaultLookbackSeasons is the number of trailing seasons averaged.
const DefaultLookbackSeasons = 3

// Source is the slice of reference data the resolver reads.
type Source interface {
	PlayerSeasons(playerName string) map[string]models.PlayerStats
	RecordedSlots(playerName string) []models.Slot
}

// Resolver averages in-window seasons and falls back to positional baselines.
type Resolver struct {
	source    Source
	lookback  int
	baselines map[models.Slot]models.PlayerStats
}

// NewResolver builds a resolver. A nil baseline table uses DefaultBaselines.
func NewResolver(source Source, lookback int, baselines map[models.Slot]models.PlayerStats) *Resolver {
	if lookback < 1 {
		lookback = DefaultLookbackSeasons
	}
	if baselines == nil {
		baselines = DefaultBaselines()
	}
	return &Resolver{source: source, lookback: lookback, baselines: baselines}
}

// Lookback returns the window size.
func (r *Resolver) Lookback() int { return r.lookback }

type seasonStats struct {
	season string
	stats  models.PlayerStats
}

// Resolve returns the player's metrics for targetSeason.
func (r *Resolver) Resolve(playerName, targetSeason string) models.StatsLookup {
	seasons := r.source.PlayerSeasons(playerName)
	if len(seasons) == 0 {
		return models.StatsLookup{
			Season:       targetSeason,
			Stats:        r.baseline(playerName),
			UsedFallback: true,
			SeasonsUsed:  []string{models.ProjectionSeason},
		}
	}

	var resolved []seasonStats
	for _, s := range LookbackSeasons(targetSeason, r.lookback) {
		if st, ok := seasons[s]; ok {
			resolved = append(resolved, seasonStats{season: s, stats: st})
		}
	}

	if len(resolved) == 0 {
		resolved = mostRecent(seasons, r.lookback)
	}

	used := make([]string, len(resolved))
	list := make([]models.PlayerStats, len(resolved))
	for i, e := range resolved {
		used[i] = e.season
		list[i] = e.stats
	}

	return models.StatsLookup{
		Season:          targetSeason,
		Stats:           Average(list),
		SeasonsUsed:     used,
		SeasonsAveraged: len(resolved),
	}
}

func (r *Resolver) baseline(playerName string) models.PlayerStats {
	primary := models.SlotSF
	if slots := r.source.RecordedSlots(playerName); len(slots) > 0 {
		primary = slots[0]
	}
	if b, ok := r.baselines[primary]; ok {
		return b
	}
	return r.baselines[models.SlotSF]
}

func mostRecent(seasons map[string]models.PlayerStats, n int) []seasonStats {
	all := make([]seasonStats, 0, len(seasons))
	for s, st := range seasons {
		all = append(all, seasonStats{season: s, stats: st})
	}
	sort.Slice(all, func(i, j int) bool {
		yi, yj := startYear(all[i].season), startYear(all[j].season)
		if yi != yj {
			return yi > yj
		}
		return all[i].season > all[j].season
	})
	if len(all) > n {
		all = all[:n]
	}
	return all
}

// Average is the per-metric arithmetic mean. An empty list averages to zero.
func Average(list []models.PlayerStats) models.PlayerStats {
	if len(list) == 0 {
		return models.PlayerStats{}
	}
	var sum models.PlayerStats
	for _, s := range list {
		sum.BPM += s.BPM
		sum.WS48 += s.WS48
		sum.VORP += s.VORP
		sum.EPM += s.EPM
	}
	n := float64(len(list))
	return models.PlayerStats{BPM: sum.BPM / n, WS48: sum.WS48 / n, VORP: sum.VORP / n, EPM: sum.EPM / n}
}

var seasonPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// startYear parses "2024-25" into 2024; anything else is 0.
func startYear(season string) int {
	m := seasonPattern.FindStringSubmatch(season)
	if m == nil {
		return 0
	}
	y, _ := strconv.Atoi(m[1])
	return y
}

// SeasonLabel formats a start year as "2024-25".
func SeasonLabel(start int) string {
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}

// LookbackSeasons lists the window ending at target, newest first.
// A target that is not in "YYYY-YY" form is its own single-season window.
func LookbackSeasons(target string, n int) []string {
	y := startYear(target)
	if y == 0 {
		return []string{target}
	}
	out := make([]string, n)
	for i := range out {
		out[i] = SeasonLabel(y - i)
	}
	return out
}
