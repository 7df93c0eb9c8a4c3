package refdata

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
)

//go:embed data/*.json
var embedded embed.FS

const (
	teamsFile     = "teams.json"
	rostersFile   = "rosters.json"
	positionsFile = "player_positions.json"
	statsFile     = "stats.json"
)

// LoadEmbedded loads the dataset bundled with the binary.
func LoadEmbedded() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded dataset: %w", err)
	}
	return LoadFS(sub)
}

// LoadDir loads a dataset written by the ingestion job.
func LoadDir(dir string) (*Catalog, error) {
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads the four dataset files from fsys.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	var ds Dataset
	if err := readJSON(fsys, teamsFile, &ds.Teams); err != nil {
		return nil, err
	}
	if err := readJSON(fsys, rostersFile, &ds.Rosters); err != nil {
		return nil, err
	}
	if err := readJSON(fsys, positionsFile, &ds.Positions); err != nil {
		return nil, err
	}
	if err := readJSON(fsys, statsFile, &ds.Stats); err != nil {
		return nil, err
	}

	c, err := NewCatalog(ds)
	if err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}

	log.Info().
		Int("teams", len(ds.Teams)).
		Int("rosters", len(ds.Rosters)).
		Int("stat_rows", len(ds.Stats)).
		Msg("reference data loaded")
	return c, nil
}

func readJSON(fsys fs.FS, name string, dst any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}
