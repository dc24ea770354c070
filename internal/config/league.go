package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

//go:embed league.yaml
var defaultLeague []byte

// League holds the cap constants for one season. They are supplied once per
// season and never computed.
type League struct {
	Season       string
	Ceiling      int64
	Floor        int64
	MaxContracts int
}

type seasonTable struct {
	Current string                 `yaml:"current"`
	Seasons map[string]seasonLimit `yaml:"seasons"`
}

type seasonLimit struct {
	Ceiling      int64 `yaml:"ceiling"`
	Floor        int64 `yaml:"floor"`
	MaxContracts int   `yaml:"max_contracts"`
}

func LoadLeague(cfg *Config, logger zerolog.Logger) (*League, error) {
	data := defaultLeague
	if cfg.LeagueFile != "" {
		b, err := os.ReadFile(cfg.LeagueFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read league file: %w", err)
		}
		data = b
	}

	league, err := ParseLeague(data, cfg.Season)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("season", league.Season).
		Int64("ceiling", league.Ceiling).
		Int64("floor", league.Floor).
		Int("max_contracts", league.MaxContracts).
		Msg("league limits loaded")

	return league, nil
}

// ParseLeague decodes a season table and picks season, or the table's
// current season when season is empty.
func ParseLeague(data []byte, season string) (*League, error) {
	var table seasonTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse league table: %w", err)
	}

	if season == "" {
		season = table.Current
	}
	limit, ok := table.Seasons[season]
	if !ok {
		return nil, fmt.Errorf("season %q not in league table", season)
	}
	if limit.Ceiling <= 0 || limit.Floor < 0 || limit.Floor > limit.Ceiling {
		return nil, fmt.Errorf("season %q: floor %d and ceiling %d are inconsistent", season, limit.Floor, limit.Ceiling)
	}
	if limit.MaxContracts <= 0 {
		limit.MaxContracts = 50
	}

	return &League{
		Season:       season,
		Ceiling:      limit.Ceiling,
		Floor:        limit.Floor,
		MaxContracts: limit.MaxContracts,
	}, nil
}
