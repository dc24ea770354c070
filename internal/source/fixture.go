package source

import (
	"context"
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"hockeycap/internal/domain"
)

//go:embed fixtures/teams.yaml
var seedTeams []byte

// FixtureSource serves the hand-authored seed table.
type FixtureSource struct {
	teams []domain.Team
	byID  map[string]int
}

type fixtureFile struct {
	Teams []domain.Team `yaml:"teams"`
}

// NewFixtureSource loads the embedded seed table. Every contract is
// validated; a bad record fails construction.
func NewFixtureSource() (*FixtureSource, error) {
	return ParseFixture(seedTeams)
}

func ParseFixture(data []byte) (*FixtureSource, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed table: %w", err)
	}

	src := &FixtureSource{byID: make(map[string]int, len(file.Teams))}
	for _, team := range file.Teams {
		if team.ID == "" {
			return nil, fmt.Errorf("seed team %q has no id", team.Name)
		}
		if _, dup := src.byID[team.ID]; dup {
			return nil, fmt.Errorf("duplicate seed team %q", team.ID)
		}
		if team.Roster == nil {
			team.Roster = []domain.Contract{}
		}
		if team.NonRoster == nil {
			team.NonRoster = []domain.Contract{}
		}
		for _, c := range slices.Concat(team.Roster, team.NonRoster) {
			if err := c.Validate(); err != nil {
				return nil, fmt.Errorf("seed team %s: %w", team.ID, err)
			}
		}
		src.byID[team.ID] = len(src.teams)
		src.teams = append(src.teams, team)
	}
	return src, nil
}

func (s *FixtureSource) Teams(ctx context.Context) ([]domain.Team, error) {
	out := make([]domain.Team, len(s.teams))
	for i, t := range s.teams {
		out[i] = cloneTeam(t)
	}
	return out, nil
}

func (s *FixtureSource) Team(ctx context.Context, teamID string) (domain.Team, error) {
	i, ok := s.byID[teamID]
	if !ok {
		return domain.Team{}, teamNotFound(teamID)
	}
	return cloneTeam(s.teams[i]), nil
}

// Patches returns the seed contract terms keyed by normalized player name,
// for overlaying onto rosters that carry no contract data.
func (s *FixtureSource) Patches() map[string]domain.ContractPatch {
	patches := make(map[string]domain.ContractPatch)
	for _, t := range s.teams {
		for _, c := range slices.Concat(t.Roster, t.NonRoster) {
			putSeedPatch(patches, c)
		}
	}
	return patches
}

func cloneTeam(t domain.Team) domain.Team {
	t.Roster = slices.Clone(t.Roster)
	t.NonRoster = slices.Clone(t.NonRoster)
	return t
}
