package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"hockeycap/internal/api"
	"hockeycap/internal/capledger"
	"hockeycap/internal/config"
	"hockeycap/internal/constants"
	"hockeycap/internal/domain"
	"hockeycap/internal/metrics"
	"hockeycap/internal/scraper"
	"hockeycap/internal/source"

	"github.com/rs/zerolog"
)

type TeamSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	City          string `json:"city"`
	LogoCode      string `json:"logoCode"`
	LogoURL       string `json:"logoUrl,omitempty"`
	CapSpace      int64  `json:"capSpace"`
	ContractCount int    `json:"contractCount"`
	OverCeiling   bool   `json:"overCeiling"`
}

// Dashboard is the full cap picture of one team for the current season.
type Dashboard struct {
	TeamID         string `json:"teamId"`
	Name           string `json:"name"`
	City           string `json:"city"`
	LogoCode       string `json:"logoCode"`
	LogoURL        string `json:"logoUrl,omitempty"`
	Season         string `json:"season"`
	Ceiling        int64  `json:"ceiling"`
	Floor          int64  `json:"floor"`
	LTIRUsed       int64  `json:"ltirUsed"`
	TotalCommitted int64  `json:"totalCommitted"`
	CapSpace       int64  `json:"capSpace"`
	OverCeiling    bool   `json:"overCeiling"`
	BelowFloor     bool   `json:"belowFloor"`
	ContractCount  int    `json:"contractCount"`
	MaxContracts   int    `json:"maxContracts"`
	capledger.PositionGroups
	capledger.StatusGroups
}

type ImportResult struct {
	Dashboard *Dashboard `json:"dashboard"`
	Matched   int        `json:"matched"`
	Scraped   int        `json:"scraped"`
}

// TeamService answers team and dashboard queries. Imported contract terms
// are kept as patches and applied over every read of the roster source, so
// later roster changes still surface.
type TeamService struct {
	src      source.RosterSource
	capwages *api.CapWagesClient
	league   *config.League
	logger   zerolog.Logger

	mu      sync.RWMutex
	imports map[string]map[string]domain.ContractPatch
}

func NewTeamService(src source.RosterSource, capwages *api.CapWagesClient, league *config.League, logger zerolog.Logger) *TeamService {
	return &TeamService{
		src:      src,
		capwages: capwages,
		league:   league,
		logger:   logger,
		imports:  make(map[string]map[string]domain.ContractPatch),
	}
}

func (s *TeamService) League() *config.League {
	return s.league
}

// Team returns the current snapshot of teamID, including imported terms.
func (s *TeamService) Team(ctx context.Context, teamID string) (domain.Team, error) {
	team, err := s.src.Team(ctx, teamID)
	if err != nil {
		return domain.Team{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return applyImports(team, s.imports[team.ID]), nil
}

func (s *TeamService) teams(ctx context.Context) ([]domain.Team, error) {
	teams, err := s.src.Teams(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, t := range teams {
		teams[i] = applyImports(t, s.imports[t.ID])
	}
	return teams, nil
}

func (s *TeamService) ListTeams(ctx context.Context) ([]TeamSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	teams, err := s.teams(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list teams")
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	summaries := make([]TeamSummary, 0, len(teams))
	for _, t := range teams {
		l := capledger.New(t, s.league.Ceiling, s.league.Floor)
		summaries = append(summaries, TeamSummary{
			ID:            t.ID,
			Name:          t.Name,
			City:          t.City,
			LogoCode:      t.LogoCode,
			LogoURL:       t.LogoURL,
			CapSpace:      l.CapSpace(),
			ContractCount: l.ContractCount(),
			OverCeiling:   l.OverCeiling(),
		})
	}
	slices.SortFunc(summaries, func(a, b TeamSummary) int {
		return strings.Compare(a.Name, b.Name)
	})

	s.logger.Debug().Int("count", len(summaries)).Msg("teams listed")
	return summaries, nil
}

func (s *TeamService) Dashboard(ctx context.Context, teamID string) (*Dashboard, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	team, err := s.Team(ctx, teamID)
	if err != nil {
		s.logger.Warn().Err(err).Str("team", teamID).Msg("failed to load team")
		return nil, err
	}
	return BuildDashboard(team, s.league)
}

// BuildDashboard derives every dashboard figure from team and the season
// limits. A roster contract with an unknown position fails the build.
func BuildDashboard(team domain.Team, league *config.League) (*Dashboard, error) {
	l := capledger.New(team, league.Ceiling, league.Floor)
	groups, err := l.Groups()
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		TeamID:         team.ID,
		Name:           team.Name,
		City:           team.City,
		LogoCode:       team.LogoCode,
		LogoURL:        team.LogoURL,
		Season:         league.Season,
		Ceiling:        l.Ceiling,
		Floor:          l.Floor,
		LTIRUsed:       l.LTIRUsed,
		TotalCommitted: l.TotalCommitted(),
		CapSpace:       l.CapSpace(),
		OverCeiling:    l.OverCeiling(),
		BelowFloor:     l.BelowFloor(),
		ContractCount:  l.ContractCount(),
		MaxContracts:   league.MaxContracts,
		PositionGroups: groups,
		StatusGroups:   l.Reserve(),
	}, nil
}

// ImportContracts scrapes the team's contract page and overlays the terms
// onto its roster and reserve list by player name. The scraped patches
// replace those of any earlier import of the same team.
func (s *TeamService) ImportContracts(ctx context.Context, teamID string) (*ImportResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	team, err := s.src.Team(ctx, teamID)
	if err != nil {
		return nil, err
	}

	apiCtx, apiCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer apiCancel()

	page, err := s.capwages.GetTeamPage(apiCtx, team.Name)
	if err != nil {
		s.logger.Error().Err(err).Str("team", teamID).Msg("failed to fetch contract page")
		return nil, fmt.Errorf("failed to fetch contract page: %w", err)
	}

	patches, err := scraper.ParseCapWages(page)
	if err != nil {
		s.logger.Error().Err(err).Str("team", teamID).Msg("failed to parse contract page")
		return nil, err
	}

	matched := capledger.CountMatches(team.Roster, patches) + capledger.CountMatches(team.NonRoster, patches)
	team = applyImports(team, patches)

	dashboard, err := BuildDashboard(team, s.league)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.imports[team.ID] = patches
	s.mu.Unlock()

	metrics.ContractsImported.WithLabelValues(team.ID).Add(float64(matched))
	s.logger.Info().
		Str("team", team.ID).
		Int("scraped", len(patches)).
		Int("matched", matched).
		Msg("contracts imported")

	return &ImportResult{Dashboard: dashboard, Matched: matched, Scraped: len(patches)}, nil
}

// FindPlayer looks a player up by name across every team. An exact
// normalized match wins over a partial one.
func (s *TeamService) FindPlayer(ctx context.Context, query string) (domain.Contract, bool, error) {
	key := capledger.NormalizeName(query)
	if key == "" {
		return domain.Contract{}, false, nil
	}

	teams, err := s.teams(ctx)
	if err != nil {
		return domain.Contract{}, false, err
	}

	var partial *domain.Contract
	for _, t := range teams {
		for _, c := range slices.Concat(t.Roster, t.NonRoster) {
			name := capledger.NormalizeName(c.Name)
			if name == key {
				return c, true, nil
			}
			if partial == nil && strings.Contains(name, key) {
				partial = &c
			}
		}
	}
	if partial != nil {
		return *partial, true, nil
	}
	return domain.Contract{}, false, nil
}

func applyImports(team domain.Team, patches map[string]domain.ContractPatch) domain.Team {
	if len(patches) == 0 {
		return team
	}
	team.Roster = capledger.ImportExternalContracts(team.Roster, patches)
	team.NonRoster = capledger.ImportExternalContracts(team.NonRoster, patches)
	return team
}
