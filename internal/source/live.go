package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"hockeycap/internal/api"
	"hockeycap/internal/capledger"
	"hockeycap/internal/config"
	"hockeycap/internal/constants"
	"hockeycap/internal/domain"
	"hockeycap/internal/metrics"
)

// LiveSource builds teams from the public league API. The API has rosters
// but no contract terms, so known terms are overlaid from the seed table by
// player name.
type LiveSource struct {
	nhl     *api.NHLClient
	patches map[string]domain.ContractPatch
	ltir    map[string]int64
	limit   int
	now     func() time.Time
	logger  zerolog.Logger
}

func NewLiveSource(nhl *api.NHLClient, seed *FixtureSource, cfg *config.Config, logger zerolog.Logger) *LiveSource {
	ltir := make(map[string]int64, len(seed.teams))
	for _, t := range seed.teams {
		ltir[t.ID] = t.LTIRUsed
	}
	return &LiveSource{
		nhl:     nhl,
		patches: seed.Patches(),
		ltir:    ltir,
		limit:   max(cfg.FetchLimit, 1),
		now:     time.Now,
		logger:  logger.With().Str("source", "live").Logger(),
	}
}

// Teams never fails because of a single team: a roster that cannot be
// fetched is left empty and counted.
func (s *LiveSource) Teams(ctx context.Context) ([]domain.Team, error) {
	standings, err := s.standings(ctx)
	if err != nil {
		return nil, err
	}

	teams := make([]domain.Team, len(standings))
	g := new(errgroup.Group)
	g.SetLimit(s.limit)
	for i, st := range standings {
		g.Go(func() error {
			teams[i] = s.buildTeam(ctx, st)
			return nil
		})
	}
	_ = g.Wait()

	s.logger.Info().Int("teams", len(teams)).Msg("league rosters fetched")
	return teams, nil
}

func (s *LiveSource) Team(ctx context.Context, teamID string) (domain.Team, error) {
	standings, err := s.standings(ctx)
	if err != nil {
		return domain.Team{}, err
	}
	for _, st := range standings {
		if strings.EqualFold(st.TeamAbbrev.Default, teamID) {
			return s.buildTeam(ctx, st), nil
		}
	}
	return domain.Team{}, teamNotFound(teamID)
}

func (s *LiveSource) standings(ctx context.Context) ([]api.StandingsTeam, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	resp, err := s.nhl.GetStandings(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch standings")
		return nil, fmt.Errorf("failed to fetch standings: %w", err)
	}
	return resp.Standings, nil
}

func (s *LiveSource) buildTeam(ctx context.Context, st api.StandingsTeam) domain.Team {
	id := strings.ToLower(st.TeamAbbrev.Default)
	team := domain.Team{
		ID:        id,
		Name:      st.TeamName.Default,
		City:      st.PlaceName.Default,
		LogoCode:  id,
		LogoURL:   st.TeamLogo,
		LTIRUsed:  s.ltir[id],
		Roster:    []domain.Contract{},
		NonRoster: []domain.Contract{},
	}

	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	resp, err := s.nhl.GetRoster(ctx, st.TeamAbbrev.Default)
	if err != nil {
		s.logger.Warn().Err(err).Str("team", id).Msg("roster fetch failed, leaving roster empty")
		metrics.RosterFetchFailures.WithLabelValues(id).Inc()
		return team
	}

	now := s.now()
	for _, p := range resp.All() {
		c, err := s.toContract(p, id, now)
		if err != nil {
			s.logger.Warn().Err(err).Str("team", id).Int64("player", p.ID).Msg("skipping player")
			continue
		}
		team.Roster = append(team.Roster, c)
	}
	team.Roster = capledger.ImportExternalContracts(team.Roster, s.patches)

	s.logger.Debug().
		Str("team", id).
		Int("players", len(team.Roster)).
		Int("with_terms", capledger.CountMatches(team.Roster, s.patches)).
		Msg("roster built")
	return team
}

func (s *LiveSource) toContract(p api.RosterPlayer, teamID string, now time.Time) (domain.Contract, error) {
	pos, err := domain.ParsePosition(p.PositionCode)
	if err != nil {
		return domain.Contract{}, err
	}
	age := ageOn(p.BirthDate, now)
	c := domain.Contract{
		ID:             strconv.FormatInt(p.ID, 10),
		Name:           strings.TrimSpace(p.FirstName.Default + " " + p.LastName.Default),
		Position:       pos,
		Age:            age,
		ContractLength: 1,
		ContractYear:   1,
		ExpiryStatus:   domain.DefaultExpiry(age),
		IsSigned:       true,
		TeamID:         teamID,
		Headshot:       p.Headshot,
		Number:         p.SweaterNumber,
	}
	return c, c.Validate()
}

// ageOn returns completed years between birthDate (YYYY-MM-DD) and now, or
// 0 when the date is missing or malformed.
func ageOn(birthDate string, now time.Time) int {
	born, err := time.Parse(time.DateOnly, birthDate)
	if err != nil {
		return 0
	}
	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	return max(age, 0)
}

func putSeedPatch(patches map[string]domain.ContractPatch, c domain.Contract) {
	capHit, aav := c.CapHit, c.AAV
	length := c.ContractLength
	clause := c.Clause
	signed := c.IsSigned
	capledger.PutPatch(patches, c.Name, domain.ContractPatch{
		CapHit:         &capHit,
		AAV:            &aav,
		ContractLength: &length,
		Clause:         &clause,
		IsSigned:       &signed,
	})
}
