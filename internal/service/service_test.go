package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"hockeycap/internal/api"
	"hockeycap/internal/config"
	"hockeycap/internal/domain"
	"hockeycap/internal/source"
)

type staticSource struct {
	teams []domain.Team
}

func (s *staticSource) Teams(ctx context.Context) ([]domain.Team, error) {
	out := make([]domain.Team, len(s.teams))
	for i, t := range s.teams {
		out[i] = cloneTeam(t)
	}
	return out, nil
}

func (s *staticSource) Team(ctx context.Context, teamID string) (domain.Team, error) {
	for _, t := range s.teams {
		if t.ID == teamID {
			return cloneTeam(t), nil
		}
	}
	return domain.Team{}, source.ErrTeamNotFound
}

func cloneTeam(t domain.Team) domain.Team {
	t.Roster = slices.Clone(t.Roster)
	t.NonRoster = slices.Clone(t.NonRoster)
	return t
}

var testLeague = &config.League{Season: "2024-25", Ceiling: 88_000_000, Floor: 65_000_000, MaxContracts: 50}

func signed(id, name string, pos domain.Position, capHit int64) domain.Contract {
	return domain.Contract{
		ID: id, Name: name, Position: pos, Age: 28,
		CapHit: capHit, AAV: capHit, ContractLength: 4, ContractYear: 1,
		ExpiryStatus: domain.ExpiryUFA, IsSigned: true,
	}
}

func testTeams() []domain.Team {
	return []domain.Team{
		{
			ID: "tor", Name: "Toronto Maple Leafs", City: "Toronto", LogoCode: "tor",
			Roster: []domain.Contract{
				signed("tor1", "Auston Matthews", domain.PositionCenter, 13_250_000),
				signed("tor2", "Morgan Rielly", domain.PositionDefense, 7_500_000),
				signed("tor3", "Joseph Woll", domain.PositionGoalie, 3_403_000),
			},
			NonRoster: []domain.Contract{
				signed("tor8", "Fraser Minten", domain.PositionCenter, 886_666),
				{ID: "tor9", Name: "Topi Niemelä", Position: domain.PositionDefense, Age: 22, ExpiryStatus: domain.ExpiryRFA},
			},
		},
		{
			ID: "tbl", Name: "Tampa Bay Lightning", City: "Tampa Bay", LogoCode: "tbl",
			Roster: []domain.Contract{
				signed("tbl1", "Nikita Kucherov", domain.PositionRightWing, 9_500_000),
				signed("tbl2", "Victor Hedman", domain.PositionDefense, 7_875_000),
			},
			NonRoster: []domain.Contract{},
		},
		{
			ID: "ana", Name: "Anaheim Ducks", City: "Anaheim", LogoCode: "ana",
			Roster:    []domain.Contract{signed("ana1", "Trevor Zegras", domain.PositionCenter, 5_750_000)},
			NonRoster: []domain.Contract{},
		},
	}
}

func newTestTeamService(t *testing.T, capwagesURL string) *TeamService {
	t.Helper()
	if capwagesURL == "" {
		capwagesURL = "http://127.0.0.1:1"
	}
	cw := api.NewCapWagesClient(&config.Config{CapWagesBaseURL: capwagesURL})
	return NewTeamService(&staticSource{teams: testTeams()}, cw, testLeague, zerolog.Nop())
}

func newCapWagesServer(t *testing.T, page string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teams/tampa_bay_lightning" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(page))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func requireTeam(t *testing.T, s *TeamService, id string) domain.Team {
	t.Helper()
	team, err := s.Team(context.Background(), id)
	require.NoError(t, err)
	return team
}
