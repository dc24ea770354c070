package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hockeycap/internal/capledger"
	"hockeycap/internal/domain"
)

func TestTeamService_ListTeamsSortedByName(t *testing.T) {
	s := newTestTeamService(t, "")

	teams, err := s.ListTeams(context.Background())
	require.NoError(t, err)
	require.Len(t, teams, 3)
	assert.Equal(t, []string{"Anaheim Ducks", "Tampa Bay Lightning", "Toronto Maple Leafs"},
		[]string{teams[0].Name, teams[1].Name, teams[2].Name})

	tbl := teams[1]
	assert.Equal(t, int64(88_000_000-9_500_000-7_875_000), tbl.CapSpace)
	assert.Equal(t, 2, tbl.ContractCount)
	assert.False(t, tbl.OverCeiling)
}

func TestTeamService_Dashboard(t *testing.T) {
	s := newTestTeamService(t, "")

	d, err := s.Dashboard(context.Background(), "tor")
	require.NoError(t, err)

	assert.Equal(t, "2024-25", d.Season)
	assert.Equal(t, int64(24_153_000), d.TotalCommitted)
	assert.Equal(t, int64(63_847_000), d.CapSpace)
	assert.False(t, d.OverCeiling)
	assert.True(t, d.BelowFloor)
	assert.Equal(t, 4, d.ContractCount, "roster plus signed non-roster")
	assert.Equal(t, 50, d.MaxContracts)

	assert.Len(t, d.Forwards, 1)
	assert.Len(t, d.Defense, 1)
	assert.Len(t, d.Goalies, 1)
	require.Len(t, d.SignedNonRoster, 1)
	assert.Equal(t, "tor8", d.SignedNonRoster[0].ID)
	require.Len(t, d.UnsignedProspects, 1)
	assert.Equal(t, "tor9", d.UnsignedProspects[0].ID)
}

func TestTeamService_DashboardUnknownTeam(t *testing.T) {
	s := newTestTeamService(t, "")
	_, err := s.Dashboard(context.Background(), "xxx")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestTeamService_DashboardInvalidPosition(t *testing.T) {
	s := newTestTeamService(t, "")
	src := s.src.(*staticSource)
	src.teams[0].Roster[1].Position = domain.Position("Z")

	_, err := s.Dashboard(context.Background(), "tor")
	var posErr *capledger.InvalidPositionError
	require.ErrorAs(t, err, &posErr)
	assert.Equal(t, "tor2", posErr.ID)
	assert.ErrorIs(t, err, capledger.ErrInvalidPosition)
}

const lightningPage = `<html><body><table>
<thead><tr><th>Player</th><th>Terms</th><th>2024-25</th></tr></thead>
<tbody>
<tr><td>Kucherov, Nikita</td><td>NMC</td><td>$12,000,000</td></tr>
<tr><td>Someone, Else</td><td></td><td>$1,000,000</td></tr>
</tbody></table></body></html>`

func TestTeamService_ImportContracts(t *testing.T) {
	srv := newCapWagesServer(t, lightningPage)
	s := newTestTeamService(t, srv.URL)
	ctx := context.Background()

	result, err := s.ImportContracts(ctx, "tbl")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Scraped)
	assert.Equal(t, 1, result.Matched)
	assert.Equal(t, int64(88_000_000-12_000_000-7_875_000), result.Dashboard.CapSpace)

	// later reads see the imported terms
	d, err := s.Dashboard(ctx, "tbl")
	require.NoError(t, err)
	assert.Equal(t, result.Dashboard.CapSpace, d.CapSpace)
	assert.Equal(t, domain.ClauseNoMovement, d.Forwards[0].Clause)

	list, err := s.ListTeams(ctx)
	require.NoError(t, err)
	assert.Equal(t, d.CapSpace, list[1].CapSpace)
}

func TestTeamService_ImportSurvivesRosterChanges(t *testing.T) {
	srv := newCapWagesServer(t, lightningPage)
	s := newTestTeamService(t, srv.URL)
	ctx := context.Background()

	_, err := s.ImportContracts(ctx, "tbl")
	require.NoError(t, err)

	// Hedman traded away, a call-up added
	src := s.src.(*staticSource)
	src.teams[1].Roster = []domain.Contract{
		src.teams[1].Roster[0],
		signed("tbl3", "Conor Geekie", domain.PositionCenter, 925_000),
	}

	d, err := s.Dashboard(ctx, "tbl")
	require.NoError(t, err)
	require.Len(t, d.Forwards, 2)
	assert.Empty(t, d.Defense)
	assert.Equal(t, int64(88_000_000-12_000_000-925_000), d.CapSpace, "imported terms still applied")

	list, err := s.ListTeams(ctx)
	require.NoError(t, err)
	assert.Equal(t, d.CapSpace, list[1].CapSpace)
}

func TestTeamService_ImportContractsUpstreamError(t *testing.T) {
	srv := newCapWagesServer(t, lightningPage)
	s := newTestTeamService(t, srv.URL)

	_, err := s.ImportContracts(context.Background(), "tor")
	assert.Error(t, err)

	d, err := s.Dashboard(context.Background(), "tor")
	require.NoError(t, err)
	assert.Equal(t, int64(63_847_000), d.CapSpace, "failed import leaves the team untouched")
}

func TestTeamService_FindPlayer(t *testing.T) {
	s := newTestTeamService(t, "")
	ctx := context.Background()

	c, found, err := s.FindPlayer(ctx, "  AUSTON matthews ")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "tor1", c.ID)

	c, found, err = s.FindPlayer(ctx, "niemela")
	require.NoError(t, err)
	require.True(t, found, "partial and diacritic-folded match")
	assert.Equal(t, "tor9", c.ID)

	_, found, err = s.FindPlayer(ctx, "Wayne Gretzky")
	require.NoError(t, err)
	assert.False(t, found)
}
