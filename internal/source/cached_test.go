package source

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hockeycap/internal/config"
	"hockeycap/internal/database"
	"hockeycap/internal/db"
	"hockeycap/internal/domain"
	"hockeycap/internal/repository"
)

type countingSource struct {
	mu    sync.Mutex
	calls int
	err   error
	teams []domain.Team
}

func (s *countingSource) Teams(ctx context.Context) ([]domain.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.teams, nil
}

func (s *countingSource) Team(ctx context.Context, teamID string) (domain.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return domain.Team{}, s.err
	}
	for _, t := range s.teams {
		if t.ID == teamID {
			return t, nil
		}
	}
	return domain.Team{}, teamNotFound(teamID)
}

func newCachedFixture(t *testing.T) (*CachedSource, *countingSource, *time.Time) {
	t.Helper()
	sqlDB, err := database.New(&config.Config{DBPath: filepath.Join(t.TempDir(), "cap.db")}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	repo := repository.NewTeamRepository(sqlDB, db.New(sqlDB), zerolog.Nop())

	inner := &countingSource{teams: []domain.Team{
		{ID: "tor", Name: "Toronto Maple Leafs", Roster: []domain.Contract{
			{ID: "tor1", Name: "Auston Matthews", Position: domain.PositionCenter, Age: 26, CapHit: 13_250_000, AAV: 13_250_000, ContractLength: 4, ContractYear: 1, ExpiryStatus: domain.ExpiryUFA, IsSigned: true, TeamID: "tor"},
		}, NonRoster: []domain.Contract{}},
		{ID: "ana", Name: "Anaheim Ducks", Roster: []domain.Contract{}, NonRoster: []domain.Contract{}},
	}}

	now := time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)
	cached := NewCachedSource(inner, repo, &config.Config{SnapshotTTL: 15 * time.Minute}, zerolog.Nop())
	cached.now = func() time.Time { return now }
	return cached, inner, &now
}

func TestCachedSource_TeamServesFreshSnapshot(t *testing.T) {
	cached, inner, _ := newCachedFixture(t)
	ctx := context.Background()

	first, err := cached.Team(ctx, "tor")
	require.NoError(t, err)
	second, err := cached.Team(ctx, "tor")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first, second)
}

func TestCachedSource_TeamRefetchesAfterTTL(t *testing.T) {
	cached, inner, now := newCachedFixture(t)
	ctx := context.Background()

	_, err := cached.Team(ctx, "tor")
	require.NoError(t, err)

	*now = now.Add(time.Hour)
	_, err = cached.Team(ctx, "tor")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedSource_TeamServesStaleOnFailure(t *testing.T) {
	cached, inner, now := newCachedFixture(t)
	ctx := context.Background()

	_, err := cached.Team(ctx, "tor")
	require.NoError(t, err)

	*now = now.Add(time.Hour)
	inner.err = errors.New("upstream down")

	team, err := cached.Team(ctx, "tor")
	require.NoError(t, err)
	assert.Equal(t, "Auston Matthews", team.Roster[0].Name)
}

func TestCachedSource_TeamFailureWithoutSnapshot(t *testing.T) {
	cached, inner, _ := newCachedFixture(t)
	inner.err = errors.New("upstream down")

	_, err := cached.Team(context.Background(), "tor")
	assert.EqualError(t, err, "upstream down")
}

func TestCachedSource_TeamNotFound(t *testing.T) {
	cached, _, _ := newCachedFixture(t)
	_, err := cached.Team(context.Background(), "zzz")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestCachedSource_Teams(t *testing.T) {
	cached, inner, now := newCachedFixture(t)
	ctx := context.Background()

	teams, err := cached.Teams(ctx)
	require.NoError(t, err)
	assert.Len(t, teams, 2)

	teams, err = cached.Teams(ctx)
	require.NoError(t, err)
	assert.Len(t, teams, 2)
	assert.Equal(t, 1, inner.calls, "second read served from store")

	*now = now.Add(time.Hour)
	inner.err = errors.New("upstream down")
	teams, err = cached.Teams(ctx)
	require.NoError(t, err, "stale snapshots served")
	assert.Len(t, teams, 2)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedSource_TeamsAfterSingleTeamRead(t *testing.T) {
	cached, inner, _ := newCachedFixture(t)
	ctx := context.Background()

	_, err := cached.Team(ctx, "tor")
	require.NoError(t, err)

	teams, err := cached.Teams(ctx)
	require.NoError(t, err)
	assert.Len(t, teams, 2, "one cached team is not the league")
	assert.Equal(t, 2, inner.calls)

	teams, err = cached.Teams(ctx)
	require.NoError(t, err)
	assert.Len(t, teams, 2)
	assert.Equal(t, 2, inner.calls, "league pass now cached")
}

func TestCachedSource_TeamServedFromLeaguePass(t *testing.T) {
	cached, inner, _ := newCachedFixture(t)
	ctx := context.Background()

	_, err := cached.Teams(ctx)
	require.NoError(t, err)

	team, err := cached.Team(ctx, "tor")
	require.NoError(t, err)
	assert.Equal(t, "Toronto Maple Leafs", team.Name)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedSource_TeamsFailureWithPartialSnapshots(t *testing.T) {
	cached, inner, _ := newCachedFixture(t)
	ctx := context.Background()

	_, err := cached.Team(ctx, "tor")
	require.NoError(t, err)

	inner.err = errors.New("upstream down")
	_, err = cached.Teams(ctx)
	assert.EqualError(t, err, "upstream down")
}

func TestCachedSource_StoresDuplicatePlayerIDs(t *testing.T) {
	cached, inner, _ := newCachedFixture(t)
	ctx := context.Background()
	tor := &inner.teams[0]
	tor.Roster = append(tor.Roster, tor.Roster[0])

	_, err := cached.Team(ctx, "tor")
	require.NoError(t, err)
	team, err := cached.Team(ctx, "tor")
	require.NoError(t, err)

	assert.Len(t, team.Roster, 2)
	assert.Equal(t, 1, inner.calls, "second read served from store")
}
