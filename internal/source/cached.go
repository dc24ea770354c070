package source

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"hockeycap/internal/api"
	"hockeycap/internal/config"
	"hockeycap/internal/domain"
	"hockeycap/internal/metrics"
	"hockeycap/internal/repository"
)

// SnapshotStore persists fetched teams between requests. List only answers
// once a full league pass was stored with UpsertLeague.
type SnapshotStore interface {
	Get(ctx context.Context, teamID string) (*repository.TeamSnapshot, error)
	ShouldRefresh(ctx context.Context, teamID string, ttl time.Duration, now time.Time) (bool, error)
	Upsert(ctx context.Context, team domain.Team, fetchedAt time.Time) error
	List(ctx context.Context) ([]repository.TeamSnapshot, error)
	ShouldRefreshLeague(ctx context.Context, ttl time.Duration, now time.Time) (bool, error)
	UpsertLeague(ctx context.Context, teams []domain.Team, fetchedAt time.Time) error
}

// CachedSource serves snapshots younger than the TTL from the store and
// refetches older ones. When a refetch fails a stale snapshot is served
// instead of an error.
type CachedSource struct {
	inner  RosterSource
	store  SnapshotStore
	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger
}

func NewCachedSource(inner RosterSource, store SnapshotStore, cfg *config.Config, logger zerolog.Logger) *CachedSource {
	return &CachedSource{
		inner:  inner,
		store:  store,
		ttl:    cfg.SnapshotTTL,
		now:    time.Now,
		logger: logger.With().Str("source", "cache").Logger(),
	}
}

func (s *CachedSource) Teams(ctx context.Context) ([]domain.Team, error) {
	refresh, err := s.store.ShouldRefreshLeague(ctx, s.ttl, s.now())
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to read league snapshot age")
		refresh = true
	}
	if !refresh {
		snaps, err := s.store.List(ctx)
		if err == nil {
			metrics.SnapshotReads.WithLabelValues("fresh").Inc()
			return snapshotTeams(snaps), nil
		}
		s.logger.Warn().Err(err).Msg("failed to read snapshots")
	}

	teams, err := s.inner.Teams(ctx)
	if err != nil {
		// partial snapshots from single-team reads are never served as the league
		snaps, listErr := s.store.List(ctx)
		if listErr == nil && len(snaps) > 0 {
			s.logger.Warn().Err(err).Int("teams", len(snaps)).Msg("refetch failed, serving stale snapshots")
			metrics.SnapshotReads.WithLabelValues("stale").Inc()
			return snapshotTeams(snaps), nil
		}
		return nil, err
	}
	metrics.SnapshotReads.WithLabelValues("miss").Inc()

	if err := s.store.UpsertLeague(ctx, teams, s.now()); err != nil {
		s.logger.Warn().Err(err).Msg("failed to store snapshots")
	}
	return teams, nil
}

func (s *CachedSource) Team(ctx context.Context, teamID string) (domain.Team, error) {
	refresh, err := s.store.ShouldRefresh(ctx, teamID, s.ttl, s.now())
	if err != nil {
		s.logger.Warn().Err(err).Str("team", teamID).Msg("failed to read snapshot age")
		refresh = true
	}
	if !refresh {
		snap, err := s.store.Get(ctx, teamID)
		if err == nil {
			metrics.SnapshotReads.WithLabelValues("fresh").Inc()
			return snap.Team, nil
		}
		s.logger.Warn().Err(err).Str("team", teamID).Msg("failed to read snapshot")
	}

	team, err := s.inner.Team(ctx, teamID)
	if err != nil {
		if errors.Is(err, ErrTeamNotFound) {
			return domain.Team{}, err
		}
		snap, getErr := s.store.Get(ctx, teamID)
		if getErr != nil {
			return domain.Team{}, err
		}
		s.logger.Warn().Err(err).Str("team", teamID).Time("fetched_at", snap.FetchedAt).Msg("refetch failed, serving stale snapshot")
		metrics.SnapshotReads.WithLabelValues("stale").Inc()
		return snap.Team, nil
	}
	metrics.SnapshotReads.WithLabelValues("miss").Inc()

	if err := s.store.Upsert(ctx, team, s.now()); err != nil {
		s.logger.Warn().Err(err).Str("team", teamID).Msg("failed to store snapshot")
	}
	return team, nil
}

func snapshotTeams(snaps []repository.TeamSnapshot) []domain.Team {
	teams := make([]domain.Team, len(snaps))
	for i, snap := range snaps {
		teams[i] = snap.Team
	}
	return teams
}

// New builds the configured roster source behind the snapshot cache.
func New(cfg *config.Config, seed *FixtureSource, nhl *api.NHLClient, store *repository.TeamRepository, logger zerolog.Logger) RosterSource {
	var inner RosterSource = seed
	if cfg.RosterSource == config.SourceLive {
		inner = NewLiveSource(nhl, seed, cfg, logger)
	}
	logger.Info().Str("roster_source", cfg.RosterSource).Dur("snapshot_ttl", cfg.SnapshotTTL).Msg("roster source ready")
	return NewCachedSource(inner, store, cfg, logger)
}
