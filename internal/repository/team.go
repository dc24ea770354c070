package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hockeycap/internal/constants"
	"hockeycap/internal/db"
	"hockeycap/internal/domain"

	"github.com/rs/zerolog"
)

// TeamSnapshot is a stored team together with the time it was fetched from
// its source.
type TeamSnapshot struct {
	Team      domain.Team
	FetchedAt time.Time
}

type TeamRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewTeamRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *TeamRepository {
	return &TeamRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// Get returns sql.ErrNoRows when no snapshot of teamID exists.
func (r *TeamRepository) Get(ctx context.Context, teamID string) (*TeamSnapshot, error) {
	team, err := r.queries.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	contracts, err := r.queries.ListContractsForTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts for %s: %w", teamID, err)
	}
	return toSnapshot(team, contracts), nil
}

// List returns every stored snapshot ordered by team name. It returns
// sql.ErrNoRows until a full league pass has been stored with UpsertLeague,
// so snapshots written one team at a time never pass for the whole league.
func (r *TeamRepository) List(ctx context.Context) ([]TeamSnapshot, error) {
	if _, err := r.queries.GetLeagueFetchedAt(ctx); err != nil {
		return nil, err
	}

	teams, err := r.queries.ListTeams(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]TeamSnapshot, 0, len(teams))
	for _, t := range teams {
		contracts, err := r.queries.ListContractsForTeam(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list contracts for %s: %w", t.ID, err)
		}
		result = append(result, *toSnapshot(t, contracts))
	}
	return result, nil
}

func (r *TeamRepository) Upsert(ctx context.Context, team domain.Team, fetchedAt time.Time) error {
	return r.write(ctx, []domain.Team{team}, fetchedAt, false)
}

// UpsertLeague stores a full league pass and marks the league as fetched at
// fetchedAt in the same transaction.
func (r *TeamRepository) UpsertLeague(ctx context.Context, teams []domain.Team, fetchedAt time.Time) error {
	return r.write(ctx, teams, fetchedAt, true)
}

// write replaces the stored snapshots of teams in one transaction.
// Contracts of a team are rewritten wholesale so removed players disappear.
func (r *TeamRepository) write(ctx context.Context, teams []domain.Team, fetchedAt time.Time, league bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := time.Now()

	for _, team := range teams {
		err := qtx.UpsertTeam(ctx, db.UpsertTeamParams{
			ID:        team.ID,
			Name:      team.Name,
			City:      team.City,
			LogoCode:  team.LogoCode,
			LogoUrl:   team.LogoURL,
			LtirUsed:  team.LTIRUsed,
			FetchedAt: fetchedAt,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("failed to upsert team %s: %w", team.ID, err)
		}

		if err := qtx.DeleteContractsForTeam(ctx, team.ID); err != nil {
			return fmt.Errorf("failed to clear contracts for %s: %w", team.ID, err)
		}

		rows := contractRows(team)
		for i := 0; i < len(rows); i += constants.DBBatchSize {
			end := min(i+constants.DBBatchSize, len(rows))
			for _, row := range rows[i:end] {
				if err := qtx.InsertContract(ctx, row); err != nil {
					return fmt.Errorf("failed to insert contract %s/%s: %w", team.ID, row.ID, err)
				}
			}
		}
	}

	if league {
		if err := qtx.UpsertLeagueFetchedAt(ctx, fetchedAt); err != nil {
			return fmt.Errorf("failed to mark league snapshot: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	r.logger.Debug().Int("teams", len(teams)).Bool("league", league).Time("fetched_at", fetchedAt).Msg("team snapshots stored")
	return nil
}

// ShouldRefresh reports whether the snapshot of teamID is missing or older
// than ttl at now. Only the fetch time is read.
func (r *TeamRepository) ShouldRefresh(ctx context.Context, teamID string, ttl time.Duration, now time.Time) (bool, error) {
	fetchedAt, err := r.queries.GetTeamFetchedAt(ctx, teamID)
	return r.shouldRefresh(teamID, fetchedAt, err, ttl, now)
}

// ShouldRefreshLeague is ShouldRefresh for the last full league pass.
func (r *TeamRepository) ShouldRefreshLeague(ctx context.Context, ttl time.Duration, now time.Time) (bool, error) {
	fetchedAt, err := r.queries.GetLeagueFetchedAt(ctx)
	return r.shouldRefresh("league", fetchedAt, err, ttl, now)
}

func (r *TeamRepository) shouldRefresh(scope string, fetchedAt time.Time, err error, ttl time.Duration, now time.Time) (bool, error) {
	if errors.Is(err, sql.ErrNoRows) {
		r.logger.Debug().Str("scope", scope).Msg("no snapshot, should refresh")
		return true, nil
	}
	if err != nil {
		r.logger.Error().Err(err).Str("scope", scope).Msg("failed to get snapshot age")
		return false, err
	}

	timeSince := now.Sub(fetchedAt)
	shouldRefresh := timeSince > ttl
	r.logger.Debug().
		Str("scope", scope).
		Time("fetched_at", fetchedAt).
		Dur("time_since", timeSince).
		Dur("ttl", ttl).
		Bool("should_refresh", shouldRefresh).
		Msg("checking if snapshot should refresh")

	return shouldRefresh, nil
}

func contractRows(team domain.Team) []db.InsertContractParams {
	rows := make([]db.InsertContractParams, 0, len(team.Roster)+len(team.NonRoster))
	add := func(list []domain.Contract, onRoster bool) {
		for i, c := range list {
			rows = append(rows, db.InsertContractParams{
				TeamID:         team.ID,
				ID:             c.ID,
				Name:           c.Name,
				Position:       string(c.Position),
				Age:            int64(c.Age),
				CapHit:         c.CapHit,
				Aav:            c.AAV,
				ContractLength: int64(c.ContractLength),
				ContractYear:   int64(c.ContractYear),
				ExpiryStatus:   string(c.ExpiryStatus),
				Clause:         string(c.Clause),
				IsSigned:       c.IsSigned,
				OnRoster:       onRoster,
				SortOrder:      int64(i),
				Headshot:       c.Headshot,
				Number:         int64(c.Number),
			})
		}
	}
	add(team.Roster, true)
	add(team.NonRoster, false)
	return rows
}

func toSnapshot(t db.Team, contracts []db.Contract) *TeamSnapshot {
	team := domain.Team{
		ID:        t.ID,
		Name:      t.Name,
		City:      t.City,
		LogoCode:  t.LogoCode,
		LogoURL:   t.LogoUrl,
		LTIRUsed:  t.LtirUsed,
		Roster:    []domain.Contract{},
		NonRoster: []domain.Contract{},
	}
	for _, c := range contracts {
		contract := domain.Contract{
			ID:             c.ID,
			Name:           c.Name,
			Position:       domain.Position(c.Position),
			Age:            int(c.Age),
			CapHit:         c.CapHit,
			AAV:            c.Aav,
			ContractLength: int(c.ContractLength),
			ContractYear:   int(c.ContractYear),
			ExpiryStatus:   domain.ExpiryStatus(c.ExpiryStatus),
			Clause:         domain.Clause(c.Clause),
			IsSigned:       c.IsSigned,
			TeamID:         c.TeamID,
			Headshot:       c.Headshot,
			Number:         int(c.Number),
		}
		if c.OnRoster {
			team.Roster = append(team.Roster, contract)
		} else {
			team.NonRoster = append(team.NonRoster, contract)
		}
	}
	return &TeamSnapshot{Team: team, FetchedAt: t.FetchedAt}
}
