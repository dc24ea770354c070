// source: teams.sql

package db

import (
	"context"
	"time"
)

const deleteContractsForTeam = `-- name: DeleteContractsForTeam :exec
DELETE FROM contracts WHERE team_id = ?
`

func (q *Queries) DeleteContractsForTeam(ctx context.Context, teamID string) error {
	_, err := q.db.ExecContext(ctx, deleteContractsForTeam, teamID)
	return err
}

const getTeam = `-- name: GetTeam :one
SELECT id, name, city, logo_code, logo_url, ltir_used, fetched_at, created_at, updated_at
FROM teams WHERE id = ?
`

func (q *Queries) GetTeam(ctx context.Context, id string) (Team, error) {
	row := q.db.QueryRowContext(ctx, getTeam, id)
	var i Team
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.City,
		&i.LogoCode,
		&i.LogoUrl,
		&i.LtirUsed,
		&i.FetchedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getTeamFetchedAt = `-- name: GetTeamFetchedAt :one
SELECT fetched_at FROM teams WHERE id = ?
`

func (q *Queries) GetTeamFetchedAt(ctx context.Context, id string) (time.Time, error) {
	row := q.db.QueryRowContext(ctx, getTeamFetchedAt, id)
	var fetchedAt time.Time
	err := row.Scan(&fetchedAt)
	return fetchedAt, err
}

const getLeagueFetchedAt = `-- name: GetLeagueFetchedAt :one
SELECT fetched_at FROM league_snapshot WHERE id = 1
`

func (q *Queries) GetLeagueFetchedAt(ctx context.Context) (time.Time, error) {
	row := q.db.QueryRowContext(ctx, getLeagueFetchedAt)
	var fetchedAt time.Time
	err := row.Scan(&fetchedAt)
	return fetchedAt, err
}

const insertContract = `-- name: InsertContract :exec
INSERT INTO contracts (
    team_id, id, name, position, age, cap_hit, aav, contract_length, contract_year,
    expiry_status, clause, is_signed, on_roster, sort_order, headshot, number
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type InsertContractParams struct {
	TeamID         string
	ID             string
	Name           string
	Position       string
	Age            int64
	CapHit         int64
	Aav            int64
	ContractLength int64
	ContractYear   int64
	ExpiryStatus   string
	Clause         string
	IsSigned       bool
	OnRoster       bool
	SortOrder      int64
	Headshot       string
	Number         int64
}

func (q *Queries) InsertContract(ctx context.Context, arg InsertContractParams) error {
	_, err := q.db.ExecContext(ctx, insertContract,
		arg.TeamID,
		arg.ID,
		arg.Name,
		arg.Position,
		arg.Age,
		arg.CapHit,
		arg.Aav,
		arg.ContractLength,
		arg.ContractYear,
		arg.ExpiryStatus,
		arg.Clause,
		arg.IsSigned,
		arg.OnRoster,
		arg.SortOrder,
		arg.Headshot,
		arg.Number,
	)
	return err
}

const listContractsForTeam = `-- name: ListContractsForTeam :many
SELECT team_id, id, name, position, age, cap_hit, aav, contract_length, contract_year,
    expiry_status, clause, is_signed, on_roster, sort_order, headshot, number
FROM contracts WHERE team_id = ?
ORDER BY on_roster DESC, sort_order
`

func (q *Queries) ListContractsForTeam(ctx context.Context, teamID string) ([]Contract, error) {
	rows, err := q.db.QueryContext(ctx, listContractsForTeam, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Contract
	for rows.Next() {
		var i Contract
		if err := rows.Scan(
			&i.TeamID,
			&i.ID,
			&i.Name,
			&i.Position,
			&i.Age,
			&i.CapHit,
			&i.Aav,
			&i.ContractLength,
			&i.ContractYear,
			&i.ExpiryStatus,
			&i.Clause,
			&i.IsSigned,
			&i.OnRoster,
			&i.SortOrder,
			&i.Headshot,
			&i.Number,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listTeams = `-- name: ListTeams :many
SELECT id, name, city, logo_code, logo_url, ltir_used, fetched_at, created_at, updated_at
FROM teams ORDER BY name
`

func (q *Queries) ListTeams(ctx context.Context) ([]Team, error) {
	rows, err := q.db.QueryContext(ctx, listTeams)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Team
	for rows.Next() {
		var i Team
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.City,
			&i.LogoCode,
			&i.LogoUrl,
			&i.LtirUsed,
			&i.FetchedAt,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertTeam = `-- name: UpsertTeam :exec
INSERT INTO teams (id, name, city, logo_code, logo_url, ltir_used, fetched_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    city = excluded.city,
    logo_code = excluded.logo_code,
    logo_url = excluded.logo_url,
    ltir_used = excluded.ltir_used,
    fetched_at = excluded.fetched_at,
    updated_at = excluded.updated_at
`

type UpsertTeamParams struct {
	ID        string
	Name      string
	City      string
	LogoCode  string
	LogoUrl   string
	LtirUsed  int64
	FetchedAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) UpsertTeam(ctx context.Context, arg UpsertTeamParams) error {
	_, err := q.db.ExecContext(ctx, upsertTeam,
		arg.ID,
		arg.Name,
		arg.City,
		arg.LogoCode,
		arg.LogoUrl,
		arg.LtirUsed,
		arg.FetchedAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const upsertLeagueFetchedAt = `-- name: UpsertLeagueFetchedAt :exec
INSERT INTO league_snapshot (id, fetched_at) VALUES (1, ?)
ON CONFLICT(id) DO UPDATE SET fetched_at = excluded.fetched_at
`

func (q *Queries) UpsertLeagueFetchedAt(ctx context.Context, fetchedAt time.Time) error {
	_, err := q.db.ExecContext(ctx, upsertLeagueFetchedAt, fetchedAt)
	return err
}
