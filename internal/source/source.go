// Package source supplies team rosters to the cap services. A source is
// either the embedded seed table, the public league API, or a cached
// wrapper around one of those.
package source

import (
	"context"
	"errors"
	"fmt"

	"hockeycap/internal/domain"
)

// ErrTeamNotFound is returned by Team when the source has no such team.
var ErrTeamNotFound = errors.New("team not found")

type RosterSource interface {
	// Teams returns every team with its roster filled in.
	Teams(ctx context.Context) ([]domain.Team, error)
	Team(ctx context.Context, teamID string) (domain.Team, error)
}

func teamNotFound(teamID string) error {
	return fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
}
