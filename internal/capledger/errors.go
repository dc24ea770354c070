package capledger

import (
	"errors"
	"fmt"

	"hockeycap/internal/domain"
)

var (
	ErrNotFound        = errors.New("player not found")
	ErrInvalidPosition = errors.New("invalid position")
)

// NotFoundError is returned by RemovePlayer and RestorePlayer when the id is
// absent from the sequence they were given.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %q", ErrNotFound, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

type InvalidPositionError struct {
	ID       string
	Position domain.Position
}

func (e *InvalidPositionError) Error() string {
	return fmt.Sprintf("%s %q for player %q", ErrInvalidPosition, e.Position, e.ID)
}

func (e *InvalidPositionError) Is(target error) bool {
	return target == ErrInvalidPosition
}
