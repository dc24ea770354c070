package service

import (
	"errors"

	"hockeycap/internal/source"
)

var (
	ErrTeamNotFound    = source.ErrTeamNotFound
	ErrSessionNotFound = errors.New("sandbox session not found")
	ErrTooManySessions = errors.New("too many open sandbox sessions")

	// ErrInvalidInput marks caller mistakes such as an empty question.
	ErrInvalidInput = errors.New("invalid input")
)
