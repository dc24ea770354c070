package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidContract = errors.New("invalid contract")

// IsKnown reports whether p is one of the five roster positions.
func (p Position) IsKnown() bool {
	switch p {
	case PositionCenter, PositionLeftWing, PositionRightWing, PositionDefense, PositionGoalie:
		return true
	}
	return false
}

func (p Position) IsForward() bool {
	return p == PositionCenter || p == PositionLeftWing || p == PositionRightWing
}

// ParsePosition accepts the short codes used by the league feeds as well as
// the spelled-out names.
func ParsePosition(s string) (Position, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "C", "CENTER", "CENTRE":
		return PositionCenter, nil
	case "LW", "L", "LEFTWING", "LEFT WING":
		return PositionLeftWing, nil
	case "RW", "R", "RIGHTWING", "RIGHT WING":
		return PositionRightWing, nil
	case "D", "DEFENSE", "DEFENCE", "DEFENSEMAN":
		return PositionDefense, nil
	case "G", "GOALIE", "GOALTENDER":
		return PositionGoalie, nil
	}
	return "", fmt.Errorf("%w: unknown position %q", ErrInvalidContract, s)
}

func ParseExpiryStatus(s string) (ExpiryStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RFA", "RESTRICTEDFREEAGENT":
		return ExpiryRFA, nil
	case "UFA", "UNRESTRICTEDFREEAGENT":
		return ExpiryUFA, nil
	}
	return "", fmt.Errorf("%w: unknown expiry status %q", ErrInvalidContract, s)
}

// ParseClause maps the free-form clause text used by contract sites onto a
// Clause. Empty, "NONE" and "NULL" mean no clause.
func ParseClause(s string) (Clause, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NONE", "NULL", "-":
		return ClauseNone, nil
	case "NMC", "NOMOVEMENT":
		return ClauseNoMovement, nil
	case "NTC", "NOTRADE":
		return ClauseNoTrade, nil
	case "M-NTC", "MNTC", "MODIFIEDNOTRADE":
		return ClauseModifiedNoTrade, nil
	}
	return "", fmt.Errorf("%w: unknown clause %q", ErrInvalidContract, s)
}

// Validate checks the field constraints of a contract record. It is meant for
// the adapter layer that turns raw feed data into contracts.
func (c Contract) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidContract)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: %s: missing name", ErrInvalidContract, c.ID)
	}
	if !c.Position.IsKnown() {
		return fmt.Errorf("%w: %s: unknown position %q", ErrInvalidContract, c.ID, c.Position)
	}
	if c.Age < 0 {
		return fmt.Errorf("%w: %s: negative age", ErrInvalidContract, c.ID)
	}
	if c.ContractLength < 0 {
		return fmt.Errorf("%w: %s: negative contract length", ErrInvalidContract, c.ID)
	}
	if c.ContractLength == 0 && c.IsSigned {
		return fmt.Errorf("%w: %s: signed contract with zero length", ErrInvalidContract, c.ID)
	}
	if c.ContractLength > 0 && (c.ContractYear < 1 || c.ContractYear > c.ContractLength) {
		return fmt.Errorf("%w: %s: contract year %d outside 1..%d", ErrInvalidContract, c.ID, c.ContractYear, c.ContractLength)
	}
	if !c.IsSigned && c.CapHit != 0 {
		return fmt.Errorf("%w: %s: unsigned player carries a cap hit", ErrInvalidContract, c.ID)
	}
	if c.ExpiryStatus != ExpiryRFA && c.ExpiryStatus != ExpiryUFA {
		return fmt.Errorf("%w: %s: unknown expiry status %q", ErrInvalidContract, c.ID, c.ExpiryStatus)
	}
	switch c.Clause {
	case ClauseNone, ClauseNoTrade, ClauseNoMovement, ClauseModifiedNoTrade:
	default:
		return fmt.Errorf("%w: %s: unknown clause %q", ErrInvalidContract, c.ID, c.Clause)
	}
	return nil
}

// DefaultExpiry follows the league convention used when a feed does not
// carry the status: players under 27 expire as restricted free agents.
func DefaultExpiry(age int) ExpiryStatus {
	if age < 27 {
		return ExpiryRFA
	}
	return ExpiryUFA
}
