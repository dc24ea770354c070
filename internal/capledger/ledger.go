// Package capledger computes salary-cap figures and roster groupings for a
// single team. Everything here is a pure function of its inputs.
package capledger

import (
	"slices"

	"hockeycap/internal/domain"
)

// Ledger is one team's roster against the league limits. Derived figures are
// recomputed on every call and never stored.
type Ledger struct {
	TeamID    string
	Ceiling   int64
	Floor     int64
	LTIRUsed  int64
	Roster    []domain.Contract
	NonRoster []domain.Contract
}

// New builds a ledger from a team snapshot. The team's slices are copied so
// later mutations of the snapshot do not leak into the ledger.
func New(team domain.Team, ceiling, floor int64) Ledger {
	return Ledger{
		TeamID:    team.ID,
		Ceiling:   ceiling,
		Floor:     floor,
		LTIRUsed:  team.LTIRUsed,
		Roster:    slices.Clone(team.Roster),
		NonRoster: slices.Clone(team.NonRoster),
	}
}

// ComputeCapSpace returns ceiling minus the summed cap hits of roster. The
// result is negative when the roster is over the ceiling.
func ComputeCapSpace(roster []domain.Contract, ceiling int64) int64 {
	return ceiling - totalCapHit(roster)
}

func totalCapHit(roster []domain.Contract) int64 {
	var sum int64
	for _, c := range roster {
		sum += c.CapHit
	}
	return sum
}

func (l Ledger) TotalCommitted() int64 {
	return totalCapHit(l.Roster)
}

func (l Ledger) CapSpace() int64 {
	return ComputeCapSpace(l.Roster, l.Ceiling)
}

func (l Ledger) OverCeiling() bool {
	return l.CapSpace() < 0
}

func (l Ledger) BelowFloor() bool {
	return l.TotalCommitted() < l.Floor
}

// ContractCount counts every roster contract plus the signed players off
// the roster. Unsigned prospects do not count.
func (l Ledger) ContractCount() int {
	n := len(l.Roster)
	for _, c := range l.NonRoster {
		if c.IsSigned {
			n++
		}
	}
	return n
}

func (l Ledger) Groups() (PositionGroups, error) {
	return PartitionByPosition(l.Roster)
}

func (l Ledger) Reserve() StatusGroups {
	return PartitionByRosterStatus(l.NonRoster)
}

// WithRoster returns a copy of the ledger with its active roster replaced.
func (l Ledger) WithRoster(roster []domain.Contract) Ledger {
	l.Roster = roster
	return l
}
