package capledger

import (
	"cmp"
	"slices"

	"hockeycap/internal/domain"
)

type PositionGroups struct {
	Forwards []domain.Contract `json:"forwards"`
	Defense  []domain.Contract `json:"defense"`
	Goalies  []domain.Contract `json:"goalies"`
}

type StatusGroups struct {
	SignedNonRoster   []domain.Contract `json:"signedNonRoster"`
	UnsignedProspects []domain.Contract `json:"unsignedProspects"`
}

// PartitionByPosition splits roster into forwards, defense and goalies,
// keeping roster order inside each group. A contract with a position outside
// the five known codes fails the whole call.
func PartitionByPosition(roster []domain.Contract) (PositionGroups, error) {
	groups := PositionGroups{
		Forwards: make([]domain.Contract, 0, len(roster)),
		Defense:  make([]domain.Contract, 0),
		Goalies:  make([]domain.Contract, 0),
	}
	for _, c := range roster {
		switch {
		case c.Position.IsForward():
			groups.Forwards = append(groups.Forwards, c)
		case c.Position == domain.PositionDefense:
			groups.Defense = append(groups.Defense, c)
		case c.Position == domain.PositionGoalie:
			groups.Goalies = append(groups.Goalies, c)
		default:
			return PositionGroups{}, &InvalidPositionError{ID: c.ID, Position: c.Position}
		}
	}
	return groups, nil
}

// PartitionByRosterStatus splits players off the active roster into signed
// contracts (cap hit descending) and unsigned prospects (name ascending).
// Ties on either key fall back to id ascending.
func PartitionByRosterStatus(nonRoster []domain.Contract) StatusGroups {
	groups := StatusGroups{
		SignedNonRoster:   make([]domain.Contract, 0),
		UnsignedProspects: make([]domain.Contract, 0),
	}
	for _, c := range nonRoster {
		if c.IsSigned {
			groups.SignedNonRoster = append(groups.SignedNonRoster, c)
		} else {
			groups.UnsignedProspects = append(groups.UnsignedProspects, c)
		}
	}

	slices.SortStableFunc(groups.SignedNonRoster, func(a, b domain.Contract) int {
		return cmp.Or(
			cmp.Compare(b.CapHit, a.CapHit),
			cmp.Compare(a.ID, b.ID),
		)
	})
	slices.SortStableFunc(groups.UnsignedProspects, func(a, b domain.Contract) int {
		return cmp.Or(
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.ID, b.ID),
		)
	})
	return groups
}
