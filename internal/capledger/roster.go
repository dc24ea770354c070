package capledger

import "hockeycap/internal/domain"

// RemovePlayer takes the first contract with the given id out of roster. The
// returned slice is freshly allocated; on NotFound the input is returned
// as-is.
func RemovePlayer(roster []domain.Contract, id string) ([]domain.Contract, domain.Contract, error) {
	return take(roster, id)
}

// RestorePlayer is RemovePlayer over the pool of removed players. The caller
// appends the restored contract back onto its active roster.
func RestorePlayer(removed []domain.Contract, id string) ([]domain.Contract, domain.Contract, error) {
	return take(removed, id)
}

func take(seq []domain.Contract, id string) ([]domain.Contract, domain.Contract, error) {
	for i, c := range seq {
		if c.ID != id {
			continue
		}
		out := make([]domain.Contract, 0, len(seq)-1)
		out = append(out, seq[:i]...)
		out = append(out, seq[i+1:]...)
		return out, c, nil
	}
	return seq, domain.Contract{}, &NotFoundError{ID: id}
}
