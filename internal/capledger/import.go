package capledger

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"hockeycap/internal/domain"
)

// NormalizeName folds a player name into the key used to match external
// contract data: lower case, combining marks stripped, whitespace collapsed.
// "Nikita Kučerov" and "nikita  kucerov" share a key.
func NormalizeName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// PutPatch stores patch under the normalized form of name. A later call
// whose name folds to the same key replaces the earlier patch.
func PutPatch(patches map[string]domain.ContractPatch, name string, patch domain.ContractPatch) {
	patches[NormalizeName(name)] = patch
}

// ImportExternalContracts overlays patches onto the roster entries whose
// normalized name has a patch. Unmatched contracts are copied unchanged.
// Two different players that fold to the same key receive the same patch;
// names are the only join key the external data offers.
func ImportExternalContracts(roster []domain.Contract, patches map[string]domain.ContractPatch) []domain.Contract {
	out := make([]domain.Contract, len(roster))
	for i, c := range roster {
		if p, ok := patches[NormalizeName(c.Name)]; ok {
			c = ApplyPatch(c, p)
		}
		out[i] = c
	}
	return out
}

// CountMatches reports how many roster entries have a patch.
func CountMatches(roster []domain.Contract, patches map[string]domain.ContractPatch) int {
	n := 0
	for _, c := range roster {
		if _, ok := patches[NormalizeName(c.Name)]; ok {
			n++
		}
	}
	return n
}

func ApplyPatch(c domain.Contract, p domain.ContractPatch) domain.Contract {
	if p.CapHit != nil {
		c.CapHit = *p.CapHit
	}
	if p.AAV != nil {
		c.AAV = *p.AAV
	}
	if p.ContractLength != nil {
		c.ContractLength = *p.ContractLength
	}
	if p.Clause != nil {
		c.Clause = *p.Clause
	}
	if p.IsSigned != nil {
		c.IsSigned = *p.IsSigned
	}
	return c
}
