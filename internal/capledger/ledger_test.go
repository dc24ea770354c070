package capledger

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hockeycap/internal/domain"
)

func contract(id string, pos domain.Position, capHit int64) domain.Contract {
	return domain.Contract{
		ID:             id,
		Name:           "Player " + id,
		Position:       pos,
		Age:            25,
		CapHit:         capHit,
		AAV:            capHit,
		ContractLength: 3,
		ContractYear:   1,
		ExpiryStatus:   domain.ExpiryUFA,
		IsSigned:       true,
		TeamID:         "tor",
	}
}

func twoPlayerRoster() []domain.Contract {
	return []domain.Contract{
		contract("a", domain.PositionCenter, 13_250_000),
		contract("b", domain.PositionRightWing, 10_903_000),
	}
}

func randomRoster(r *rand.Rand, n int) []domain.Contract {
	positions := []domain.Position{
		domain.PositionCenter, domain.PositionLeftWing, domain.PositionRightWing,
		domain.PositionDefense, domain.PositionGoalie,
	}
	roster := make([]domain.Contract, n)
	for i := range roster {
		roster[i] = contract(fmt.Sprintf("p%02d", i), positions[r.Intn(len(positions))], int64(r.Intn(14_000_000)))
	}
	return roster
}

func TestComputeCapSpace_Scenario(t *testing.T) {
	assert.Equal(t, int64(63_847_000), ComputeCapSpace(twoPlayerRoster(), 88_000_000))
}

func TestComputeCapSpace_Empty(t *testing.T) {
	assert.Equal(t, int64(88_000_000), ComputeCapSpace(nil, 88_000_000))
}

func TestComputeCapSpace_OverCeiling(t *testing.T) {
	roster := []domain.Contract{
		contract("a", domain.PositionCenter, 50_000_000),
		contract("b", domain.PositionDefense, 45_000_000),
	}
	assert.Equal(t, int64(-7_000_000), ComputeCapSpace(roster, 88_000_000))
}

func TestComputeCapSpace_MatchesSum(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		roster := randomRoster(r, r.Intn(30))
		var sum int64
		for _, c := range roster {
			sum += c.CapHit
		}
		require.Equal(t, 88_000_000-sum, ComputeCapSpace(roster, 88_000_000))
	}
}

func TestComputeCapSpace_UnsignedCountsZero(t *testing.T) {
	roster := twoPlayerRoster()
	prospect := contract("c", domain.PositionGoalie, 0)
	prospect.IsSigned = false
	roster = append(roster, prospect)
	assert.Equal(t, int64(63_847_000), ComputeCapSpace(roster, 88_000_000))
}

func TestLedger_DerivedFigures(t *testing.T) {
	signed := contract("n1", domain.PositionDefense, 900_000)
	prospect := contract("n2", domain.PositionCenter, 0)
	prospect.IsSigned = false

	team := domain.Team{
		ID:        "tor",
		LTIRUsed:  1_000_000,
		Roster:    twoPlayerRoster(),
		NonRoster: []domain.Contract{signed, prospect},
	}
	l := New(team, 88_000_000, 65_000_000)

	assert.Equal(t, int64(24_153_000), l.TotalCommitted())
	assert.Equal(t, int64(63_847_000), l.CapSpace())
	assert.Equal(t, 3, l.ContractCount())
	assert.False(t, l.OverCeiling())
	assert.True(t, l.BelowFloor())
	assert.Equal(t, int64(1_000_000), l.LTIRUsed)

	team.Roster[0].CapHit = 0
	assert.Equal(t, int64(63_847_000), l.CapSpace(), "ledger must not alias the snapshot")
}

func TestLedger_RemoveRecomputes(t *testing.T) {
	l := New(domain.Team{ID: "tor", Roster: twoPlayerRoster()}, 88_000_000, 65_000_000)

	roster, removed, err := RemovePlayer(l.Roster, "a")
	require.NoError(t, err)
	l = l.WithRoster(roster)

	assert.Equal(t, "a", removed.ID)
	require.Len(t, l.Roster, 1)
	assert.Equal(t, "b", l.Roster[0].ID)
	assert.Equal(t, int64(77_097_000), l.CapSpace())
}

func TestPartitionByPosition(t *testing.T) {
	roster := []domain.Contract{
		contract("c1", domain.PositionCenter, 1),
		contract("d1", domain.PositionDefense, 1),
		contract("lw", domain.PositionLeftWing, 1),
		contract("g1", domain.PositionGoalie, 1),
		contract("rw", domain.PositionRightWing, 1),
	}
	groups, err := PartitionByPosition(roster)
	require.NoError(t, err)

	ids := func(cs []domain.Contract) []string {
		out := make([]string, len(cs))
		for i, c := range cs {
			out[i] = c.ID
		}
		return out
	}
	assert.Equal(t, []string{"c1", "lw", "rw"}, ids(groups.Forwards))
	assert.Equal(t, []string{"d1"}, ids(groups.Defense))
	assert.Equal(t, []string{"g1"}, ids(groups.Goalies))
}

func TestPartitionByPosition_EveryContractOnce(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 50; i++ {
		roster := randomRoster(r, r.Intn(40))
		groups, err := PartitionByPosition(roster)
		require.NoError(t, err)
		require.Equal(t, len(roster), len(groups.Forwards)+len(groups.Defense)+len(groups.Goalies))

		seen := map[string]int{}
		for _, g := range [][]domain.Contract{groups.Forwards, groups.Defense, groups.Goalies} {
			for _, c := range g {
				seen[c.ID]++
			}
		}
		for _, c := range roster {
			require.Equal(t, 1, seen[c.ID], c.ID)
		}
	}
}

func TestPartitionByPosition_Empty(t *testing.T) {
	groups, err := PartitionByPosition(nil)
	require.NoError(t, err)
	assert.NotNil(t, groups.Forwards)
	assert.Empty(t, groups.Forwards)
	assert.Empty(t, groups.Defense)
	assert.Empty(t, groups.Goalies)
}

func TestPartitionByPosition_UnknownPosition(t *testing.T) {
	roster := []domain.Contract{
		contract("c1", domain.PositionCenter, 1),
		contract("zz", "Z", 1),
	}
	_, err := PartitionByPosition(roster)
	require.ErrorIs(t, err, ErrInvalidPosition)

	var posErr *InvalidPositionError
	require.ErrorAs(t, err, &posErr)
	assert.Equal(t, "zz", posErr.ID)
	assert.Equal(t, domain.Position("Z"), posErr.Position)
}

func TestPartitionByRosterStatus_Ordering(t *testing.T) {
	s1 := contract("s1", domain.PositionDefense, 800_000)
	s2 := contract("s2", domain.PositionCenter, 1_200_000)
	s3 := contract("s0", domain.PositionCenter, 800_000)

	u1 := contract("u2", domain.PositionCenter, 0)
	u1.IsSigned, u1.Name = false, "Zach Prospect"
	u2 := contract("u1", domain.PositionGoalie, 0)
	u2.IsSigned, u2.Name = false, "Adam Prospect"
	u3 := contract("u0", domain.PositionDefense, 0)
	u3.IsSigned, u3.Name = false, "Zach Prospect"

	groups := PartitionByRosterStatus([]domain.Contract{s1, u1, s2, u2, s3, u3})

	var signed, unsigned []string
	for _, c := range groups.SignedNonRoster {
		signed = append(signed, c.ID)
	}
	for _, c := range groups.UnsignedProspects {
		unsigned = append(unsigned, c.ID)
	}
	if diff := cmp.Diff([]string{"s2", "s0", "s1"}, signed); diff != "" {
		t.Errorf("signed order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"u1", "u0", "u2"}, unsigned); diff != "" {
		t.Errorf("prospect order mismatch (-want +got):\n%s", diff)
	}
}

func TestPartitionByRosterStatus_Deterministic(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	input := randomRoster(r, 25)
	for i := range input {
		if i%3 == 0 {
			input[i].IsSigned = false
			input[i].CapHit = 0
		}
	}
	original := slices.Clone(input)

	first := PartitionByRosterStatus(input)
	second := PartitionByRosterStatus(input)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("partition not deterministic (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(original, input); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}
