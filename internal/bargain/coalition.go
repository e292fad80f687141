package bargain

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// Party identifies one of the three participants.
type Party int

// Label returns the player name used in the game file, e.g. "P0".
func (p Party) Label() string { return "P" + strconv.Itoa(int(p)) }

// Parties returns the party indices in order.
func Parties() []Party {
	out := make([]Party, NumParties)
	for i := range out {
		out[i] = Party(i)
	}
	return out
}

// Coalition is the set of parties in active conflict, stored as a bitmask.
// The zero value is the empty coalition (peace).
type Coalition uint8

// GeneralWar is the coalition of all three parties.
const GeneralWar Coalition = 1<<NumParties - 1

// NewCoalition builds a coalition from party indices. Duplicates are fine.
func NewCoalition(members ...int) (Coalition, error) {
	var c Coalition
	for _, m := range members {
		if m < 0 || m >= NumParties {
			return 0, fmt.Errorf("%w: party index %d out of range", ErrMalformedCoalition, m)
		}
		c |= 1 << m
	}
	return c, nil
}

// Pair returns the dyadic coalition {i, j}.
func Pair(i, j int) Coalition {
	return Coalition(1<<i | 1<<j)
}

// Union returns c ∪ o.
func (c Coalition) Union(o Coalition) Coalition { return c | o }

// Has reports whether party i is a member.
func (c Coalition) Has(i int) bool { return c&(1<<i) != 0 }

// Size is the number of members.
func (c Coalition) Size() int { return bits.OnesCount8(uint8(c)) }

// Empty reports whether nobody is fighting.
func (c Coalition) Empty() bool { return c == 0 }

// Members returns the member indices in increasing order.
func (c Coalition) Members() []int {
	var out []int
	for i := 0; i < NumParties; i++ {
		if c.Has(i) {
			out = append(out, i)
		}
	}
	return out
}

// Outside returns the non-members in increasing order.
func (c Coalition) Outside() []int {
	var out []int
	for i := 0; i < NumParties; i++ {
		if !c.Has(i) {
			out = append(out, i)
		}
	}
	return out
}

// Check enforces the reachable sizes 0, 2 and 3.
func (c Coalition) Check() error {
	if c&^GeneralWar != 0 {
		return fmt.Errorf("%w: bits %08b outside the party range", ErrMalformedCoalition, uint8(c))
	}
	if c.Size() == 1 {
		return fmt.Errorf("%w: single-member coalition %s", ErrMalformedCoalition, c)
	}
	return nil
}

// String renders the members like a tuple: "(0, 1, 2)". Peace is "()".
func (c Coalition) String() string {
	members := c.Members()
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = strconv.Itoa(m)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Coalitions returns every reachable war coalition: general war first,
// then the dyads in lexicographic order.
func Coalitions() []Coalition {
	out := []Coalition{GeneralWar}
	for i := 0; i < NumParties; i++ {
		for j := i + 1; j < NumParties; j++ {
			out = append(out, Pair(i, j))
		}
	}
	return out
}
