package game

import (
	"fmt"

	"mediator/internal/bargain"
	"mediator/internal/efg"
)

// Leaf is one terminal of the tree: the action profile that reaches it, the
// resolved fighters and the outcome attached to it.
type Leaf struct {
	Profile  [bargain.NumParties]string
	Fighters bargain.Coalition
	Outcome  *bargain.Outcome
}

// bindPayoffs walks the three layers, resolves the fighters of every path
// and attaches the matching outcome to the terminal it reaches.
func (m *Model) bindPayoffs() error {
	var leaves []Leaf
	root := m.game.Root()
	for i0, n0 := range root.Children() {
		a0 := root.Infoset().Actions()[i0]
		for i1, n1 := range n0.Children() {
			a1 := n0.Infoset().Actions()[i1]
			for i2, n2 := range n1.Children() {
				a2 := n1.Infoset().Actions()[i2]
				profile := [bargain.NumParties]string{a0.Label, a1.Label, a2.Label}
				leaf, err := m.bindLeaf(n2, profile)
				if err != nil {
					return fmt.Errorf("bind %v: %w", profile, err)
				}
				leaves = append(leaves, leaf)
			}
		}
	}
	if want := pow(len(ActionLabels(0)), bargain.NumParties); len(leaves) != want {
		return fmt.Errorf("%w: bound %d leaves, want %d", efg.ErrStructure, len(leaves), want)
	}
	m.leaves = leaves
	return nil
}

func (m *Model) bindLeaf(n *efg.Node, profile [bargain.NumParties]string) (Leaf, error) {
	if !n.IsTerminal() {
		return Leaf{}, fmt.Errorf("%w: node at depth %d is not terminal", efg.ErrStructure, n.Depth())
	}
	fighters, err := ResolveFighters(profile[:]...)
	if err != nil {
		return Leaf{}, err
	}
	o, ok := m.outcomes.Lookup(fighters)
	if !ok {
		return Leaf{}, fmt.Errorf("%w: no outcome for %s", bargain.ErrMalformedCoalition, fighters)
	}
	if err := n.SetOutcome(m.efgOutcomes[o]); err != nil {
		return Leaf{}, err
	}
	return Leaf{Profile: profile, Fighters: fighters, Outcome: o}, nil
}

func pow(b, e int) int {
	r := 1
	for ; e > 0; e-- {
		r *= b
	}
	return r
}
