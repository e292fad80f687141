// Package efg holds an extensive-form game tree (players, personal nodes,
// information sets, outcomes) and writes it in Gambit's .efg text format.
//
// The tree is a data sink: nothing here solves or analyses a game. Nodes own
// their children; information sets group nodes of the same player that the
// player cannot tell apart; outcomes are shared by any number of terminals.
package efg

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrStructure is returned when a tree operation would leave the game
// inconsistent (wrong player, mismatched action count, non-terminal node).
var ErrStructure = errors.New("invalid game structure")

// Game is a tree-form game under construction.
type Game struct {
	Title   string
	Comment string

	players  []*Player
	outcomes []*Outcome
	root     *Node
}

// NewTree returns a game consisting of a single terminal root node.
func NewTree(title string) *Game {
	g := &Game{Title: title}
	g.root = &Node{game: g}
	return g
}

// Root returns the root node.
func (g *Game) Root() *Node { return g.root }

// Players returns the players in numbering order.
func (g *Game) Players() []*Player { return append([]*Player(nil), g.players...) }

// Outcomes returns the outcomes in numbering order.
func (g *Game) Outcomes() []*Outcome { return append([]*Outcome(nil), g.outcomes...) }

// AddPlayer appends a player; players are numbered from 1.
func (g *Game) AddPlayer(label string) *Player {
	p := &Player{game: g, number: len(g.players) + 1, Label: label}
	g.players = append(g.players, p)
	return p
}

// AddOutcome appends an outcome with all payoffs zero; outcomes are
// numbered from 1.
func (g *Game) AddOutcome(label string) *Outcome {
	o := &Outcome{game: g, number: len(g.outcomes) + 1, Label: label, payoffs: make(map[*Player]float64)}
	g.outcomes = append(g.outcomes, o)
	return o
}

// Terminals returns the terminal nodes in depth-first order.
func (g *Game) Terminals() []*Node {
	var out []*Node
	g.walk(g.root, func(n *Node) {
		if n.IsTerminal() {
			out = append(out, n)
		}
	})
	return out
}

func (g *Game) walk(n *Node, fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		g.walk(c, fn)
	}
}

// Player is a decision maker in the game.
type Player struct {
	Label string

	game     *Game
	number   int
	infosets []*Infoset
}

// Number is the 1-based player number.
func (p *Player) Number() int { return p.number }

// Infosets returns the player's information sets in numbering order.
func (p *Player) Infosets() []*Infoset { return append([]*Infoset(nil), p.infosets...) }

func (p *Player) removeInfoset(s *Infoset) {
	for i, x := range p.infosets {
		if x == s {
			p.infosets = append(p.infosets[:i], p.infosets[i+1:]...)
			return
		}
	}
}

// Infoset is a set of decision nodes of one player sharing the same actions.
type Infoset struct {
	Label string

	player  *Player
	actions []*Action
	members []*Node
}

// Player returns the owner of the information set.
func (s *Infoset) Player() *Player { return s.player }

// Actions returns the actions available at every member node.
func (s *Infoset) Actions() []*Action { return s.actions }

// Members returns the nodes in this information set.
func (s *Infoset) Members() []*Node { return append([]*Node(nil), s.members...) }

// Number is the 1-based position of the set among its player's sets.
func (s *Infoset) Number() int {
	for i, x := range s.player.infosets {
		if x == s {
			return i + 1
		}
	}
	return 0
}

func (s *Infoset) removeMember(n *Node) {
	for i, x := range s.members {
		if x == n {
			s.members = append(s.members[:i], s.members[i+1:]...)
			return
		}
	}
}

// Action is one choice at an information set.
type Action struct {
	Label string
	index int
}

// Index is the 0-based position of the action (and of the child it leads to).
func (a *Action) Index() int { return a.index }

// Outcome is a labelled payoff vector attached to terminal nodes.
type Outcome struct {
	Label string

	game    *Game
	number  int
	payoffs map[*Player]float64
}

// Number is the 1-based outcome number.
func (o *Outcome) Number() int { return o.number }

// SetPayoff sets player p's payoff.
func (o *Outcome) SetPayoff(p *Player, v float64) { o.payoffs[p] = v }

// Payoff returns player p's payoff (zero when unset).
func (o *Outcome) Payoff(p *Player) float64 { return o.payoffs[p] }

// Node is a point of the tree: a decision node when it has an information
// set, a terminal otherwise.
type Node struct {
	Label string

	game     *Game
	parent   *Node
	infoset  *Infoset
	children []*Node
	outcome  *Outcome
}

// Parent returns nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the successors, one per action.
func (n *Node) Children() []*Node { return n.children }

// Infoset returns nil for terminal nodes.
func (n *Node) Infoset() *Infoset { return n.infoset }

// IsTerminal reports whether the node has no move.
func (n *Node) IsTerminal() bool { return len(n.children) == 0 }

// Outcome returns the attached outcome, or nil.
func (n *Node) Outcome() *Outcome { return n.outcome }

// SetOutcome attaches o to the node.
func (n *Node) SetOutcome(o *Outcome) error {
	if o != nil && o.game != n.game {
		return fmt.Errorf("%w: outcome %q belongs to another game", ErrStructure, o.Label)
	}
	n.outcome = o
	return nil
}

// Depth is the number of moves between the root and n.
func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// PriorAction returns the action at the parent that leads to n, or nil at
// the root.
func (n *Node) PriorAction() *Action {
	if n.parent == nil {
		return nil
	}
	for i, c := range n.parent.children {
		if c == n {
			return n.parent.infoset.actions[i]
		}
	}
	return nil
}

// AppendMove turns a terminal node into a decision node of player p with
// numActions successors, in a new information set of its own.
func (n *Node) AppendMove(p *Player, numActions int) (*Infoset, error) {
	if !n.IsTerminal() {
		return nil, fmt.Errorf("%w: node already has a move", ErrStructure)
	}
	if p == nil || p.game != n.game {
		return nil, fmt.Errorf("%w: player does not belong to this game", ErrStructure)
	}
	if numActions < 1 {
		return nil, fmt.Errorf("%w: move needs at least one action, got %d", ErrStructure, numActions)
	}
	s := &Infoset{player: p, members: []*Node{n}}
	for i := 0; i < numActions; i++ {
		s.actions = append(s.actions, &Action{Label: strconv.Itoa(i + 1), index: i})
		n.children = append(n.children, &Node{game: n.game, parent: n})
	}
	p.infosets = append(p.infosets, s)
	n.infoset = s
	return s, nil
}

// SetInfoset moves decision node n into information set s. Both must belong
// to the same player and offer the same number of actions. An information
// set left without members is dropped, which renumbers the player's sets.
func (n *Node) SetInfoset(s *Infoset) error {
	if s == nil {
		return fmt.Errorf("%w: nil information set", ErrStructure)
	}
	old := n.infoset
	if old == nil {
		return fmt.Errorf("%w: terminal node has no information set", ErrStructure)
	}
	if old == s {
		return nil
	}
	if s.player != old.player {
		return fmt.Errorf("%w: information set belongs to %s, node to %s", ErrStructure, s.player.Label, old.player.Label)
	}
	if len(s.actions) != len(n.children) {
		return fmt.Errorf("%w: information set has %d actions, node has %d children", ErrStructure, len(s.actions), len(n.children))
	}
	old.removeMember(n)
	if len(old.members) == 0 {
		old.player.removeInfoset(old)
	}
	s.members = append(s.members, n)
	n.infoset = s
	return nil
}
