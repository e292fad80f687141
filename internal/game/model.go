// Package game builds the three-party mediated bargaining game: one decision
// layer per party, layers merged into shared information sets so the moves
// are simultaneous, and every terminal labelled with the outcome of the
// coalition its action profile resolves to.
package game

import (
	"fmt"
	"io"
	"path/filepath"

	"mediator/internal/bargain"
	"mediator/internal/efg"
	"mediator/internal/logging"
)

// Model is a fully built game. It is immutable once New returns.
type Model struct {
	params   bargain.Params
	outcomes *bargain.Table

	game        *efg.Game
	efgOutcomes map[*bargain.Outcome]*efg.Outcome
	leaves      []Leaf
}

// Title is the game title; the saved file is named after it.
func Title() string {
	return fmt.Sprintf("Mediator_bargaining_n=%d", bargain.NumParties)
}

// New computes the outcome table, builds the tree, merges the information
// sets and binds every terminal, in that order.
func New(p bargain.Params) (*Model, error) {
	logger := logging.New("game")

	table, err := bargain.ComputeOutcomes(p)
	if err != nil {
		return nil, fmt.Errorf("compute outcomes: %w", err)
	}
	m := &Model{
		params:      p.Clone(),
		outcomes:    table,
		game:        efg.NewTree(Title()),
		efgOutcomes: make(map[*bargain.Outcome]*efg.Outcome),
	}

	players := make([]*efg.Player, bargain.NumParties)
	for _, party := range bargain.Parties() {
		players[party] = m.game.AddPlayer(party.Label())
	}
	for _, o := range table.Outcomes() {
		eo := m.game.AddOutcome(o.Label)
		for _, party := range bargain.Parties() {
			eo.SetPayoff(players[party], o.Payoff(party))
		}
		m.efgOutcomes[o] = eo
	}
	logger.Debug("outcomes computed", "count", len(table.Outcomes()))

	if err := buildTree(m.game, players); err != nil {
		return nil, fmt.Errorf("build tree: %w", err)
	}
	if err := setupInfosets(m.game); err != nil {
		return nil, fmt.Errorf("setup infosets: %w", err)
	}
	if err := m.bindPayoffs(); err != nil {
		return nil, fmt.Errorf("bind payoffs: %w", err)
	}
	logger.Debug("game built", "title", m.game.Title, "leaves", len(m.leaves))
	return m, nil
}

// Title returns the title of the built game.
func (m *Model) Title() string { return m.game.Title }

// Params returns a copy of the model inputs.
func (m *Model) Params() bargain.Params { return m.params.Clone() }

// Outcomes returns the outcome table.
func (m *Model) Outcomes() *bargain.Table { return m.outcomes }

// Leaves returns the terminals in tree order (P0's action varies slowest).
func (m *Model) Leaves() []Leaf { return append([]Leaf(nil), m.leaves...) }

// Game exposes the underlying tree.
func (m *Model) Game() *efg.Game { return m.game }

// WriteEFG writes the game in .efg format.
func (m *Model) WriteEFG(w io.Writer) error { return m.game.Write(w) }

// Save writes <dir>/<title>.efg and returns the path written.
func (m *Model) Save(dir string) (string, error) {
	path := filepath.Join(dir, m.game.Title+efg.Extension)
	if err := m.game.Save(path); err != nil {
		return "", err
	}
	logging.New("game").Info("game saved", "path", path)
	return path, nil
}
