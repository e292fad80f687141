// Package store keeps a history of built games in SQLite: the inputs, the
// five outcomes and where the .efg file was written.
package store

import (
	"context"
	"errors"
	"time"

	"mediator/internal/bargain"
	"mediator/internal/game"
)

var (
	// ErrNotFound is returned when a run id is unknown.
	ErrNotFound = errors.New("run not found")
	// ErrAmbiguousID is returned when an id prefix matches several runs.
	ErrAmbiguousID = errors.New("run id prefix is ambiguous")
)

// Run is one recorded build.
type Run struct {
	ID        string
	Title     string
	Scenario  string
	Params    bargain.Params
	EFGPath   string
	CreatedAt time.Time
	Outcomes  []Outcome // loaded by GetRun only
}

// Outcome is a stored row of the outcome table.
type Outcome struct {
	Label     string
	Coalition bargain.Coalition
	Payoffs   [bargain.NumParties]float64
}

// Store is the persistence facade used by the CLI.
type Store interface {
	SaveRun(ctx context.Context, r *Run) (string, error)
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]*Run, error)
	Close() error
}

// NewRun captures a built model. ID and CreatedAt are filled by SaveRun.
func NewRun(scenario, efgPath string, m *game.Model) *Run {
	r := &Run{
		Title:    m.Title(),
		Scenario: scenario,
		Params:   m.Params(),
		EFGPath:  efgPath,
	}
	for _, o := range m.Outcomes().Outcomes() {
		r.Outcomes = append(r.Outcomes, Outcome{
			Label:     o.Label,
			Coalition: o.Coalition,
			Payoffs:   o.Payoffs,
		})
	}
	return r
}
