package bargain

import (
	"fmt"
	"math"
)

// PeaceLabel names the outcome reached when every party accepts.
const PeaceLabel = "peace"

// Outcome is one payoff per party for a coalition (or for peace).
// Outcomes are created once by ComputeOutcomes and shared by every leaf
// that reaches them; they must not be modified afterwards.
type Outcome struct {
	Label     string
	Coalition Coalition
	Payoffs   [NumParties]float64
}

// Payoff returns party p's payoff.
func (o *Outcome) Payoff(p Party) float64 { return o.Payoffs[p] }

// Peace reports whether this is the all-accept outcome.
func (o *Outcome) Peace() bool { return o.Coalition.Empty() }

// Table holds the five outcomes of one model, in creation order:
// general war, the three dyadic wars, peace.
type Table struct {
	outcomes []*Outcome
	war      map[Coalition]*Outcome
	peace    *Outcome
}

// Outcomes returns the outcomes in creation order.
func (t *Table) Outcomes() []*Outcome {
	return append([]*Outcome(nil), t.outcomes...)
}

// Peace returns the peace outcome.
func (t *Table) Peace() *Outcome { return t.peace }

// Lookup returns the outcome for a resolved coalition; the empty coalition
// maps to peace.
func (t *Table) Lookup(c Coalition) (*Outcome, bool) {
	if c.Empty() {
		return t.peace, true
	}
	o, ok := t.war[c]
	return o, ok
}

// WarLabel formats the outcome label for a war coalition, e.g. "war(0, 1)".
func WarLabel(c Coalition) string { return "war" + c.String() }

// ComputeOutcomes validates p and computes every outcome once.
func ComputeOutcomes(p Params) (*Table, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	t := &Table{war: make(map[Coalition]*Outcome)}

	general, err := generalWar(p)
	if err != nil {
		return nil, fmt.Errorf("general war: %w", err)
	}
	t.add(general)

	for _, c := range Coalitions()[1:] {
		o, err := dyadicWar(p, c)
		if err != nil {
			return nil, fmt.Errorf("dyadic war %s: %w", c, err)
		}
		t.add(o)
	}

	t.peace = peace(p)
	t.outcomes = append(t.outcomes, t.peace)
	return t, nil
}

func (t *Table) add(o *Outcome) {
	t.war[o.Coalition] = o
	t.outcomes = append(t.outcomes, o)
}

// generalWar: u_i = 1 - p(m)·|x - x_i| - c_i.
func generalWar(p Params) (*Outcome, error) {
	probs, err := WinProbabilities(p.M...)
	if err != nil {
		return nil, err
	}
	o := &Outcome{Label: WarLabel(GeneralWar), Coalition: GeneralWar}
	for i := range o.Payoffs {
		o.Payoffs[i] = 1 - dot(probs, distances(p.X, p.X[i])) - p.C[i]
	}
	return o, nil
}

// dyadicWar fights between the two members of c while the outside party k
// mediates: the effective positions are k's bilateral compromise with each
// fighter. k pays no cost but is measured against the same positions.
func dyadicWar(p Params, c Coalition) (*Outcome, error) {
	fighters := c.Members()
	if len(fighters) != 2 {
		return nil, fmt.Errorf("%w: dyad %s", ErrMalformedCoalition, c)
	}
	i, j := fighters[0], fighters[1]
	k := c.Outside()[0]

	pf, err := WinProbabilities(p.M[i], p.M[j])
	if err != nil {
		return nil, err
	}
	x2 := make([]float64, 2)
	for n, f := range fighters {
		if x2[n], err = p.MediatedPosition(k, f); err != nil {
			return nil, err
		}
	}

	o := &Outcome{Label: WarLabel(c), Coalition: c}
	for _, f := range fighters {
		o.Payoffs[f] = 1 - dot(pf, distances(x2, p.X[f])) - p.C[f]
	}
	o.Payoffs[k] = 1 - dot(pf, distances(x2, p.X[k]))
	return o, nil
}

// peace: u_i = 1 - |x3 - x_i|.
func peace(p Params) *Outcome {
	o := &Outcome{Label: PeaceLabel}
	for i := range o.Payoffs {
		o.Payoffs[i] = 1 - math.Abs(p.Mediator-p.X[i])
	}
	return o
}
