// Package bargain computes the payoffs of the three-party mediated bargaining
// model: general war, the three dyadic wars, and peace.
//
// The package is pure. It knows nothing about game trees or files; the
// outcome table it produces is handed to the tree builder in package game.
package bargain

import (
	"errors"
	"fmt"
	"math"
)

// NumParties is the number of parties in the model.
const NumParties = 3

var (
	// ErrInvalidParameter is returned when the model parameters cannot
	// produce a well-defined outcome table.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrMalformedCoalition marks a coalition that cannot arise from legal
	// actions (size 1, or an index outside the party range).
	ErrMalformedCoalition = errors.New("malformed coalition")
)

// Params holds the fixed inputs of one model.
type Params struct {
	M        []float64 `json:"m" yaml:"m"`               // capacities, all > 0
	C        []float64 `json:"c" yaml:"c"`               // conflict costs
	X        []float64 `json:"x" yaml:"x"`               // preferred positions
	Mediator float64   `json:"mediator" yaml:"mediator"` // x3, the mediator's proposal
}

// Validate checks vector lengths, positivity of capacities and finiteness
// of every value. Errors wrap ErrInvalidParameter.
func (p Params) Validate() error {
	vectors := []struct {
		name string
		v    []float64
	}{
		{"m", p.M},
		{"c", p.C},
		{"x", p.X},
	}
	for _, vec := range vectors {
		if len(vec.v) != NumParties {
			return fmt.Errorf("%w: %s has length %d, want %d", ErrInvalidParameter, vec.name, len(vec.v), NumParties)
		}
		for i, f := range vec.v {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return fmt.Errorf("%w: %s[%d] is not finite", ErrInvalidParameter, vec.name, i)
			}
		}
	}
	for i, m := range p.M {
		if m <= 0 {
			return fmt.Errorf("%w: capacity m[%d] = %g must be > 0", ErrInvalidParameter, i, m)
		}
	}
	if math.IsNaN(p.Mediator) || math.IsInf(p.Mediator, 0) {
		return fmt.Errorf("%w: mediator proposal is not finite", ErrInvalidParameter)
	}
	return nil
}

// Clone returns a deep copy so callers cannot mutate a model's inputs.
func (p Params) Clone() Params {
	return Params{
		M:        append([]float64(nil), p.M...),
		C:        append([]float64(nil), p.C...),
		X:        append([]float64(nil), p.X...),
		Mediator: p.Mediator,
	}
}

// WinProbabilities returns each capacity divided by the sum of capacities.
// It is the proportional-power rule used by every war outcome.
func WinProbabilities(capacities ...float64) ([]float64, error) {
	var sum float64
	for _, m := range capacities {
		sum += m
	}
	if !(sum > 0) {
		return nil, fmt.Errorf("%w: capacities %v sum to %g", ErrInvalidParameter, capacities, sum)
	}
	probs := make([]float64, len(capacities))
	for i, m := range capacities {
		probs[i] = m / sum
	}
	return probs, nil
}

// MediatedPosition is the capacity-weighted compromise between parties i
// and j when only those two are in the room.
func (p Params) MediatedPosition(i, j int) (float64, error) {
	probs, err := WinProbabilities(p.M[i], p.M[j])
	if err != nil {
		return 0, err
	}
	return dot(probs, []float64{p.X[i], p.X[j]}), nil
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// distances returns |positions[k] - from| for every k.
func distances(positions []float64, from float64) []float64 {
	d := make([]float64, len(positions))
	for k, x := range positions {
		d[k] = math.Abs(x - from)
	}
	return d
}
