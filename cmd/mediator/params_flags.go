package main

import (
	"errors"

	"github.com/spf13/pflag"

	"mediator/internal/bargain"
	"mediator/internal/params"
)

// paramsFlags selects model inputs from a scenario file or from flags.
type paramsFlags struct {
	file     string
	m, c, x  []float64
	mediator float64
}

var inlineParamFlags = []string{"m", "c", "x", "mediator"}

func (p *paramsFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&p.file, "params", "p", "", "scenario file (YAML or JSON)")
	fs.Float64SliceVar(&p.m, "m", nil, "military capacities, e.g. 1,1,1")
	fs.Float64SliceVar(&p.c, "c", []float64{0, 0, 0}, "war costs")
	fs.Float64SliceVar(&p.x, "x", nil, "ideal points, e.g. 0,0.5,1")
	fs.Float64Var(&p.mediator, "mediator", 0.5, "mediator proposal x3")
}

// scenario resolves the flags into a validated scenario.
func (p *paramsFlags) scenario(fs *pflag.FlagSet) (*params.Scenario, error) {
	inline := false
	for _, name := range inlineParamFlags {
		if fs.Changed(name) {
			inline = true
		}
	}
	if p.file != "" {
		if inline {
			return nil, errors.New("--params cannot be combined with --m, --c, --x or --mediator")
		}
		return params.LoadScenario(p.file)
	}
	if !fs.Changed("m") || !fs.Changed("x") {
		return nil, errors.New("either --params or both --m and --x are required")
	}
	s := &params.Scenario{
		Name: "flags",
		Params: bargain.Params{
			M:        p.m,
			C:        p.c,
			X:        p.x,
			Mediator: p.mediator,
		},
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
