// Package params loads model parameters from scenario files.
// A scenario file holds one parameter set; a batch file holds several.
package params

import (
	"fmt"
	"regexp"
	"strings"

	"mediator/internal/bargain"
)

// Scenario is a named parameter set.
type Scenario struct {
	Name           string `json:"name" yaml:"name"`
	Description    string `json:"description,omitempty" yaml:"description,omitempty"`
	bargain.Params `yaml:",inline"`
}

// Batch is a list of scenarios built together by a sweep.
type Batch struct {
	Scenarios []Scenario `json:"scenarios" yaml:"scenarios"`
}

var nameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// Validate checks the name (it becomes a directory in sweeps) and the
// model parameters.
func (s Scenario) Validate() error {
	if !nameRe.MatchString(s.Name) {
		return fmt.Errorf("scenario name %q: must start with a letter or digit and contain only letters, digits, '.', '_' or '-'", s.Name)
	}
	if err := s.Params.Validate(); err != nil {
		return fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	return nil
}

// Validate checks every scenario and rejects duplicate names.
func (b Batch) Validate() error {
	if len(b.Scenarios) == 0 {
		return fmt.Errorf("batch has no scenarios")
	}
	seen := make(map[string]bool, len(b.Scenarios))
	for _, s := range b.Scenarios {
		if err := s.Validate(); err != nil {
			return err
		}
		key := strings.ToLower(s.Name)
		if seen[key] {
			return fmt.Errorf("duplicate scenario name %q", s.Name)
		}
		seen[key] = true
	}
	return nil
}
