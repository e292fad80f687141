package params

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"mediator/internal/bargain"
)

// LoadScenario reads a scenario file (YAML or JSON). A missing name
// defaults to the file's base name. Unknown keys are rejected and the
// mediator proposal must be given explicitly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	ext := filepath.Ext(path)
	var s Scenario
	if err := decode(data, ext, &s, true); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	var set mediatorField
	if err := decode(data, ext, &set, false); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if set.Mediator == nil {
		return nil, fmt.Errorf("scenario %s: %w: mediator is required", s.Name, bargain.ErrInvalidParameter)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadBatch reads a batch file (YAML or JSON) with the same rules as
// LoadScenario for every entry.
func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}
	ext := filepath.Ext(path)
	var b Batch
	if err := decode(data, ext, &b, true); err != nil {
		return nil, fmt.Errorf("parse batch %s: %w", path, err)
	}
	var set struct {
		Scenarios []mediatorField `json:"scenarios" yaml:"scenarios"`
	}
	if err := decode(data, ext, &set, false); err != nil {
		return nil, fmt.Errorf("parse batch %s: %w", path, err)
	}
	for i, sc := range set.Scenarios {
		if sc.Mediator == nil {
			return nil, fmt.Errorf("batch %s: scenario %d (%s): %w: mediator is required",
				path, i+1, b.Scenarios[i].Name, bargain.ErrInvalidParameter)
		}
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// mediatorField tells a missing mediator key apart from an explicit 0.
type mediatorField struct {
	Mediator *float64 `json:"mediator" yaml:"mediator"`
}

// decode picks the format from the extension (".json", ".yaml", ".yml");
// without one it is detected from the first non-blank character. Strict
// decoding rejects keys that match no field.
func decode(data []byte, ext string, out any, strict bool) error {
	if isJSON(data, ext) {
		dec := json.NewDecoder(bytes.NewReader(data))
		if strict {
			dec.DisallowUnknownFields()
		}
		return dec.Decode(out)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(strict)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty document")
		}
		return err
	}
	return nil
}

func isJSON(data []byte, ext string) bool {
	switch strings.ToLower(ext) {
	case ".json":
		return true
	case ".yaml", ".yml":
		return false
	}
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte("{"))
}
