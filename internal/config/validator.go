package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError is a single invalid setting.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects every invalid setting.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// ValidLogLevels returns the accepted logging.level values.
func ValidLogLevels() []string { return []string{"debug", "info", "warn", "error"} }

// ValidLogFormats returns the accepted logging.format values.
func ValidLogFormats() []string { return []string{"text", "json"} }

// Validate returns every invalid setting; nil means the config is usable.
func (c *Config) Validate() ValidationErrors {
	var errs ValidationErrors
	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errs = append(errs, ValidationError{"logging.level", c.Logging.Level, "must be one of " + strings.Join(ValidLogLevels(), ", ")})
	}
	if !slices.Contains(ValidLogFormats(), strings.ToLower(c.Logging.Format)) {
		errs = append(errs, ValidationError{"logging.format", c.Logging.Format, "must be one of " + strings.Join(ValidLogFormats(), ", ")})
	}
	if strings.TrimSpace(c.Output.Dir) == "" {
		errs = append(errs, ValidationError{"output.dir", c.Output.Dir, "must not be empty"})
	}
	if strings.TrimSpace(c.Store.Path) == "" {
		errs = append(errs, ValidationError{"store.path", c.Store.Path, "must not be empty"})
	}
	if c.Sweep.Parallel < 1 || c.Sweep.Parallel > 64 {
		errs = append(errs, ValidationError{"sweep.parallel", c.Sweep.Parallel, "must be between 1 and 64"})
	}
	return errs
}
