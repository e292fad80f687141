package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestDefault_Valid(t *testing.T) {
	if errs := Default().Validate(); len(errs) != 0 {
		t.Errorf("default config invalid: %v", errs)
	}
}

func TestLoad_Defaults(t *testing.T) {
	resetViper(t)
	SetDefaults()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}

func TestInit_ConfigFile(t *testing.T) {
	resetViper(t)
	path := filepath.Join(t.TempDir(), "mediator.yaml")
	content := "logging:\n  level: debug\n  format: json\noutput:\n  dir: games\nsweep:\n  parallel: 2\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Init(path); err != nil {
		t.Fatalf("Init: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.Output.Dir != "games" || cfg.Sweep.Parallel != 2 {
		t.Errorf("output/sweep = %+v / %+v", cfg.Output, cfg.Sweep)
	}
	if cfg.Store.Path != Default().Store.Path {
		t.Errorf("store.path = %q, want default", cfg.Store.Path)
	}
}

func TestInit_EnvOverride(t *testing.T) {
	resetViper(t)
	t.Setenv("MEDIATOR_SWEEP_PARALLEL", "8")
	t.Setenv("MEDIATOR_OUTPUT_DIR", "env-out")
	if err := Init(""); err != nil {
		t.Fatalf("Init: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sweep.Parallel != 8 || cfg.Output.Dir != "env-out" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestInit_MissingExplicitFile(t *testing.T) {
	resetViper(t)
	if err := Init(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	resetViper(t)
	SetDefaults()
	viper.Set("logging.level", "loud")
	viper.Set("sweep.parallel", 0)

	_, err := Load()
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("want ValidationErrors, got %v", err)
	}
	var fields []string
	for _, e := range verrs {
		fields = append(fields, e.Field)
	}
	if diff := cmp.Diff([]string{"logging.level", "sweep.parallel"}, fields); diff != "" {
		t.Errorf("invalid fields (-want +got):\n%s", diff)
	}
}
