// Package config holds the CLI settings: logging, output locations, the
// history store and sweep parallelism. Values come from viper, so every key
// can be set in a YAML config file or through a MEDIATOR_* environment
// variable (MEDIATOR_SWEEP_PARALLEL for sweep.parallel).
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "MEDIATOR"

// Config is the complete CLI configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
	Store   StoreConfig   `mapstructure:"store"`
	Sweep   SweepConfig   `mapstructure:"sweep"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`
	// Format is "text" or "json".
	Format string `mapstructure:"format"`
}

// OutputConfig controls where .efg files go.
type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// StoreConfig locates the SQLite run history.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// SweepConfig bounds concurrent model builds in a sweep.
type SweepConfig struct {
	Parallel int `mapstructure:"parallel"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Output:  OutputConfig{Dir: "."},
		Store:   StoreConfig{Path: ".mediator/mediator.db"},
		Sweep:   SweepConfig{Parallel: 4},
	}
}

// SetDefaults registers default values with viper.
func SetDefaults() {
	d := Default()
	viper.SetDefault("logging.level", d.Logging.Level)
	viper.SetDefault("logging.format", d.Logging.Format)
	viper.SetDefault("output.dir", d.Output.Dir)
	viper.SetDefault("store.path", d.Store.Path)
	viper.SetDefault("sweep.parallel", d.Sweep.Parallel)
}

// Init wires defaults, environment overrides and an optional config file.
// A missing default config file is not an error; an explicit one must exist.
func Init(cfgFile string) error {
	SetDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
		return nil
	}

	viper.SetConfigName("mediator")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/mediator")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// Load reads the configuration from viper and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return &cfg, nil
}
