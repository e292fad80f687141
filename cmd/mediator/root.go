package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mediator/internal/config"
	"mediator/internal/logging"
	"mediator/internal/store"
)

// version is set at build time via -ldflags.
var version = "dev"

// app carries state shared by every subcommand once the root has loaded
// the configuration.
type app struct {
	cfgFile string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "mediator",
		Short: "Build the three-party mediated bargaining game as a Gambit .efg file",
		Long: `mediator computes the payoffs of peace, dyadic war and general war for three
parties and a mediator, builds the simultaneous-move game tree and writes it
in Gambit's extensive-form (.efg) format.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default ./mediator.yaml or $HOME/.config/mediator/mediator.yaml)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: text or json")
	_ = viper.BindPFlag("logging.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", pf.Lookup("log-format"))

	root.AddCommand(
		newBuildCmd(a),
		newOutcomesCmd(a),
		newLeavesCmd(a),
		newSweepCmd(a),
		newHistoryCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if err := config.Init(a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	logging.Init(level, cfg.Logging.Format, cmd.ErrOrStderr())
	a.cfg = cfg
	logging.New("cli").Debug("config loaded", "file", viper.ConfigFileUsed(), "store", cfg.Store.Path)
	return nil
}

func (a *app) openStore() (store.Store, error) {
	st, err := store.Open(a.cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
