package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediator/internal/format"
	"mediator/internal/game"
)

func newLeavesCmd(_ *app) *cobra.Command {
	var opts struct {
		params paramsFlags
		format string
		words  bool
	}
	cmd := &cobra.Command{
		Use:   "leaves",
		Short: "List every action profile with the coalition and outcome it reaches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := format.ParseMode(opts.format)
			if err != nil {
				return err
			}
			sc, err := opts.params.scenario(cmd.Flags())
			if err != nil {
				return err
			}
			m, err := game.New(sc.Params)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderLeaves(m, mode, opts.words))
			return nil
		},
	}
	f := cmd.Flags()
	opts.params.register(f)
	f.StringVar(&opts.format, "format", "ascii", "table format: ascii, markdown or csv")
	f.BoolVar(&opts.words, "words", false, "describe profiles in words instead of action labels")
	return cmd
}
