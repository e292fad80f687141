package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediator/internal/bargain"
	"mediator/internal/format"
)

func newOutcomesCmd(_ *app) *cobra.Command {
	var opts struct {
		params paramsFlags
		format string
	}
	cmd := &cobra.Command{
		Use:   "outcomes",
		Short: "Print the payoffs of peace, the dyadic wars and general war",
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
			table, err := bargain.ComputeOutcomes(sc.Params)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderOutcomes(table, mode))
			return nil
		},
	}
	f := cmd.Flags()
	opts.params.register(f)
	f.StringVar(&opts.format, "format", "ascii", "table format: ascii, markdown or csv")
	return cmd
}
