package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"mediator/internal/format"
)

func newHistoryCmd(a *app) *cobra.Command {
	var opts struct {
		limit  int
		format string
	}
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recorded runs, or show the outcomes of one run",
		Long: `Without arguments, lists recorded runs newest first. With a run id,
shows that run's parameters and outcomes. The id may be shortened to any
unique prefix, such as the short form printed in the listing.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := format.ParseMode(opts.format)
			if err != nil {
				return err
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				r, err := st.GetRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Run:      %s\n", r.ID)
				fmt.Fprintf(out, "Scenario: %s\n", r.Scenario)
				fmt.Fprintf(out, "Recorded: %s (%s)\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"), humanize.Time(r.CreatedAt))
				fmt.Fprintf(out, "Params:   m=%s c=%s x=%s mediator=%g\n",
					format.FmtVector(r.Params.M), format.FmtVector(r.Params.C), format.FmtVector(r.Params.X), r.Params.Mediator)
				fmt.Fprintf(out, "File:     %s\n\n", r.EFGPath)
				fmt.Fprintln(out, renderStoredOutcomes(r.Outcomes, mode))
				return nil
			}

			runs, err := st.ListRuns(cmd.Context(), opts.limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No recorded runs. Use --record with build or sweep.")
				return nil
			}
			fmt.Fprintln(out, renderRuns(runs, mode))
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVarP(&opts.limit, "limit", "n", 20, "max runs to list (0 = all)")
	f.StringVar(&opts.format, "format", "ascii", "table format: ascii, markdown or csv")
	return cmd
}
