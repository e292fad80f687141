package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediator/internal/format"
	"mediator/internal/params"
	"mediator/internal/store"
	"mediator/internal/sweep"
)

func newSweepCmd(a *app) *cobra.Command {
	var opts struct {
		file     string
		outDir   string
		parallel int
		record   bool
		format   string
	}
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Build every scenario of a batch file in parallel",
		Long: `Reads a batch file (a "scenarios" list in YAML or JSON) and builds one game
per scenario, writing <out>/<scenario>/Mediator_bargaining_n=3.efg.
A failed scenario does not stop the others; the command fails at the end
if any scenario failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := format.ParseMode(opts.format)
			if err != nil {
				return err
			}
			batch, err := params.LoadBatch(opts.file)
			if err != nil {
				return err
			}
			sweepOpts := sweep.Options{Parallel: opts.parallel, OutDir: opts.outDir}
			if sweepOpts.Parallel <= 0 {
				sweepOpts.Parallel = a.cfg.Sweep.Parallel
			}
			if sweepOpts.OutDir == "" {
				sweepOpts.OutDir = a.cfg.Output.Dir
			}

			results, err := sweep.Run(cmd.Context(), batch, sweepOpts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderSweep(results, mode))

			if opts.record {
				st, err := a.openStore()
				if err != nil {
					return err
				}
				defer st.Close()
				recorded := 0
				for _, r := range results {
					if r.Err != nil {
						continue
					}
					if _, err := st.SaveRun(cmd.Context(), store.NewRun(r.Scenario.Name, r.Path, r.Model)); err != nil {
						return fmt.Errorf("record %s: %w", r.Scenario.Name, err)
					}
					recorded++
				}
				fmt.Fprintf(out, "Recorded %d run(s)\n", recorded)
			}

			if n := sweep.Failed(results); n > 0 {
				return fmt.Errorf("%d of %d scenarios failed", n, len(results))
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", "", "batch file (required)")
	f.StringVarP(&opts.outDir, "out", "o", "", "output directory (default from config output.dir)")
	f.IntVar(&opts.parallel, "parallel", 0, "concurrent builds (default from config sweep.parallel)")
	f.BoolVar(&opts.record, "record", false, "store successful runs in the history DB")
	f.StringVar(&opts.format, "format", "ascii", "table format: ascii, markdown or csv")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
