package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediator/internal/format"
	"mediator/internal/game"
	"mediator/internal/store"
)

func newBuildCmd(a *app) *cobra.Command {
	var opts struct {
		params paramsFlags
		outDir string
		stdout bool
		record bool
		format string
	}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the game and write <title>.efg",
		Long: `Computes the five outcomes, builds the game tree and writes it as
Mediator_bargaining_n=3.efg under the output directory (config output.dir
unless -o is given). With --stdout the .efg text is printed instead.`,
		Args: cobra.NoArgs,
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
			out := cmd.OutOrStdout()
			if opts.stdout {
				return m.WriteEFG(out)
			}

			dir := opts.outDir
			if dir == "" {
				dir = a.cfg.Output.Dir
			}
			path, err := m.Save(dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %s\n\n", path)
			fmt.Fprintln(out, renderOutcomes(m.Outcomes(), mode))

			if opts.record {
				st, err := a.openStore()
				if err != nil {
					return err
				}
				defer st.Close()
				id, err := st.SaveRun(cmd.Context(), store.NewRun(sc.Name, path, m))
				if err != nil {
					return fmt.Errorf("record run: %w", err)
				}
				fmt.Fprintf(out, "Recorded run %s\n", id)
			}
			return nil
		},
	}
	f := cmd.Flags()
	opts.params.register(f)
	f.StringVarP(&opts.outDir, "out", "o", "", "output directory (default from config output.dir)")
	f.BoolVar(&opts.stdout, "stdout", false, "print the .efg text instead of writing a file")
	f.BoolVar(&opts.record, "record", false, "store the run in the history DB")
	f.StringVar(&opts.format, "format", "ascii", "table format: ascii, markdown or csv")
	cmd.MarkFlagsMutuallyExclusive("stdout", "out")
	cmd.MarkFlagsMutuallyExclusive("stdout", "record")
	return cmd
}
