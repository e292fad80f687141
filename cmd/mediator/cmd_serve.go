package main

import (
	"context"

	"github.com/spf13/cobra"

	"mediator/internal/logging"
	mcpserver "mediator/internal/mcp"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		Long: `Starts an MCP server over stdin/stdout exposing the build_game and
export_efg tools. build_game with save=true writes under config output.dir.

The server watches its parent process and exits when the parent goes away.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mcpserver.Version = version
			srv := mcpserver.NewServer(a.cfg.Output.Dir)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			mcpserver.WatchParent(ctx, cancel)

			logging.New("mcp").Info("starting MCP server over stdio", "out_dir", a.cfg.Output.Dir)
			return srv.Run(ctx)
		},
	}
}
