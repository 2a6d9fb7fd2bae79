package cli

import (
	stderrors "errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathgrid/internal/server"
)

// serveCommand creates the HTTP host command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr string
		idle time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Host replay sessions over HTTP",
		Long: `Serve replay sessions over HTTP.

Each session owns one grid. Clients create a session, post edits and fetch
frames; every frame request advances the replay by one tick.

  POST   /sessions
  GET    /sessions/{id}
  GET    /sessions/{id}/frame[?format=dot]
  POST   /sessions/{id}/edits
  DELETE /sessions/{id}

Sessions idle for longer than --idle-timeout are dropped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig(ctx)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			logger := loggerFromContext(ctx)
			srv := server.New(cfg, server.WithLogger(logger), server.WithIdleTimeout(idle))

			printNextStep("Create a session", "curl -X POST "+baseURL(cfg.Server.Addr)+"/sessions")
			err = srv.ListenAndServe(ctx, cfg.Server.Addr)
			printInfo("%s", c.Stats.summary())
			if ctx.Err() != nil && stderrors.Is(err, ctx.Err()) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().DurationVar(&idle, "idle-timeout", server.DefaultIdleTimeout, "drop sessions idle for this long")

	return cmd
}

// baseURL turns a listen address into a URL for local clients.
func baseURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
