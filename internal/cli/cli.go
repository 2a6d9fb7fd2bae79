// Package cli implements the pathgrid command-line interface.
//
// # Commands
//
//   - play: interactive terminal board (mouse and keyboard editing)
//   - solve: headless search with text, JSON, DOT, SVG, PDF or PNG output
//   - serve: HTTP host for remote replay sessions
//   - config: print the effective configuration
//   - completion: shell completion scripts
//
// # Configuration
//
// Every command reads the TOML file named by --config, or
// ~/.config/pathgrid/config.toml when present. Command flags override file
// values.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// attached to the command context and retrieved with loggerFromContext.
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pathgrid/pkg/buildinfo"
	"github.com/matzehuels/pathgrid/pkg/config"
	"github.com/matzehuels/pathgrid/pkg/errors"
	"github.com/matzehuels/pathgrid/pkg/grid"
	"github.com/matzehuels/pathgrid/pkg/observability"
)

const appName = "pathgrid"

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Stats  *Stats

	configPath string
	verbose    bool
}

// New creates a CLI whose logger writes to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Stats:  &Stats{},
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "pathgrid animates shortest-path search on a grid",
		Long:         `pathgrid paints obstacles on a 2D grid, runs Dijkstra from the start marker and replays the order in which nodes were finalized before drawing the shortest path to the end marker.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.Logger.SetLevel(log.DebugLevel)
			}
			observability.SetSearchHooks(c.Stats)
			observability.SetHTTPHooks(c.Stats)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/pathgrid/config.toml)")

	root.AddCommand(c.playCommand())
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig resolves the configuration for a command.
func (c *CLI) loadConfig(ctx context.Context) (config.Config, error) {
	cfg, used, err := config.Resolve(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	logger := loggerFromContext(ctx)
	if used == "" {
		logger.Debug("using built-in config")
	} else {
		logger.Debug("loaded config", "path", used)
	}
	return cfg, nil
}

// =============================================================================
// Grid Flags
// =============================================================================

// gridFlags are the per-command overrides of the [grid] config section.
type gridFlags struct {
	width    int
	height   int
	diagonal bool
	start    string
	end      string
}

func (f *gridFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.width, "width", 0, "grid width (default from config)")
	cmd.Flags().IntVar(&f.height, "height", 0, "grid height (default from config)")
	cmd.Flags().BoolVar(&f.diagonal, "diagonal", false, "connect diagonal neighbors")
	cmd.Flags().StringVar(&f.start, "start", "", "start cell as x,y")
	cmd.Flags().StringVar(&f.end, "end", "", "end cell as x,y")
}

// apply overlays the flags that were set onto cfg and validates the result.
func (f *gridFlags) apply(cfg *config.Config) error {
	if f.width != 0 {
		cfg.Grid.Width = f.width
	}
	if f.height != 0 {
		cfg.Grid.Height = f.height
	}
	if f.diagonal {
		cfg.Grid.Connectivity = grid.Conn8.String()
	}
	for _, m := range []struct {
		flag string
		dst  *[]int
	}{{f.start, &cfg.Grid.Start}, {f.end, &cfg.Grid.End}} {
		if m.flag == "" {
			continue
		}
		p, err := parsePoint(m.flag)
		if err != nil {
			return err
		}
		*m.dst = []int{p.X, p.Y}
	}
	return cfg.Validate()
}

// parsePoint parses "x,y".
func parsePoint(s string) (grid.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return grid.Point{}, errors.New(errors.ErrCodeInvalidPosition, "cell %q must be x,y", s)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(xs))
	y, errY := strconv.Atoi(strings.TrimSpace(ys))
	if errX != nil || errY != nil {
		return grid.Point{}, errors.New(errors.ErrCodeInvalidPosition, "cell %q must be two integers", s)
	}
	return grid.Point{X: x, Y: y}, nil
}

// describe renders a one-line summary of the grid shape for logs.
func describe(g *grid.Grid) string {
	return fmt.Sprintf("%dx%d %s-way", g.Width(), g.Height(), g.Connectivity())
}
