package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pathgrid/pkg/replay"
)

// playCommand creates the interactive board command.
func (c *CLI) playCommand() *cobra.Command {
	var (
		flags gridFlags
		delay time.Duration
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Edit a grid interactively and watch the search replay",
		Long: `Open an interactive board in the terminal.

Click a cell to toggle an obstacle, shift+click to move the start marker and
ctrl+click to move the end marker. Terminals that do not report mouse
modifiers can use the keyboard instead: arrows move the cursor, space toggles
an obstacle, s and e move the markers.

Every edit re-runs the search and restarts the replay from the first node.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig(ctx)
			if err != nil {
				return err
			}
			if err := flags.apply(&cfg); err != nil {
				return err
			}
			if delay <= 0 {
				delay = cfg.Replay.FrameDelay.Duration
			}
			g, err := cfg.NewGrid()
			if err != nil {
				return err
			}

			logger := loggerFromContext(ctx)
			logger.Debug("starting board", "grid", describe(g), "delay", delay)

			// The alternate screen owns the terminal while the board is open.
			ctrl := replay.New(g, nil, replay.WithLogger(discardLogger()))

			p := tea.NewProgram(NewBoardModel(ctrl, delay),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(ctx),
			)
			if _, err := p.Run(); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return err
			}

			printInfo("%s", c.Stats.summary())
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().DurationVar(&delay, "delay", 0, "time between frames (default from config)")

	return cmd
}
