package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathgrid/pkg/errors"
	"github.com/matzehuels/pathgrid/pkg/grid"
	"github.com/matzehuels/pathgrid/pkg/render/dot"
	"github.com/matzehuels/pathgrid/pkg/replay"
	"github.com/matzehuels/pathgrid/pkg/search"
)

// Output formats for solve.
const (
	formatText = "text"
	formatJSON = "json"
	formatDOT  = "dot"
	formatSVG  = "svg"
	formatPDF  = "pdf"
	formatPNG  = "png"
)

var solveFormats = []string{formatText, formatJSON, formatDOT, formatSVG, formatPDF, formatPNG}

type solveOptions struct {
	grid      gridFlags
	obstacles []string
	format    string
	output    string
	animate   bool
	delay     time.Duration
	labels    bool
	scale     float64
}

// solveCommand creates the headless solve command.
func (c *CLI) solveCommand() *cobra.Command {
	opts := solveOptions{format: formatText, scale: 2.0}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Search a grid without the interactive board",
		Long: `Search a grid and print the result.

Obstacles are given as repeated --obstacle x,y flags. Obstacles placed on the
start or end cell are ignored.

Output formats:
  text  board and summary (default)
  json  final frame as JSON
  dot   Graphviz source of the final frame
  svg   rendered in-process with Graphviz
  pdf   svg converted with rsvg-convert
  png   svg converted with rsvg-convert

With --animate every frame of the replay is printed at the configured delay
before the final result.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(solveFormats, opts.format) {
				return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want one of %v)", opts.format, solveFormats)
			}
			return c.runSolve(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	opts.grid.register(cmd)
	cmd.Flags().StringArrayVar(&opts.obstacles, "obstacle", nil, "obstacle cell as x,y (repeatable)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text, json, dot, svg, pdf, png")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.animate, "animate", false, "print every replay frame")
	cmd.Flags().DurationVar(&opts.delay, "delay", 0, "time between animated frames (default from config)")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "label cells with coordinates (dot, svg, pdf, png)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "png scale factor")

	return cmd
}

func (c *CLI) runSolve(ctx context.Context, out io.Writer, opts solveOptions) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return err
	}
	if err := opts.grid.apply(&cfg); err != nil {
		return err
	}
	g, err := cfg.NewGrid()
	if err != nil {
		return err
	}
	if err := placeObstacles(g, opts.obstacles); err != nil {
		return err
	}
	logger.Debug("solving", "grid", describe(g), "obstacles", len(g.Obstacles()))

	prog := newProgress(logger)
	ctrl := replay.New(g, search.Dijkstra{}, replay.WithLogger(logger))

	var final replay.Frame
	if opts.animate {
		delay := opts.delay
		if delay <= 0 {
			delay = cfg.Replay.FrameDelay.Duration
		}
		var last replay.Frame
		draw := &boardWriter{w: out}
		r := replay.RendererFunc(func(f replay.Frame) error {
			last = f
			return draw.Draw(f)
		})
		if err := replay.Run(ctx, ctrl, nil, r, delay, true); err != nil {
			return err
		}
		final = last
	} else {
		final = ctrl.Tick()
		for !final.Phase.Done() {
			final = ctrl.Tick()
		}
	}

	rec := ctrl.Record()
	if opts.format == formatText && opts.output == "" {
		if !opts.animate {
			fmt.Fprintln(out, renderBoard(final, nil))
		}
		if final.Path != nil {
			printSuccess("Path found: %d hops", len(final.Path)-1)
			printDetail("%v", final.Path)
		} else {
			printWarning("No path from %s to %s", final.Start, final.End)
		}
		printKeyValue("Visited", fmt.Sprintf("%d of %d cells", rec.Visited(), g.Len()))
		printKeyValue("Frontier", fmt.Sprintf("%d pushed, %d stale", rec.Stats.Pushed, rec.Stats.Stale))
		printKeyValue("Search", rec.Stats.Elapsed.Round(time.Microsecond).String())
		return nil
	}

	data, err := encodeFrame(ctx, final, opts)
	if err != nil {
		return err
	}
	if opts.output == "" {
		_, err := out.Write(data)
		return err
	}
	if err := errors.ValidatePath(opts.output); err != nil {
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", opts.output)
	}
	prog.done(fmt.Sprintf("Wrote %s", opts.format))
	printFile(opts.output)
	return nil
}

// placeObstacles marks each "x,y" cell as an obstacle. Marker cells and
// repeats are skipped.
func placeObstacles(g *grid.Grid, cells []string) error {
	for _, s := range cells {
		p, err := parsePoint(s)
		if err != nil {
			return err
		}
		if err := errors.ValidatePosition("obstacle", p.X, p.Y, g.Width(), g.Height()); err != nil {
			return err
		}
		i := g.Index(p.X, p.Y)
		if i == g.Start() || i == g.End() || g.Node(i).Obstacle {
			continue
		}
		if err := g.ToggleObstacle(p.X, p.Y); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPosition, err, "obstacle %s", p)
		}
	}
	return nil
}

// encodeFrame produces the non-text output formats.
func encodeFrame(ctx context.Context, f replay.Frame, opts solveOptions) ([]byte, error) {
	switch opts.format {
	case formatText:
		return []byte(renderBoard(f, nil) + "\n" + renderStatus(f) + "\n"), nil
	case formatJSON:
		data, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode frame")
		}
		return append(data, '\n'), nil
	case formatDOT:
		return []byte(dot.ToDOT(f, dot.Options{Labels: opts.labels})), nil
	}

	src := dot.ToDOT(f, dot.Options{Labels: opts.labels})
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.format))
	spinner.Start()

	var (
		data []byte
		err  error
	)
	switch opts.format {
	case formatSVG:
		data, err = dot.RenderSVG(ctx, src)
	case formatPDF:
		data, err = dot.RenderPDF(ctx, src)
	case formatPNG:
		data, err = dot.RenderPNG(ctx, src, opts.scale)
	default:
		err = errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", opts.format)
	}
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Rendering %s failed", opts.format))
		return nil, err
	}
	spinner.Stop()
	return data, nil
}
