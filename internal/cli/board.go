package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pathgrid/pkg/grid"
	"github.com/matzehuels/pathgrid/pkg/replay"
)

// legend is the editing hint shown under the title.
const legend = "click: obstacle, shift+click: start, ctrl+click: end"

// cellWidth is the number of terminal columns per grid cell.
const cellWidth = 2

var (
	styleBoard = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)

	cellStyles = map[replay.CellKind]lipgloss.Style{
		replay.CellUnvisited: lipgloss.NewStyle().Foreground(colorDim).Background(colorDark),
		replay.CellVisited:   lipgloss.NewStyle().Foreground(colorWhite).Background(colorBlue),
		replay.CellObstacle:  lipgloss.NewStyle().Foreground(colorWhite).Background(colorGray),
		replay.CellStart:     lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Background(colorGreen),
		replay.CellEnd:       lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Background(colorRed),
	}
	styleTrail = lipgloss.NewStyle().Foreground(colorWhite).Background(colorCyan)
	stylePath  = lipgloss.NewStyle().Bold(true).Foreground(colorDark).Background(colorYellow)

	cellGlyphs = map[replay.CellKind]string{
		replay.CellUnvisited: "·",
		replay.CellVisited:   "o",
		replay.CellObstacle:  "#",
		replay.CellStart:     "S",
		replay.CellEnd:       "E",
	}
)

// renderBoard draws the frame as a bordered block of cells. Visited cells on
// the highlighted route are drawn as "*". cursor may be nil.
func renderBoard(f replay.Frame, cursor *grid.Point) string {
	route, routeStyle := f.Path, stylePath
	if route == nil {
		route, routeStyle = f.Trail, styleTrail
	}
	onRoute := make(map[grid.Point]bool, len(route))
	for _, p := range route {
		onRoute[p] = true
	}

	var b strings.Builder
	for y := 0; y < f.Height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < f.Width; x++ {
			p := grid.Point{X: x, Y: y}
			kind := f.Cell(x, y)
			style, glyph := cellStyles[kind], cellGlyphs[kind]
			if kind == replay.CellVisited && onRoute[p] {
				style, glyph = routeStyle, "*"
			}
			if cursor != nil && *cursor == p {
				style = style.Reverse(true)
			}
			b.WriteString(style.Render(glyph + strings.Repeat(" ", cellWidth-1)))
		}
	}
	return styleBoard.Render(b.String())
}

// renderStatus summarizes the replay phase in one line.
func renderStatus(f replay.Frame) string {
	switch f.Phase {
	case replay.PhasePathDrawn:
		return StyleSuccess.Render(fmt.Sprintf("path found: %d hops", len(f.Path)-1)) +
			StyleDim.Render(fmt.Sprintf(" · %d visited", f.Total))
	case replay.PhaseNoPath:
		return StyleWarning.Render("no path") +
			StyleDim.Render(fmt.Sprintf(" · %d visited", f.Total))
	case replay.PhaseAnimating:
		return StyleNumber.Render(fmt.Sprintf("searching %d/%d", f.Cursor, f.Total))
	default:
		return StyleDim.Render("idle")
	}
}

// boardWriter is a replay.Renderer that prints every frame to w.
type boardWriter struct {
	w      io.Writer
	frames int
}

func (b *boardWriter) Draw(f replay.Frame) error {
	b.frames++
	_, err := fmt.Fprintf(b.w, "%s\n%s\n\n", renderBoard(f, nil), renderStatus(f))
	return err
}
