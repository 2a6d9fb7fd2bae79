package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pathgrid/pkg/grid"
	"github.com/matzehuels/pathgrid/pkg/replay"
)

// Options configures DOT generation.
type Options struct {
	// Labels prints "x,y" inside every cell.
	Labels bool
}

var fill = map[replay.CellKind]string{
	replay.CellUnvisited: "white",
	replay.CellVisited:   "lightblue",
	replay.CellObstacle:  "black",
	replay.CellStart:     "limegreen",
	replay.CellEnd:       "tomato",
}

// ToDOT converts a frame to Graphviz DOT source.
func ToDOT(f replay.Frame, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("  ranksep=0.25;\n")
	fmt.Fprintf(&buf, "  label=%q;\n", caption(f))
	buf.WriteString("  labelloc=b;\n")
	buf.WriteString("  node [shape=square, style=filled, fixedsize=true, width=0.5, fontsize=9, color=grey40];\n")
	buf.WriteString("  edge [color=grey80];\n")
	buf.WriteString("\n")

	for y := 0; y < f.Height; y++ {
		buf.WriteString("  { rank=same;")
		for x := 0; x < f.Width; x++ {
			fmt.Fprintf(&buf, " %s;", nodeID(grid.Point{X: x, Y: y}))
		}
		buf.WriteString(" }\n")
	}
	buf.WriteString("\n")

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			p := grid.Point{X: x, Y: y}
			fmt.Fprintf(&buf, "  %s [%s];\n", nodeID(p), strings.Join(nodeAttrs(f, p, opts), ", "))
		}
	}

	hot := make(map[replay.Segment]bool)
	for _, s := range f.Segments() {
		hot[s] = true
		hot[replay.Segment{From: s.To, To: s.From}] = true
	}
	pathColor := "orange"
	if f.Path == nil {
		pathColor = "steelblue"
	}

	buf.WriteString("\n")
	for _, e := range f.Edges {
		var attrs []string
		if e.From.X != e.To.X && e.From.Y != e.To.Y {
			attrs = append(attrs, "constraint=false")
		}
		if hot[e] {
			attrs = append(attrs, "color="+pathColor, "penwidth=3")
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %s -- %s;\n", nodeID(e.From), nodeID(e.To))
			continue
		}
		fmt.Fprintf(&buf, "  %s -- %s [%s];\n", nodeID(e.From), nodeID(e.To), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(p grid.Point) string {
	return fmt.Sprintf("c%d_%d", p.X, p.Y)
}

func nodeAttrs(f replay.Frame, p grid.Point, opts Options) []string {
	kind := f.Cell(p.X, p.Y)
	label := ""
	if opts.Labels {
		label = fmt.Sprintf("%d,%d", p.X, p.Y)
	}
	attrs := []string{fmt.Sprintf("label=%q", label), "fillcolor=" + fill[kind]}
	if kind == replay.CellObstacle {
		attrs = append(attrs, "fontcolor=white")
	}
	if f.Revealed != nil && *f.Revealed == p {
		attrs = append(attrs, "penwidth=3", "color=steelblue")
	}
	return attrs
}

func caption(f replay.Frame) string {
	switch {
	case f.Path != nil:
		return fmt.Sprintf("%s: %d hops, %d visited", f.Phase, len(f.Path)-1, f.Total)
	case f.NoPath():
		return fmt.Sprintf("%s: %d visited", f.Phase, f.Total)
	default:
		return fmt.Sprintf("%s: %d/%d", f.Phase, f.Cursor, f.Total)
	}
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, src string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one that
// scales from a zero-origin viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
