// Package dot exports replay frames as Graphviz diagrams.
//
// # Overview
//
// Each cell becomes a filled square node and each grid adjacency an
// undirected edge. Cells are colored by their [replay.CellKind]; the edges of
// the highlighted route (the final path once drawn, otherwise the trail of
// the node revealed on that frame) are drawn thick.
//
// # Usage
//
//	src := dot.ToDOT(frame, dot.Options{Labels: true})
//	svg, err := dot.RenderSVG(ctx, src)
//
// PDF and PNG output go through SVG:
//
//	pdf, err := dot.RenderPDF(ctx, src)
//	png, err := dot.RenderPNG(ctx, src, 2.0) // 2x scale
//
// # Layout
//
// Rows are emitted as rank=same subgraphs so the default dot engine lays the
// cells out as a grid. Diagonal edges carry constraint=false and do not
// disturb the ranking.
//
// # Dependencies
//
// SVG rendering runs in-process via [github.com/goccy/go-graphviz]. PDF and
// PNG conversion requires librsvg (rsvg-convert).
package dot
