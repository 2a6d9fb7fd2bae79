package replay

import (
	"time"

	"github.com/matzehuels/pathgrid/pkg/grid"
)

// Frame is an immutable snapshot of a session for one rendered frame.
type Frame struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Cells classifies every cell, row-major.
	Cells []CellKind `json:"cells"`

	// Edges lists the grid adjacency for background line drawing.
	Edges []Segment `json:"edges"`

	// Trail is the route from the start to the node revealed on this frame.
	Trail []grid.Point `json:"trail,omitempty"`

	// Path is the final route to the end node; set only in PhasePathDrawn.
	Path []grid.Point `json:"path,omitempty"`

	// Revealed is the node revealed on this frame, if any.
	Revealed *grid.Point `json:"revealed,omitempty"`

	Start grid.Point `json:"start"`
	End   grid.Point `json:"end"`

	Phase   Phase         `json:"phase"`
	Cursor  int           `json:"cursor"`
	Total   int           `json:"total"`
	Elapsed time.Duration `json:"elapsed"`
}

// Segment is a line between two cell centers.
type Segment struct {
	From grid.Point `json:"from"`
	To   grid.Point `json:"to"`
}

// Cell returns the classification of (x, y).
func (f *Frame) Cell(x, y int) CellKind { return f.Cells[y*f.Width+x] }

// Segments returns the consecutive pairs of the path to highlight: the final
// path when drawn, otherwise the current trail.
func (f *Frame) Segments() []Segment {
	route := f.Path
	if route == nil {
		route = f.Trail
	}
	return segments(route)
}

// NoPath reports whether the replay ended without reaching the end node.
func (f *Frame) NoPath() bool { return f.Phase == PhaseNoPath }

func segments(route []grid.Point) []Segment {
	if len(route) < 2 {
		return nil
	}
	out := make([]Segment, len(route)-1)
	for i := 1; i < len(route); i++ {
		out[i-1] = Segment{From: route[i-1], To: route[i]}
	}
	return out
}
