package grid

import (
	"fmt"
	"math"
)

const (
	// NoParent marks a node without a predecessor.
	NoParent = -1

	// Unreached is the distance of a node the search has not reached.
	Unreached = math.MaxInt
)

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: up, down, left, right.
	Conn4 Connectivity = iota
	// Conn8 adds the four diagonals after the orthogonal neighbors.
	Conn8
)

// String returns "4" or "8".
func (c Connectivity) String() string {
	if c == Conn8 {
		return "8"
	}
	return "4"
}

// ParseConnectivity converts "4"/"8" (or "4-way"/"8-way") into a Connectivity.
func ParseConnectivity(s string) (Connectivity, error) {
	switch s {
	case "", "4", "4-way":
		return Conn4, nil
	case "8", "8-way":
		return Conn8, nil
	}
	return Conn4, fmt.Errorf("grid: unknown connectivity %q", s)
}

// Point is a cell coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String formats the point as "(x,y)".
func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Node is one grid cell.
//
// Neighbors is fixed at construction. Visited, Dist and Parent belong to the
// most recent search run.
type Node struct {
	X, Y      int
	Obstacle  bool
	Visited   bool
	Dist      int
	Parent    int
	Neighbors []int
}

// Point returns the node's coordinate.
func (n *Node) Point() Point { return Point{X: n.X, Y: n.Y} }

// HasParent reports whether the node carries a predecessor link.
func (n *Node) HasParent() bool { return n.Parent != NoParent }

// Edge is an undirected adjacency between two node indices, A < B.
type Edge struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Option configures a Grid at construction.
type Option func(*Grid)

// WithConnectivity selects 4- or 8-way adjacency.
func WithConnectivity(c Connectivity) Option {
	return func(g *Grid) { g.conn = c }
}
