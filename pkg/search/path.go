package search

import (
	"fmt"
	"slices"

	"github.com/matzehuels/pathgrid/pkg/grid"
)

// Reconstruct walks parent links from target back to the search root and
// returns the route root → … → target.
//
// target must have been finalized by the last run; calling Reconstruct on an
// unreached node is a programming error and panics.
func Reconstruct(g *grid.Grid, target int) []int {
	if !g.Node(target).Visited {
		x, y := g.Coordinate(target)
		panic(fmt.Sprintf("search: reconstruct on unvisited node (%d,%d)", x, y))
	}
	var route []int
	for at := target; at != grid.NoParent; at = g.Node(at).Parent {
		route = append(route, at)
	}
	slices.Reverse(route)
	return route
}

// Points converts a route of node indices into coordinates.
func Points(g *grid.Grid, route []int) []grid.Point {
	out := make([]grid.Point, len(route))
	for i, idx := range route {
		out[i] = g.Node(idx).Point()
	}
	return out
}
