// Package grid provides the fixed-size grid graph the path search runs on.
//
// # Overview
//
// A [Grid] owns width×height nodes in a single arena. Every node is addressed
// either by its (x, y) coordinate or by its row-major index y*width+x; all
// references between nodes (neighbor lists, parent links, the start and end
// markers) are arena indices, so the predecessor tree can never dangle.
//
// Adjacency is wired once in [New] and never changes:
//
//	g, _ := grid.New(8, 8)
//	g.ToggleObstacle(3, 4)
//	g.SetStart(1, 1)
//	g.SetEnd(6, 6)
//
// # Connectivity
//
// [Conn4] links each cell to its orthogonal neighbors in the order up, down,
// left, right. [Conn8] appends the four diagonals. Conn4 is the default.
//
// # Obstacles and markers
//
// Obstacle state never removes a node from the graph. It only disqualifies the
// node as a relaxation target for the search, which in turn keeps it from being
// expanded. A node is never simultaneously an obstacle and a start or end
// marker: moving a marker clears the obstacle flag on its new cell, and
// [Grid.ToggleObstacle] refuses to touch marker cells.
//
// # Search state
//
// [Node.Visited], [Node.Dist] and [Node.Parent] are scratch fields written by
// the search engine on every run. [Grid.Reset] clears them.
//
// # Concurrency
//
// A Grid is not safe for concurrent use. Callers serialize edits and searches.
package grid
