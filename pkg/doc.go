// Package pkg provides the core libraries for pathgrid, a shortest-path
// visualizer for 2D grids.
//
// # Overview
//
// Obstacles are painted onto a grid, the start and end markers are moved,
// and every accepted edit triggers a full search. The replay controller then
// reveals the nodes in the order the search finalized them before drawing the
// shortest route. The packages are layered bottom-up:
//
//  1. [grid] - node arena, adjacency and markers
//  2. [search] - Dijkstra and path reconstruction
//  3. [replay] - edit handling, replay state machine and frames
//  4. [render/dot] - Graphviz export of frames
//
// Supporting packages:
//
//   - [config] - TOML configuration
//   - [errors] - coded errors and input validation
//   - [observability] - search and HTTP hooks
//   - [buildinfo] - version information injected at build time
//
// # Data Flow
//
//	Edit (click or request)
//	         ↓
//	replay.Controller.Apply ── grid.Grid mutation
//	         ↓
//	search.Strategy.Run ── visitation order, distances, parents
//	         ↓
//	replay.Controller.Tick ── one Frame per host tick
//	         ↓
//	Renderer (terminal board, HTTP JSON, DOT/SVG)
//
// # Quick Start
//
//	g, _ := grid.New(8, 8)
//	_ = g.ToggleObstacle(3, 3)
//
//	c := replay.New(g, search.Dijkstra{})
//	f := c.Tick()
//	for !f.Phase.Done() {
//	    f = c.Tick()
//	}
//	fmt.Println(f.Phase, len(f.Path)-1) // path 14
//
// # Concurrency
//
// Grids and controllers are single-threaded. Hosts that serve several
// goroutines guard each controller with a mutex and hand out [replay.Frame]
// values, which share no memory with the grid.
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/pathgrid/pkg/grid
// [search]: https://pkg.go.dev/github.com/matzehuels/pathgrid/pkg/search
// [replay]: https://pkg.go.dev/github.com/matzehuels/pathgrid/pkg/replay
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/pathgrid/pkg/render/dot
// [config]: https://pkg.go.dev/github.com/matzehuels/pathgrid/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/pathgrid/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/pathgrid/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/pathgrid/pkg/buildinfo
package pkg
