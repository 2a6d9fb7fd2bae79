// Package search runs single-source shortest-path searches over a [grid.Grid]
// and reconstructs routes from the resulting predecessor tree.
//
// # Strategies
//
// A [Strategy] computes, for every node reachable from the start, its minimum
// hop count and one predecessor achieving it, and records the order in which
// nodes were finalized. [Dijkstra] is the implementation shipped with this
// package. The interface exists so callers such as the replay controller never
// depend on a concrete algorithm.
//
//	g, _ := grid.New(8, 8)
//	rec := search.Dijkstra{}.Run(g, g.Start(), g.End())
//	if rec.Reached {
//	    route := search.Reconstruct(g, g.End())
//	    fmt.Println(len(route) - 1) // 14 hops
//	}
//
// # Records
//
// A [Record] is a snapshot: its Order slice is rebuilt on every run and never
// mutated afterwards. Per-node distances and parents live on the grid nodes
// themselves and are overwritten by the next run.
//
// # Obstacles
//
// Obstacles are never relaxed into, so they are never expanded. The start node
// is always expanded at distance 0, even when it carries the obstacle flag.
package search
