package search

import (
	"container/heap"
	"time"

	"github.com/matzehuels/pathgrid/pkg/grid"
)

// unitCost is the weight of every grid edge.
const unitCost = 1

// Dijkstra is a uniform-cost search with a lazy-deletion binary heap.
// With unit edges it finalizes nodes in breadth-first distance order, but the
// relaxation is written for general non-negative costs.
type Dijkstra struct{}

// Name returns "dijkstra".
func (Dijkstra) Name() string { return "dijkstra" }

// Run searches from start and stops as soon as end is finalized.
//
// Complexity: O((V+E) log V).
func (Dijkstra) Run(g *grid.Grid, start, end int) Record {
	began := time.Now()
	g.Reset()

	var (
		rec Record
		pq  frontier
	)

	g.Node(start).Dist = 0
	heap.Push(&pq, entry{node: start, dist: 0})
	rec.Stats.Pushed++

	for pq.Len() > 0 {
		e := heap.Pop(&pq).(entry)
		rec.Stats.Popped++
		u := g.Node(e.node)

		// Superseded entries stay in the heap until popped.
		if u.Visited || e.dist > u.Dist {
			rec.Stats.Stale++
			continue
		}

		u.Visited = true
		rec.Order = append(rec.Order, e.node)

		if e.node == end {
			rec.Reached = true
			break
		}

		for _, v := range u.Neighbors {
			nb := g.Node(v)
			if nb.Obstacle {
				continue
			}
			if cand := e.dist + unitCost; cand < nb.Dist {
				nb.Dist = cand
				nb.Parent = e.node
				heap.Push(&pq, entry{node: v, dist: cand})
				rec.Stats.Pushed++
			}
		}
	}

	rec.Stats.Elapsed = time.Since(began)
	return rec
}

// entry is a frontier item keyed by the distance it was pushed with.
type entry struct {
	node int
	dist int
}

// frontier is a min-heap of entries ordered by dist.
type frontier []entry

func (pq frontier) Len() int           { return len(pq) }
func (pq frontier) Less(i, j int) bool { return pq[i].dist < pq[j].dist }
func (pq frontier) Swap(i, j int)      { pq[i], pq[j] = pq[j], pq[i] }

func (pq *frontier) Push(x any) { *pq = append(*pq, x.(entry)) }

func (pq *frontier) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
