package search

import (
	"time"

	"github.com/matzehuels/pathgrid/pkg/grid"
)

// Strategy is a single-source shortest-path algorithm over a grid.
//
// Run resets the search state on every node of g, writes the new distances,
// parents and visited flags, and returns the finalization order. It must not
// change obstacles or markers.
type Strategy interface {
	Name() string
	Run(g *grid.Grid, start, end int) Record
}

// Record is the output of one search run.
type Record struct {
	// Order lists node indices in the exact order they were finalized.
	// Each node appears at most once.
	Order []int

	// Reached reports whether the end node was finalized.
	Reached bool

	Stats Stats
}

// Stats counts frontier activity for a run.
type Stats struct {
	Pushed  int           // frontier insertions, including the seed
	Popped  int           // frontier removals
	Stale   int           // popped entries discarded as already finalized or superseded
	Elapsed time.Duration // wall time of the run
}

// Visited returns the number of finalized nodes.
func (r Record) Visited() int { return len(r.Order) }
