package cli

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/matzehuels/pathgrid/pkg/observability"
)

// Stats counts search and HTTP events for the end-of-run summary.
// It is registered as both hook sets and is safe for concurrent use.
type Stats struct {
	searches   atomic.Int64
	searchTime atomic.Int64 // nanoseconds
	applied    atomic.Int64
	ignored    atomic.Int64
	paths      atomic.Int64
	noPaths    atomic.Int64
	requests   atomic.Int64
	failures   atomic.Int64
}

var (
	_ observability.SearchHooks = (*Stats)(nil)
	_ observability.HTTPHooks   = (*Stats)(nil)
)

func (s *Stats) OnSearchComplete(_ string, _ int, _ bool, d time.Duration) {
	s.searches.Add(1)
	s.searchTime.Add(int64(d))
}

func (s *Stats) OnEdit(_ string, applied bool) {
	if applied {
		s.applied.Add(1)
	} else {
		s.ignored.Add(1)
	}
}

func (s *Stats) OnReplayDone(reached bool, _ int) {
	if reached {
		s.paths.Add(1)
	} else {
		s.noPaths.Add(1)
	}
}

func (s *Stats) OnRequest(context.Context, string, string) {}

func (s *Stats) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	s.requests.Add(1)
	if status >= 400 {
		s.failures.Add(1)
	}
}

// Searches returns the number of engine runs.
func (s *Stats) Searches() int64 { return s.searches.Load() }

// Edits returns the applied and ignored edit counts.
func (s *Stats) Edits() (applied, ignored int64) { return s.applied.Load(), s.ignored.Load() }

// summary is the one-line digest printed when a command finishes.
func (s *Stats) summary() string {
	line := fmt.Sprintf("%d searches (%s)", s.searches.Load(), time.Duration(s.searchTime.Load()).Round(time.Microsecond))
	if a, i := s.Edits(); a+i > 0 {
		line += fmt.Sprintf(" · %d edits, %d ignored", a, i)
	}
	if p, n := s.paths.Load(), s.noPaths.Load(); p+n > 0 {
		line += fmt.Sprintf(" · %d paths, %d unreachable", p, n)
	}
	if r := s.requests.Load(); r > 0 {
		line += fmt.Sprintf(" · %d requests, %d failed", r, s.failures.Load())
	}
	return line
}
