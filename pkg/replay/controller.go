package replay

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pathgrid/pkg/grid"
	"github.com/matzehuels/pathgrid/pkg/observability"
	"github.com/matzehuels/pathgrid/pkg/search"
)

// Controller owns the grid edits, the latest search record and the replay cursor.
type Controller struct {
	g        *grid.Grid
	strategy search.Strategy
	logger   *log.Logger

	rec      search.Record
	cursor   int
	phase    Phase
	revealed int          // node revealed on the latest frame, or grid.NoParent
	trail    []grid.Point // route to revealed
	path     []grid.Point // final route, PhasePathDrawn only
	frames   int          // frames since the last run
	elapsed  time.Duration
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for edit and search diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a controller in PhaseIdle. A nil strategy selects [search.Dijkstra].
func New(g *grid.Grid, s search.Strategy, opts ...Option) *Controller {
	if s == nil {
		s = search.Dijkstra{}
	}
	c := &Controller{
		g:        g,
		strategy: s,
		logger:   log.Default(),
		revealed: grid.NoParent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Grid returns the grid being edited. Callers must not edit it directly
// while a replay is running; use Apply.
func (c *Controller) Grid() *grid.Grid { return c.g }

// Strategy returns the search strategy.
func (c *Controller) Strategy() search.Strategy { return c.strategy }

// Phase returns the current replay phase.
func (c *Controller) Phase() Phase { return c.phase }

// Cursor returns the replay cursor into the visitation order.
func (c *Controller) Cursor() int { return c.cursor }

// Record returns the latest search record.
func (c *Controller) Record() search.Record { return c.rec }

// Setup runs the first search. Later calls do nothing.
func (c *Controller) Setup() {
	if c.phase != PhaseIdle {
		return
	}
	c.recompute()
}

// Apply performs one edit. Clicks outside the grid and clicks on the current
// start or end cell are ignored whatever their intent. An applied edit
// discards the running replay, re-runs the search and restarts the animation.
//
// Returns whether the edit was applied.
func (c *Controller) Apply(e Edit) bool {
	applied := c.apply(e)
	observability.Search().OnEdit(e.Intent.String(), applied)
	return applied
}

func (c *Controller) apply(e Edit) bool {
	if !c.g.InBounds(e.X, e.Y) {
		c.logger.Debug("ignored edit outside grid", "intent", e.Intent, "cell", e.Point())
		return false
	}
	if i := c.g.Index(e.X, e.Y); i == c.g.Start() || i == c.g.End() {
		c.logger.Debug("ignored edit on marker cell", "intent", e.Intent, "cell", e.Point())
		return false
	}

	var err error
	switch e.Intent {
	case IntentSetStart:
		err = c.g.SetStart(e.X, e.Y)
	case IntentSetEnd:
		err = c.g.SetEnd(e.X, e.Y)
	case IntentToggleObstacle:
		err = c.g.ToggleObstacle(e.X, e.Y)
	default:
		c.logger.Debug("ignored edit with unknown intent", "intent", int(e.Intent), "cell", e.Point())
		return false
	}
	if err != nil {
		c.logger.Debug("rejected edit", "intent", e.Intent, "cell", e.Point(), "err", err)
		return false
	}

	c.logger.Debug("applied edit", "intent", e.Intent, "cell", e.Point())
	c.recompute()
	return true
}

func (c *Controller) recompute() {
	c.rec = c.strategy.Run(c.g, c.g.Start(), c.g.End())
	c.cursor = 0
	c.phase = PhaseAnimating
	c.revealed = grid.NoParent
	c.trail = nil
	c.path = nil
	c.frames = 0
	c.elapsed = 0

	c.logger.Debug("search complete",
		"strategy", c.strategy.Name(),
		"visited", c.rec.Visited(),
		"reached", c.rec.Reached,
		"pushed", c.rec.Stats.Pushed,
		"stale", c.rec.Stats.Stale,
		"duration", c.rec.Stats.Elapsed)
	observability.Search().OnSearchComplete(c.strategy.Name(), c.rec.Visited(), c.rec.Reached, c.rec.Stats.Elapsed)
}

// Tick advances the replay by one frame and returns it.
//
// While nodes remain, the next one is revealed and the cursor advances. When
// the order is exhausted and the end was reached, the cursor steps back onto
// the last node and the final route is drawn on this and every later frame.
// Otherwise the phase becomes PhaseNoPath and the cursor stays exhausted.
func (c *Controller) Tick() Frame {
	c.Setup()
	c.frames++

	switch {
	case c.phase.Done():
	case c.cursor < len(c.rec.Order):
		c.reveal(c.rec.Order[c.cursor])
		c.cursor++
	case c.g.Node(c.g.End()).Visited:
		c.cursor--
		c.revealed = c.rec.Order[c.cursor]
		c.path = search.Points(c.g, search.Reconstruct(c.g, c.g.End()))
		c.trail = c.path
		c.phase = PhasePathDrawn
		c.logger.Debug("replay finished", "hops", len(c.path)-1, "frames", c.frames)
		observability.Search().OnReplayDone(true, c.frames)
	default:
		c.revealed = grid.NoParent
		c.trail = nil
		c.phase = PhaseNoPath
		c.logger.Debug("replay finished without path", "visited", c.rec.Visited(), "frames", c.frames)
		observability.Search().OnReplayDone(false, c.frames)
	}
	return c.Snapshot()
}

func (c *Controller) reveal(i int) {
	c.revealed = i
	c.trail = search.Points(c.g, search.Reconstruct(c.g, i))
}

// Update is the per-frame host callback: it applies at most one click from
// in (which may be nil), then advances the replay.
func (c *Controller) Update(elapsed time.Duration, in Input) Frame {
	c.Setup()
	if in != nil {
		if e, ok := in.Click(); ok {
			c.Apply(e)
		}
	}
	c.elapsed += elapsed
	return c.Tick()
}

// Snapshot returns the current frame without advancing the replay.
func (c *Controller) Snapshot() Frame {
	g := c.g
	shown := c.cursor
	if c.phase == PhasePathDrawn {
		shown = len(c.rec.Order)
	}
	revealed := make([]bool, g.Len())
	for _, i := range c.rec.Order[:shown] {
		revealed[i] = true
	}

	f := Frame{
		Width:   g.Width(),
		Height:  g.Height(),
		Cells:   make([]CellKind, g.Len()),
		Edges:   make([]Segment, len(g.Edges())),
		Start:   g.Node(g.Start()).Point(),
		End:     g.Node(g.End()).Point(),
		Phase:   c.phase,
		Cursor:  c.cursor,
		Total:   len(c.rec.Order),
		Elapsed: c.elapsed,
	}
	for i := range f.Cells {
		switch {
		case i == g.Start():
			f.Cells[i] = CellStart
		case i == g.End():
			f.Cells[i] = CellEnd
		case g.Node(i).Obstacle:
			f.Cells[i] = CellObstacle
		case revealed[i]:
			f.Cells[i] = CellVisited
		default:
			f.Cells[i] = CellUnvisited
		}
	}
	for i, e := range g.Edges() {
		f.Edges[i] = Segment{From: g.Node(e.A).Point(), To: g.Node(e.B).Point()}
	}
	if c.trail != nil {
		f.Trail = append([]grid.Point(nil), c.trail...)
	}
	if c.path != nil {
		f.Path = append([]grid.Point(nil), c.path...)
	}
	if c.revealed != grid.NoParent {
		p := g.Node(c.revealed).Point()
		f.Revealed = &p
	}
	return f
}
