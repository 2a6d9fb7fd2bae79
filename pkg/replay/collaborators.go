package replay

import (
	"context"
	"time"
)

// Input supplies at most one resolved click per frame.
type Input interface {
	Click() (Edit, bool)
}

// Renderer draws one frame.
type Renderer interface {
	Draw(Frame) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Frame) error

// Draw calls f.
func (f RendererFunc) Draw(fr Frame) error { return f(fr) }

// ClickQueue is a FIFO Input. Hosts push clicks as they arrive; the
// controller consumes one per frame.
type ClickQueue struct {
	edits []Edit
}

// Push enqueues an edit.
func (q *ClickQueue) Push(e Edit) { q.edits = append(q.edits, e) }

// Len returns the number of pending edits.
func (q *ClickQueue) Len() int { return len(q.edits) }

// Click dequeues the oldest edit.
func (q *ClickQueue) Click() (Edit, bool) {
	if len(q.edits) == 0 {
		return Edit{}, false
	}
	e := q.edits[0]
	q.edits = q.edits[1:]
	return e, true
}

// DefaultDelay is the frame delay Run uses when given a non-positive one.
const DefaultDelay = 20 * time.Millisecond

// Run drives c from a ticker: one Update per delay, each frame handed to r.
// A non-positive delay selects DefaultDelay. It returns when ctx is done, when
// r fails, or, if stopWhenDone is set, after the first frame of a terminal phase.
func Run(ctx context.Context, c *Controller, in Input, r Renderer, delay time.Duration, stopWhenDone bool) error {
	if delay <= 0 {
		delay = DefaultDelay
	}
	c.Setup()
	ticker := time.NewTicker(delay)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			f := c.Update(now.Sub(last), in)
			last = now
			if err := r.Draw(f); err != nil {
				return err
			}
			if stopWhenDone && f.Phase.Done() {
				return nil
			}
		}
	}
}
