// Package replay owns an interactive path-finding session: it applies grid
// edits, re-runs the search after each accepted edit, and replays the
// recorded visitation order one frame at a time.
//
// # Lifecycle
//
// A [Controller] moves through four phases:
//
//	Idle ──Setup──▶ Animating ──order exhausted──▶ PathDrawn | NoPath
//	                    ▲                                │
//	                    └────────── accepted edit ───────┘
//
// While animating, every [Controller.Tick] reveals the next finalized node and
// reports the parent chain leading to it as the frame's trail, so the
// shortest-path tree visibly grows. Once the order is exhausted the
// controller either freezes on the final route (end reached) or reports
// "no path" and stays exhausted.
//
// # Collaborators
//
// Rendering, input and frame pacing live outside this package and talk to the
// controller through narrow contracts:
//
//   - [Input] yields at most one resolved [Edit] per frame.
//   - [Renderer] draws a [Frame], an immutable snapshot of the grid.
//   - The host calls [Controller.Setup] once and [Controller.Update] per frame,
//     or hands everything to [Run] for a ticker-driven loop.
//
// # Concurrency
//
// A Controller is single-threaded. Engine runs happen synchronously inside
// Apply/Update; only the replay is spread across frames. Hosts that serve
// frames from several goroutines must serialize calls themselves. Frames never
// alias controller or grid memory, so they can be handed to other goroutines.
package replay
