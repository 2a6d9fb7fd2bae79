package replay

import "github.com/matzehuels/pathgrid/pkg/grid"

// Phase is the replay state.
type Phase int

const (
	// PhaseIdle is the state before Setup.
	PhaseIdle Phase = iota
	// PhaseAnimating reveals one finalized node per frame.
	PhaseAnimating
	// PhasePathDrawn freezes the replay on the final route to the end node.
	PhasePathDrawn
	// PhaseNoPath means the order is exhausted and the end was never reached.
	PhaseNoPath
)

var phaseNames = [...]string{"idle", "animating", "path", "no-path"}

// String returns a short lowercase name.
func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Done reports whether the replay reached a terminal phase.
func (p Phase) Done() bool { return p == PhasePathDrawn || p == PhaseNoPath }

// Intent says what a click does.
type Intent int

const (
	// IntentToggleObstacle flips the obstacle flag of the clicked cell.
	IntentToggleObstacle Intent = iota
	// IntentSetStart moves the start marker.
	IntentSetStart
	// IntentSetEnd moves the end marker.
	IntentSetEnd
)

var intentNames = [...]string{"toggle", "start", "end"}

// String returns "toggle", "start" or "end".
func (i Intent) String() string {
	if i >= 0 && int(i) < len(intentNames) {
		return intentNames[i]
	}
	return "unknown"
}

// MarshalText encodes the intent by name.
func (i Intent) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

// UnmarshalText decodes "toggle", "start" or "end". An empty value is a toggle.
func (i *Intent) UnmarshalText(b []byte) error {
	switch string(b) {
	case "", "toggle", "obstacle":
		*i = IntentToggleObstacle
	case "start":
		*i = IntentSetStart
	case "end":
		*i = IntentSetEnd
	default:
		return &UnknownIntentError{Value: string(b)}
	}
	return nil
}

// UnknownIntentError is returned when decoding an unrecognized intent name.
type UnknownIntentError struct{ Value string }

func (e *UnknownIntentError) Error() string { return "replay: unknown intent " + e.Value }

// IntentFor maps modifier keys to an intent: shift sets the start, ctrl sets
// the end, neither toggles an obstacle. Shift wins when both are held.
func IntentFor(shift, ctrl bool) Intent {
	switch {
	case shift:
		return IntentSetStart
	case ctrl:
		return IntentSetEnd
	default:
		return IntentToggleObstacle
	}
}

// Edit is one resolved click.
type Edit struct {
	Intent Intent `json:"intent"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// Point returns the edited cell.
func (e Edit) Point() grid.Point { return grid.Point{X: e.X, Y: e.Y} }

// CellKind classifies a cell for drawing.
type CellKind int

const (
	CellUnvisited CellKind = iota
	CellVisited
	CellObstacle
	CellStart
	CellEnd
)

var cellNames = [...]string{"unvisited", "visited", "obstacle", "start", "end"}

// String returns a short lowercase name.
func (k CellKind) String() string {
	if int(k) < len(cellNames) {
		return cellNames[k]
	}
	return "unknown"
}

// MarshalText encodes the kind by name.
func (k CellKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
