package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/pathgrid/pkg/grid"
	"github.com/matzehuels/pathgrid/pkg/replay"
)

func newTestBoard(t *testing.T, w, h int) BoardModel {
	t.Helper()
	g, err := grid.New(w, h)
	if err != nil {
		t.Fatal(err)
	}
	return NewBoardModel(replay.New(g, nil, replay.WithLogger(discardLogger())), time.Millisecond)
}

func step(m BoardModel, msg tea.Msg) BoardModel {
	next, _ := m.Update(msg)
	return next.(BoardModel)
}

func frameAt(d time.Duration) frameMsg {
	return frameMsg(time.Unix(0, 0).Add(d))
}

// cellPos returns the terminal position of cell (x, y).
func cellPos(x, y int) (int, int) {
	return 1 + x*cellWidth, boardTop + 1 + y
}

func TestBoardModelInit(t *testing.T) {
	m := newTestBoard(t, 4, 4)
	if m.Init() == nil {
		t.Error("Init should schedule the first frame")
	}
	if m.Frame().Phase != replay.PhaseAnimating || m.Frame().Cursor != 0 {
		t.Errorf("initial frame phase=%s cursor=%d", m.Frame().Phase, m.Frame().Cursor)
	}
}

func TestBoardModelFrames(t *testing.T) {
	m := newTestBoard(t, 4, 4)
	for i := 1; i <= 3; i++ {
		next, cmd := m.Update(frameAt(time.Duration(i) * 20 * time.Millisecond))
		m = next.(BoardModel)
		if cmd == nil {
			t.Fatal("frame did not schedule the next tick")
		}
		if m.Frame().Cursor != i {
			t.Errorf("frame %d cursor = %d", i, m.Frame().Cursor)
		}
	}
	if got := m.Frame().Elapsed; got != 40*time.Millisecond {
		t.Errorf("elapsed = %v, want 40ms", got)
	}
}

func TestBoardModelMouse(t *testing.T) {
	tests := []struct {
		name        string
		shift, ctrl bool
		check       func(*testing.T, *grid.Grid)
	}{
		{"click toggles obstacle", false, false, func(t *testing.T, g *grid.Grid) {
			if !g.Node(g.Index(2, 1)).Obstacle {
				t.Error("obstacle not set")
			}
		}},
		{"shift+click moves start", true, false, func(t *testing.T, g *grid.Grid) {
			if g.Start() != g.Index(2, 1) {
				t.Errorf("start = %d", g.Start())
			}
		}},
		{"ctrl+click moves end", false, true, func(t *testing.T, g *grid.Grid) {
			if g.End() != g.Index(2, 1) {
				t.Errorf("end = %d", g.End())
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestBoard(t, 4, 4)
			m = step(m, frameAt(0))
			x, y := cellPos(2, 1)
			m = step(m, tea.MouseMsg{X: x, Y: y, Shift: tt.shift, Ctrl: tt.ctrl,
				Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
			if m.queue.Len() != 1 {
				t.Fatalf("queued %d edits, want 1", m.queue.Len())
			}

			m = step(m, frameAt(20*time.Millisecond))
			tt.check(t, m.ctrl.Grid())
			if m.Frame().Cursor != 1 {
				t.Errorf("replay not restarted: cursor = %d", m.Frame().Cursor)
			}
		})
	}
}

func TestBoardModelMouseIgnored(t *testing.T) {
	m := newTestBoard(t, 4, 4)
	x, y := cellPos(1, 1)
	m = step(m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = step(m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionRelease})
	ox, oy := cellPos(4, 0)
	m = step(m, tea.MouseMsg{X: ox, Y: oy, Action: tea.MouseActionRelease})
	if m.queue.Len() != 0 {
		t.Errorf("queued %d edits, want 0", m.queue.Len())
	}
}

func TestBoardModelKeys(t *testing.T) {
	m := newTestBoard(t, 4, 4)
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyDown},
		{Type: tea.KeyRight},
		{Type: tea.KeyRunes, Runes: []rune("l")},
		{Type: tea.KeySpace, Runes: []rune(" ")},
		{Type: tea.KeyRunes, Runes: []rune("j")},
		{Type: tea.KeyRunes, Runes: []rune("e")},
	} {
		m = step(m, k)
	}
	if m.cursor != (grid.Point{X: 2, Y: 2}) {
		t.Errorf("cursor = %v", m.cursor)
	}
	if m.queue.Len() != 2 {
		t.Fatalf("queued %d edits, want 2", m.queue.Len())
	}

	m = step(m, frameAt(0))
	m = step(m, frameAt(time.Millisecond))
	g := m.ctrl.Grid()
	if !g.Node(g.Index(2, 1)).Obstacle {
		t.Error("space did not toggle an obstacle")
	}
	if g.End() != g.Index(2, 2) {
		t.Errorf("e did not move the end: %d", g.End())
	}
}

func TestBoardModelCursorClamped(t *testing.T) {
	m := newTestBoard(t, 2, 2)
	m = step(m, tea.KeyMsg{Type: tea.KeyUp})
	m = step(m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.cursor != (grid.Point{}) {
		t.Errorf("cursor left the grid: %v", m.cursor)
	}
}

func TestBoardModelQuit(t *testing.T) {
	m := newTestBoard(t, 2, 2)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not return tea.Quit")
	}
}

func TestBoardModelView(t *testing.T) {
	m := newTestBoard(t, 3, 2)
	view := m.View()
	lines := strings.Split(view, "\n")
	if !strings.Contains(lines[0], "pathgrid") || !strings.Contains(lines[0], "3x2 4-way") {
		t.Errorf("title line = %q", lines[0])
	}
	if lines[1] != legend {
		t.Errorf("legend line = %q", lines[1])
	}
	if !strings.HasPrefix(lines[boardTop], "╭") {
		t.Errorf("board border not at row %d: %q", boardTop, lines[boardTop])
	}
	if !strings.HasPrefix(lines[boardTop+1], "│S ") {
		t.Errorf("first cell row = %q", lines[boardTop+1])
	}
}
