package cli

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/pathgrid/pkg/grid"
	"github.com/matzehuels/pathgrid/pkg/replay"
)

// boardTop is the screen row of the board's top border: title, legend and a
// blank line come first.
const boardTop = 3

// frameMsg is delivered once per frame delay.
type frameMsg time.Time

// =============================================================================
// BoardModel - Interactive replay
// =============================================================================

// BoardModel is the bubbletea model for the interactive board. Mouse and
// keyboard edits are queued and applied by the controller one per frame.
type BoardModel struct {
	ctrl   *replay.Controller
	queue  *replay.ClickQueue
	delay  time.Duration
	title  string
	frame  replay.Frame
	last   time.Time
	cursor grid.Point
	keys   bool // keyboard cursor in use
}

// NewBoardModel creates a model that advances ctrl every delay.
func NewBoardModel(ctrl *replay.Controller, delay time.Duration) BoardModel {
	ctrl.Setup()
	return BoardModel{
		ctrl:  ctrl,
		queue: &replay.ClickQueue{},
		delay: delay,
		title: describe(ctrl.Grid()),
		frame: ctrl.Snapshot(),
	}
}

// Frame returns the most recent frame.
func (m BoardModel) Frame() replay.Frame { return m.frame }

func (m BoardModel) Init() tea.Cmd {
	return m.tick()
}

func (m BoardModel) tick() tea.Cmd {
	return tea.Tick(m.delay, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		now := time.Time(msg)
		var elapsed time.Duration
		if !m.last.IsZero() {
			elapsed = now.Sub(m.last)
		}
		m.last = now
		m.frame = m.ctrl.Update(elapsed, m.queue)
		return m, m.tick()

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease {
			return m, nil
		}
		if p, ok := m.hitCell(msg.X, msg.Y); ok {
			m.queue.Push(replay.Edit{Intent: replay.IntentFor(msg.Shift, msg.Ctrl), X: p.X, Y: p.Y})
			m.cursor = p
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(0, -1)
		case "down", "j":
			m.move(0, 1)
		case "left", "h":
			m.move(-1, 0)
		case "right", "l":
			m.move(1, 0)
		case " ", "space", "enter":
			m.edit(replay.IntentToggleObstacle)
		case "s":
			m.edit(replay.IntentSetStart)
		case "e":
			m.edit(replay.IntentSetEnd)
		}
	}
	return m, nil
}

func (m *BoardModel) move(dx, dy int) {
	m.keys = true
	p := grid.Point{X: m.cursor.X + dx, Y: m.cursor.Y + dy}
	if m.ctrl.Grid().InBounds(p.X, p.Y) {
		m.cursor = p
	}
}

func (m *BoardModel) edit(intent replay.Intent) {
	m.keys = true
	m.queue.Push(replay.Edit{Intent: intent, X: m.cursor.X, Y: m.cursor.Y})
}

// hitCell maps a terminal position to a grid cell.
func (m BoardModel) hitCell(col, row int) (grid.Point, bool) {
	if col < 1 || row < boardTop+1 {
		return grid.Point{}, false
	}
	p := grid.Point{X: (col - 1) / cellWidth, Y: row - boardTop - 1}
	return p, m.ctrl.Grid().InBounds(p.X, p.Y)
}

func (m BoardModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(appName) + StyleDim.Render(" "+m.title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(legend))
	b.WriteString("\n\n")

	var cursor *grid.Point
	if m.keys {
		cursor = &m.cursor
	}
	b.WriteString(renderBoard(m.frame, cursor))
	b.WriteString("\n")
	b.WriteString(renderStatus(m.frame))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("arrows move · space obstacle · s start · e end · q quit"))

	return b.String()
}
