package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sand/internal/core"
	"github.com/vovakirdan/tui-sand/internal/render"
	"github.com/vovakirdan/tui-sand/internal/session"
)

// Model is the Bubble Tea model that paints one session.
// The session owns the simulation; the model only forwards keys and sizes
// and repaints whatever frame the tick loop published last.
type Model struct {
	sess     *session.Session
	keys     KeyMap
	help     help.Model
	frame    render.Frame
	hasFrame bool
	width    int
	height   int
	showHelp bool
	quitting bool
}

// NewModel creates a model for sess. The caller owns sess and closes it
// after the program exits.
func NewModel(sess *session.Session) Model {
	h := help.New()
	h.ShowAll = true

	return Model{
		sess: sess,
		keys: DefaultKeyMap(),
		help: h,
	}
}

// Init starts listening for frames.
func (m Model) Init() tea.Cmd {
	return waitForFrame(m.sess.Frames())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.sess.Resize(msg.Width, msg.Height)
		return m, nil

	case FrameMsg:
		m.frame = render.Frame(msg)
		m.hasFrame = true
		return m, waitForFrame(m.sess.Frames())

	case feedClosedMsg:
		return m, nil
	}

	return m, nil
}

// handleKey forwards a key to the session.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a := m.keys.Action(msg); a {
	case core.ActionNone:
	case core.ActionHelp:
		m.showHelp = !m.showHelp
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	default:
		m.sess.Apply(a)
	}
	return m, nil
}

// View renders the latest frame with the status line underneath.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	rows := m.frame.Rows
	if !m.hasFrame {
		rows = idleRows(m.height - 1)
	}

	var footer string
	if m.showHelp {
		footer = helpStyle.Render(m.help.View(m.keys))
	} else {
		status := m.frame.Status()
		if !m.frame.Running {
			status += "  ? help"
		}
		footer = renderStatus(status, m.frame.Err != "", m.width)
	}

	// The help block covers the bottom rows of the grid.
	if covered := lipgloss.Height(footer) - 1; covered > 0 {
		rows = rows[:max(len(rows)-covered, 0)]
	}

	var sb strings.Builder
	sb.WriteString(RenderRows(rows))
	if len(rows) > 0 {
		sb.WriteRune('\n')
	}
	sb.WriteString(footer)
	return sb.String()
}

// idleRows is shown before the session has published anything.
func idleRows(height int) []string {
	if height < 1 {
		return nil
	}
	return make([]string, height)
}

// Run starts the Bubble Tea program for sess and blocks until the user quits.
func Run(sess *session.Session, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(NewModel(sess), opts...)
	_, err := p.Run()
	return err
}
