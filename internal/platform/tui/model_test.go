package tui

import (
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/tui-sand/internal/config"
	"github.com/vovakirdan/tui-sand/internal/session"

	_ "github.com/vovakirdan/tui-sand/internal/modes/crawl"
	_ "github.com/vovakirdan/tui-sand/internal/modes/noise"
	_ "github.com/vovakirdan/tui-sand/internal/modes/sand"
	_ "github.com/vovakirdan/tui-sand/internal/modes/saver"
)

func newTestSession(t *testing.T, width, height int) *session.Session {
	t.Helper()
	cfg := config.DefaultSandConfig()
	cfg.Timing.RefreshInterval = time.Millisecond

	sess, err := session.New(session.Options{
		Config: cfg,
		Width:  width,
		Height: height,
		Logger: log.New(io.Discard),
		Dice:   rand.New(rand.NewSource(7)),
	})
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	t.Cleanup(sess.Close)
	return sess
}

// pump runs cmd until it yields a frame that satisfies cond, feeding every
// frame through the model.
func pump(t *testing.T, m Model, cond func(FrameMsg) bool) Model {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		msg := waitForFrame(m.sess.Frames())()
		next, _ := m.Update(msg)
		m = next.(Model)
		if f, ok := msg.(FrameMsg); ok && cond(f) {
			return m
		}
	}
	t.Fatal("timed out waiting for a frame")
	return m
}

func TestModelRunsModeFromKey(t *testing.T) {
	sess := newTestSession(t, 20, 8)
	m := NewModel(sess)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 8})
	m = next.(Model)
	next, cmd := m.Update(runeKey('n'))
	m = next.(Model)
	if cmd != nil {
		t.Error("mode keys should not return a command")
	}

	m = pump(t, m, func(f FrameMsg) bool { return f.Mode == "noise" && f.Tick > 0 })

	view := ansi.Strip(m.View())
	lines := strings.Split(view, "\n")
	if len(lines) != 8 {
		t.Fatalf("view has %d lines, expected 8", len(lines))
	}
	if !strings.HasPrefix(lines[7], "Draw Test") {
		t.Errorf("status line = %q", lines[7])
	}
	if strings.TrimSpace(lines[0]) == "" {
		t.Error("draw test should fill the first row")
	}
}

func TestModelStopShowsStopped(t *testing.T) {
	sess := newTestSession(t, 20, 8)
	m := NewModel(sess)

	next, _ := m.Update(runeKey('c'))
	m = next.(Model)
	m = pump(t, m, func(f FrameMsg) bool { return f.Tick > 2 })

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	m = pump(t, m, func(f FrameMsg) bool { return !f.Running })

	if view := ansi.Strip(m.View()); !strings.Contains(view, "[stopped]") {
		t.Errorf("stopped view should say so:\n%s", view)
	}
}

func TestModelHelpToggle(t *testing.T) {
	sess := newTestSession(t, 60, 12)
	m := NewModel(sess)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 12})
	m = next.(Model)

	next, _ = m.Update(runeKey('?'))
	m = next.(Model)
	if !m.showHelp {
		t.Fatal("? should show help")
	}
	if view := ansi.Strip(m.View()); !strings.Contains(view, "falling sand") {
		t.Errorf("help view should list bindings:\n%s", view)
	}

	next, _ = m.Update(runeKey('?'))
	m = next.(Model)
	if m.showHelp {
		t.Error("second ? should hide help")
	}
}

func TestModelQuit(t *testing.T) {
	sess := newTestSession(t, 20, 8)
	m := NewModel(sess)

	next, cmd := m.Update(runeKey('q'))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}
