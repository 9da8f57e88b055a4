package render

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-sand/internal/core"
	"github.com/vovakirdan/tui-sand/internal/telemetry"
)

func TestRows(t *testing.T) {
	cells := []rune("abcdefg")
	rows := Rows(cells, 3, 3)

	expected := []string{"abc", "def", "g  "}
	if len(rows) != len(expected) {
		t.Fatalf("got %d rows, expected %d", len(rows), len(expected))
	}
	for i := range expected {
		if rows[i] != expected[i] {
			t.Errorf("row %d = %q, expected %q", i, rows[i], expected[i])
		}
	}
}

func TestCapture(t *testing.T) {
	buf := core.NewBuffer(6, 4)
	buf.Write(0, 0, 'A')
	buf.Write(4, 3, 'Z') // past the end, folds onto the last slot

	f := Capture(buf)
	if f.Width != 6 || f.Height != 4 {
		t.Errorf("size = %dx%d, expected 6x4", f.Width, f.Height)
	}
	if len(f.Rows) != 4 {
		t.Fatalf("got %d rows, expected 4", len(f.Rows))
	}
	for i, row := range f.Rows {
		if n := len([]rune(row)); n != 5 {
			t.Errorf("row %d has %d cells, expected 5", i, n)
		}
	}
	if []rune(f.Rows[0])[0] != 'A' {
		t.Errorf("row 0 = %q, expected it to start with A", f.Rows[0])
	}
	// 6x4 buffer holds 19 cells; the 20th is padding.
	if f.Rows[3] != "   Z " {
		t.Errorf("row 3 = %q, expected %q", f.Rows[3], "   Z ")
	}
}

func TestCaptureIsDetached(t *testing.T) {
	buf := core.NewBuffer(6, 4)
	f := Capture(buf)
	buf.FillAll(core.GlyphSolid)
	if strings.ContainsRune(f.Rows[0], core.GlyphSolid) {
		t.Error("a captured frame should not see later writes")
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name     string
		frame    Frame
		contains []string
		absent   []string
	}{
		{
			name: "running",
			frame: Frame{
				Title: "Falling Sand", Running: true, Tick: 42, Population: 7,
				Perf: telemetry.PerfStats{LastTickMS: 0.5, FPS: 120},
			},
			contains: []string{"Falling Sand", "tick 42", "0.50 ms/frame", "120 FPS", "pop 7"},
			absent:   []string{"[stopped]", "resets", "!"},
		},
		{
			name:     "stopped with resets",
			frame:    Frame{Title: "Falling Sand", Tick: 9, Resets: 2},
			contains: []string{"[stopped]", "resets 2"},
		},
		{
			name:     "idle",
			frame:    Frame{},
			contains: []string{"Idle", "[stopped]"},
		},
		{
			name:     "error wins over notice",
			frame:    Frame{Running: true, Err: "tick 3 failed", Notice: "hello"},
			contains: []string{"! tick 3 failed"},
			absent:   []string{"hello"},
		},
		{
			name:     "notice",
			frame:    Frame{Running: true, Notice: "unknown key"},
			contains: []string{"> unknown key"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.frame.Status()
			for _, want := range tc.contains {
				if !strings.Contains(s, want) {
					t.Errorf("status %q missing %q", s, want)
				}
			}
			for _, bad := range tc.absent {
				if strings.Contains(s, bad) {
					t.Errorf("status %q should not contain %q", s, bad)
				}
			}
		})
	}
}

func TestPublisherKeepsLatest(t *testing.T) {
	p := NewPublisher()
	p.Publish(Frame{Tick: 1})
	p.Publish(Frame{Tick: 2})
	p.Publish(Frame{Tick: 3})

	f := <-p.Frames()
	if f.Tick != 3 {
		t.Errorf("got tick %d, expected the latest (3)", f.Tick)
	}
	select {
	case f := <-p.Frames():
		t.Errorf("expected no more frames, got tick %d", f.Tick)
	default:
	}
}
