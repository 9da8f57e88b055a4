// Package render turns the shared buffer into frames that terminal surfaces
// can paint, and hands them over without blocking the tick loop.
package render

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-sand/internal/core"
	"github.com/vovakirdan/tui-sand/internal/telemetry"
)

// Frame is one painted tick.
type Frame struct {
	Width  int      // Surface width the buffer was sized for
	Height int      // Grid rows
	Rows   []string // Height rows of Width-1 cells each

	Mode       string
	Title      string
	Tick       uint64
	Population int
	Resets     int
	Running    bool
	Perf       telemetry.PerfStats
	Err        string // Last tick failure, if any
	Notice     string // Transient message from a command
}

// Capture copies buf in one critical section and splits it into rows.
func Capture(buf *core.Buffer) Frame {
	cells := buf.Snapshot()
	w, h := buf.Width(), buf.Height()
	return Frame{
		Width:  w,
		Height: h,
		Rows:   Rows(cells, w-1, h),
	}
}

// Rows splits a flat cell slice into height rows of stride cells.
// The final row is padded with blanks where the buffer ends early.
func Rows(cells []rune, stride, height int) []string {
	rows := make([]string, height)
	var sb strings.Builder
	for y := 0; y < height; y++ {
		sb.Reset()
		sb.Grow(stride * 3)
		start := y * stride
		for x := 0; x < stride; x++ {
			if i := start + x; i < len(cells) {
				sb.WriteRune(cells[i])
			} else {
				sb.WriteRune(core.Blank)
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

// Status formats the one-line readout shown under the grid.
func (f Frame) Status() string {
	var sb strings.Builder

	title := f.Title
	if title == "" {
		title = "Idle"
	}
	sb.WriteString(title)

	if !f.Running {
		sb.WriteString("  [stopped]")
	}

	fmt.Fprintf(&sb, "  tick %d", f.Tick)
	if f.Perf.LastTickMS > 0 {
		fmt.Fprintf(&sb, "  %.2f ms/frame", f.Perf.LastTickMS)
	}
	if f.Perf.FPS > 0 {
		fmt.Fprintf(&sb, "  %.0f FPS", f.Perf.FPS)
	}
	fmt.Fprintf(&sb, "  pop %d", f.Population)
	if f.Resets > 0 {
		fmt.Fprintf(&sb, "  resets %d", f.Resets)
	}

	if f.Err != "" {
		sb.WriteString("  ! ")
		sb.WriteString(f.Err)
	} else if f.Notice != "" {
		sb.WriteString("  > ")
		sb.WriteString(f.Notice)
	}
	return sb.String()
}
