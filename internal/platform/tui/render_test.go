package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderRowsKeepsCells(t *testing.T) {
	rows := []string{
		"  ░░▒▓ ",
		"+++█   ",
		"       ",
	}

	got := ansi.Strip(RenderRows(rows))
	if want := strings.Join(rows, "\n"); got != want {
		t.Errorf("RenderRows =\n%q\nexpected\n%q", got, want)
	}
}

func TestRenderRowsEmpty(t *testing.T) {
	if got := RenderRows(nil); got != "" {
		t.Errorf("RenderRows(nil) = %q, expected empty", got)
	}
}

func TestRenderStatusTruncates(t *testing.T) {
	got := ansi.Strip(renderStatus("Falling Sand  tick 12", false, 12))
	if got != "Falling Sand" {
		t.Errorf("renderStatus = %q, expected %q", got, "Falling Sand")
	}

	got = ansi.Strip(renderStatus("short", true, 0))
	if got != "short" {
		t.Errorf("renderStatus without width = %q", got)
	}
}
