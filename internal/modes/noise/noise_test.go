package noise

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-sand/internal/config"
	"github.com/vovakirdan/tui-sand/internal/core"
	"github.com/vovakirdan/tui-sand/internal/registry"
)

type seqDice struct{ rolls []int }

func (d *seqDice) Intn(n int) int {
	if len(d.rolls) == 0 {
		return 0
	}
	r := d.rolls[0]
	d.rolls = d.rolls[1:]
	return r % n
}

func TestNoiseRegistered(t *testing.T) {
	if !registry.Exists("noise") {
		t.Fatal("noise mode should register itself")
	}
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		roll     int
		expected rune
	}{
		{99, core.GlyphSolid},
		{88, core.GlyphSolid},
		{87, core.GlyphHalf},
		{60, core.GlyphHalf},
		{59, core.GlyphThreeQuarters},
		{35, core.GlyphThreeQuarters},
		{34, core.GlyphQuarter},
		{0, core.GlyphQuarter},
	}

	for _, tc := range tests {
		if got := Glyph(tc.roll); got != tc.expected {
			t.Errorf("Glyph(%d) = %q, expected %q", tc.roll, got, tc.expected)
		}
	}
}

func TestNoiseStepFillsGrid(t *testing.T) {
	buf := core.NewBuffer(30, 10)
	n := New(config.NoiseParams{Rerolls: 2}, rand.New(rand.NewSource(5)))
	n.Reset(core.RuntimeConfig{ScreenW: 30, ScreenH: 10}, buf)

	res := n.Step()
	if res.Tick != 1 {
		t.Errorf("tick = %d, expected 1", res.Tick)
	}
	if res.Population == 0 || res.Population > buf.Len() {
		t.Errorf("population = %d, expected within (0, %d]", res.Population, buf.Len())
	}
	if res.Population != buf.FilledCount() {
		t.Errorf("population %d should match occupied cells %d", res.Population, buf.FilledCount())
	}
}

func TestNoiseReroll(t *testing.T) {
	tests := []struct {
		name    string
		rerolls int
		x, y    int
		rolls   []int
		wantX   int
		wantY   int
	}{
		{"free cell kept", 2, 0, 0, []int{7, 7}, 0, 0},
		{"one reroll to a free cell", 2, 1, 1, []int{5, 5}, 5, 5},
		{"second reroll kept", 2, 1, 1, []int{2, 2, 3, 3}, 3, 3},
		{"out of rerolls", 1, 1, 1, []int{2, 2, 3, 3}, 2, 2},
		{"rerolls disabled", 0, 1, 1, []int{5, 5}, 1, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := core.NewBuffer(10, 10)
			buf.Write(1, 1, core.GlyphSolid)
			buf.Write(2, 2, core.GlyphSolid)

			n := New(config.NoiseParams{Rerolls: tc.rerolls}, &seqDice{rolls: tc.rolls})
			n.buf = buf
			n.width, n.height = 10, 10

			x, y := n.reroll(tc.x, tc.y)
			if x != tc.wantX || y != tc.wantY {
				t.Errorf("reroll(%d, %d) = (%d, %d), expected (%d, %d)", tc.x, tc.y, x, y, tc.wantX, tc.wantY)
			}
		})
	}
}
