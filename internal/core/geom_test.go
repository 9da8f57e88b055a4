package core

import "testing"

func TestPointInGrid(t *testing.T) {
	tests := []struct {
		name     string
		p        Point
		expected bool
	}{
		{"origin", Point{0, 0}, true},
		{"last cell", Point{9, 4}, true},
		{"left of grid", Point{-1, 2}, false},
		{"above grid", Point{3, -1}, false},
		{"right edge (exclusive)", Point{10, 2}, false},
		{"bottom edge (exclusive)", Point{3, 5}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.p.InGrid(10, 5); got != tc.expected {
				t.Errorf("InGrid(10, 5) for %v = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestPointAdd(t *testing.T) {
	p := Point{X: 4, Y: 7}.Add(-1, 2)
	if p.X != 3 || p.Y != 9 {
		t.Errorf("Add(-1, 2) = %v, expected {3 9}", p)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 {
		t.Error("Min(5, 10) should be 5")
	}
	if Min(10, 5) != 5 {
		t.Error("Min(10, 5) should be 5")
	}
	if Max(5, 10) != 10 {
		t.Error("Max(5, 10) should be 10")
	}
	if Max(10, 5) != 10 {
		t.Error("Max(10, 5) should be 10")
	}
}

func TestAbs(t *testing.T) {
	if Abs(5) != 5 {
		t.Error("Abs(5) should be 5")
	}
	if Abs(-5) != 5 {
		t.Error("Abs(-5) should be 5")
	}
	if Abs(0) != 0 {
		t.Error("Abs(0) should be 0")
	}
}

func TestActionModeID(t *testing.T) {
	tests := []struct {
		action Action
		mode   string
	}{
		{ActionSand, "sand"},
		{ActionSaver, "saver"},
		{ActionCrawl, "crawl"},
		{ActionNoise, "noise"},
		{ActionStop, ""},
		{ActionQuit, ""},
	}

	for _, tc := range tests {
		if got := tc.action.ModeID(); got != tc.mode {
			t.Errorf("%v.ModeID() = %q, expected %q", tc.action, got, tc.mode)
		}
	}
}

func TestGlyphColor(t *testing.T) {
	if GlyphColor(GlyphQuarter) == GlyphColor(GlyphThreeQuarters) {
		t.Error("outer glyph tiers should not share a color")
	}
	if GlyphColor(Blank) != ColorDefault {
		t.Errorf("GlyphColor(Blank) = %v, expected ColorDefault", GlyphColor(Blank))
	}
}

func TestReflect(t *testing.T) {
	tests := []struct {
		p, v, limit, expected int
	}{
		{5, 1, 10, 1},   // free
		{9, 1, 10, -1},  // would reach limit
		{8, 3, 10, -3},  // would pass limit
		{1, -1, 10, 1},  // would reach 0
		{2, -1, 10, -1}, // free
		{0, 0, 10, 0},   // still
	}

	for _, tc := range tests {
		if got := Reflect(tc.p, tc.v, tc.limit); got != tc.expected {
			t.Errorf("Reflect(%d, %d, %d) = %d, expected %d", tc.p, tc.v, tc.limit, got, tc.expected)
		}
	}
}
