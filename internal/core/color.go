package core

// Glyphs drawn by the simulations. The shade blocks double as density tiers.
const (
	GlyphSolid         = '█'
	GlyphThreeQuarters = '▓'
	GlyphHalf          = '▒'
	GlyphQuarter       = '░'
	GlyphFill          = '+' // diagnostic fill
)

// Color represents a foreground color for a screen cell.
// Surfaces translate it to their own styling (lipgloss, tcell).
type Color uint8

// Predefined colors.
const (
	ColorDefault Color = iota
	ColorYellow
	ColorBrightYellow
	ColorOrange
	ColorWhite
	ColorGray
	ColorRed
)

// GlyphColor returns the tier color for a glyph.
func GlyphColor(r rune) Color {
	switch r {
	case GlyphQuarter:
		return ColorBrightYellow
	case GlyphHalf:
		return ColorYellow
	case GlyphThreeQuarters:
		return ColorOrange
	case GlyphSolid:
		return ColorWhite
	case GlyphFill:
		return ColorGray
	default:
		return ColorDefault
	}
}
