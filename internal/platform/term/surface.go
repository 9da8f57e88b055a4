// Package term paints a session straight onto a tcell screen. It is the
// lighter alternative to the Bubble Tea surface: no view diffing, no help
// bubble, one SetContent per cell.
package term

import (
	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-sand/internal/core"
	"github.com/vovakirdan/tui-sand/internal/render"
	"github.com/vovakirdan/tui-sand/internal/session"
)

var (
	styleDefault = tcell.StyleDefault
	styleStatus  = styleDefault.Foreground(tcell.ColorGray)
	styleError   = styleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleHelp    = styleDefault.Foreground(tcell.ColorSilver)
)

// glyphStyles maps core.Color to tcell styles.
var glyphStyles = map[core.Color]tcell.Style{
	core.ColorDefault:      styleDefault,
	core.ColorYellow:       styleDefault.Foreground(tcell.ColorOlive),
	core.ColorBrightYellow: styleDefault.Foreground(tcell.ColorYellow),
	core.ColorOrange:       styleDefault.Foreground(tcell.ColorOrange),
	core.ColorWhite:        styleDefault.Foreground(tcell.ColorWhite),
	core.ColorGray:         styleDefault.Foreground(tcell.ColorGray),
	core.ColorRed:          styleDefault.Foreground(tcell.ColorRed),
}

var helpLines = []string{
	"space sand   s saver   c crawl   n draw test",
	"esc stop     r reseed  f fill    ? help   q quit",
}

// Surface drives one session on a tcell screen.
type Surface struct {
	screen   tcell.Screen
	sess     *session.Session
	logger   *log.Logger
	last     render.Frame
	showHelp bool
}

// New opens the terminal and wraps it for sess.
func New(sess *session.Session, logger *log.Logger) (*Surface, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return NewWithScreen(screen, sess, logger), nil
}

// NewWithScreen wraps an initialized screen.
func NewWithScreen(screen tcell.Screen, sess *session.Session, logger *log.Logger) *Surface {
	if logger == nil {
		logger = log.Default()
	}
	screen.SetStyle(styleDefault)
	screen.HideCursor()
	return &Surface{screen: screen, sess: sess, logger: logger}
}

// Size reports the screen size in cells.
func (s *Surface) Size() (int, int) {
	return s.screen.Size()
}

// Run paints frames and forwards keys until a quit key. The screen is
// finalized on return.
func (s *Surface) Run() error {
	defer s.screen.Fini()

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	frames := s.sess.Frames()
	for {
		select {
		case ev := <-events:
			if s.handleEvent(ev) {
				return nil
			}
		case f := <-frames:
			s.last = f
			s.draw()
		}
	}
}

// handleEvent reports whether the surface should quit.
func (s *Surface) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		s.logger.Debug("terminal resized", "width", w, "height", h)
		s.sess.Resize(w, h)
		s.screen.Sync()

	case *tcell.EventKey:
		switch a := KeyAction(ev); a {
		case core.ActionNone:
		case core.ActionHelp:
			s.showHelp = !s.showHelp
			s.draw()
		default:
			return s.sess.Apply(a)
		}
	}
	return false
}

// KeyAction translates a tcell key event to a session command.
func KeyAction(ev *tcell.EventKey) core.Action {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return core.ActionQuit
	case tcell.KeyEscape:
		return core.ActionStop
	case tcell.KeyRune:
	default:
		return core.ActionNone
	}

	switch ev.Rune() {
	case ' ':
		return core.ActionSand
	case 's', 'S':
		return core.ActionSaver
	case 'c', 'C':
		return core.ActionCrawl
	case 'n', 'N':
		return core.ActionNoise
	case 'r', 'R':
		return core.ActionReset
	case 'f', 'F':
		return core.ActionFill
	case '?':
		return core.ActionHelp
	case 'q', 'Q':
		return core.ActionQuit
	}
	return core.ActionNone
}

// draw paints the last frame and its status line.
func (s *Surface) draw() {
	f := s.last
	s.screen.Clear()

	for y, row := range f.Rows {
		x := 0
		for _, r := range row {
			s.screen.SetContent(x, y, r, nil, glyphStyle(r))
			x++
		}
	}

	w, h := s.screen.Size()
	statusY := len(f.Rows)
	if statusY >= h {
		statusY = h - 1
	}

	if s.showHelp {
		top := statusY - len(helpLines) + 1
		for i, line := range helpLines {
			drawText(s.screen, 0, top+i, w, line, styleHelp)
		}
	} else {
		style := styleStatus
		if f.Err != "" {
			style = styleError
		}
		status := f.Status()
		if !f.Running {
			status += "  ? help"
		}
		drawText(s.screen, 0, statusY, w, status, style)
	}
	s.screen.Show()
}

func glyphStyle(r rune) tcell.Style {
	if st, ok := glyphStyles[core.GlyphColor(r)]; ok {
		return st
	}
	return styleDefault
}

// drawText writes text on row y, clipped to width and blanking the rest.
func drawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	if y < 0 {
		return
	}
	for _, r := range text {
		if x >= width {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, styleDefault)
	}
}
