// Package crawl implements the crawler: one walker per row sweeping from the
// left edge to the right and back until it runs out of bounces.
package crawl

import (
	"github.com/vovakirdan/tui-sand/internal/config"
	"github.com/vovakirdan/tui-sand/internal/core"
	"github.com/vovakirdan/tui-sand/internal/registry"
)

func init() {
	registry.Register("crawl", func(cfg config.SandConfig, d core.Dice) registry.Mode {
		return New(cfg.Crawl)
	})
}

// Glyph is drawn for every crawler.
const Glyph = core.GlyphHalf

type crawler struct {
	x, y    int
	vx      int
	bounces int // Wall bounces left before it stops
}

// Crawl is the row-sweeping crawler mode.
type Crawl struct {
	cfg      config.CrawlParams
	buf      *core.Buffer
	crawlers []crawler

	width, height int
	tick          uint64
	rounds        int
}

// New creates a crawler mode. It draws no randomness.
func New(cfg config.CrawlParams) *Crawl {
	return &Crawl{cfg: cfg}
}

func (c *Crawl) ID() string    { return "crawl" }
func (c *Crawl) Title() string { return "Crawler" }

// Reset lines one crawler up on the left edge of every row.
func (c *Crawl) Reset(cfg core.RuntimeConfig, buf *core.Buffer) {
	c.buf = buf
	c.width = buf.Width()
	c.height = buf.Height()
	c.tick = 0
	c.rounds = 0
	c.seed()
}

func (c *Crawl) seed() {
	c.buf.Clear()
	c.crawlers = make([]crawler, c.height)
	for y := range c.crawlers {
		c.crawlers[y] = crawler{x: 0, y: y, vx: 1, bounces: c.cfg.Budget}
	}
}

// Step advances every crawler one column. Once all of them have stopped the
// rows are cleared and a new round starts.
func (c *Crawl) Step() core.StepResult {
	c.tick++

	moving := 0
	for i := range c.crawlers {
		cr := &c.crawlers[i]
		if cr.bounces > 0 {
			if vx := core.Reflect(cr.x, cr.vx, c.width); vx != cr.vx {
				cr.vx = vx
				cr.bounces--
			}
		}
		if cr.bounces > 0 {
			c.buf.Write(cr.x, cr.y, core.Blank)
			cr.x = core.Clamp(cr.x+cr.vx, 0, c.width-1)
			moving++
		}
		c.buf.Write(cr.x, cr.y, Glyph)
	}

	if moving == 0 && len(c.crawlers) > 0 {
		c.rounds++
		c.seed()
	}

	return core.StepResult{Tick: c.tick, Population: moving, Resets: c.rounds}
}
