package core

import (
	"sync"
)

// Blank marks an unoccupied cell.
const Blank = ' '

// Buffer is the flat character grid shared by the simulation and the renderer.
// It is both the frame that gets painted and the only occupancy map the
// simulation consults, so every access goes through one mutex.
//
// Cells are addressed with a row stride of width-1 and the buffer is
// height+1 cells shorter than width*height, which keeps the last cell off the
// terminal's wrap column. Addresses past the end are folded onto the final
// slot instead of failing.
type Buffer struct {
	mu     sync.Mutex
	width  int
	height int
	cells  []rune
}

// NewBuffer creates a blank buffer for a width x height surface.
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.allocate(width, height)
	return b
}

// allocate sizes the cell storage and blanks it. Caller holds mu or owns b.
func (b *Buffer) allocate(width, height int) {
	width = Max(width, 2)
	height = Max(height, 1)
	b.width = width
	b.height = height

	n := width*height - (height + 1)
	if n < 1 {
		n = 1
	}
	b.cells = make([]rune, n)
	for i := range b.cells {
		b.cells[i] = Blank
	}
}

// Width returns the surface width the buffer was built for.
func (b *Buffer) Width() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width
}

// Height returns the surface height the buffer was built for.
func (b *Buffer) Height() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.height
}

// Len returns the number of addressable cells.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.cells)
}

// Stride returns the row stride used by Index.
func (b *Buffer) Stride() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width - 1
}

// Index maps a coordinate to its flat address: y*(width-1) + x.
// The result is not range checked.
func (b *Buffer) Index(x, y int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.index(x, y)
}

func (b *Buffer) index(x, y int) int {
	return y*(b.width-1) + x
}

// Resize reallocates the buffer for a new surface size. Content is dropped.
func (b *Buffer) Resize(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if width == b.width && height == b.height {
		return
	}
	b.allocate(width, height)
}

// Write stores r at (x, y). Out-of-range addresses write the last cell.
func (b *Buffer) Write(x, y int, r rune) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.index(x, y)
	if i < 0 || i >= len(b.cells) {
		i = len(b.cells) - 1
	}
	b.cells[i] = r
}

// Read returns the rune at (x, y), or Blank when the address is out of range.
func (b *Buffer) Read(x, y int) rune {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.index(x, y)
	if i < 0 || i >= len(b.cells) {
		return Blank
	}
	return b.cells[i]
}

// Occupied reports whether (x, y) holds anything but Blank.
func (b *Buffer) Occupied(x, y int) bool {
	return b.Read(x, y) != Blank
}

// Clear blanks every cell.
func (b *Buffer) Clear() {
	b.FillAll(Blank)
}

// FillAll sets every cell to r.
func (b *Buffer) FillAll(r rune) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.cells {
		b.cells[i] = r
	}
}

// Snapshot copies the whole buffer in one critical section.
func (b *Buffer) Snapshot() []rune {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]rune, len(b.cells))
	copy(out, b.cells)
	return out
}

// FilledCount returns the number of occupied cells.
func (b *Buffer) FilledCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, r := range b.cells {
		if r != Blank {
			n++
		}
	}
	return n
}
