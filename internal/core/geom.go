// Package core provides the shared grid buffer, glyphs and small helpers for
// the sand box. It has no terminal dependencies so the simulations built on it
// stay testable without a screen.
package core

// Point is a cell coordinate. X grows to the right, Y grows downward.
type Point struct {
	X, Y int
}

// Add returns p offset by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// InGrid reports whether p lies inside a width x height grid.
func (p Point) InGrid(width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Reflect returns v, negated when p+v would reach limit or drop to 0 or
// below. Used by the bouncing modes, which never rest on the left column.
func Reflect(p, v, limit int) int {
	if n := p + v; n >= limit || n <= 0 {
		return -v
	}
	return v
}
