// Package core provides platform primitives shared by the game and the
// terminal front end: the screen buffer, colors, layout rectangles and
// input actions. It has no Bubble Tea dependency.
package core

// Rect is an axis-aligned screen region.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inset shrinks the rectangle by n on every side. The result never has a
// negative size.
func (r Rect) Inset(n int) Rect {
	return Rect{
		X: r.X + n,
		Y: r.Y + n,
		W: max(r.W-2*n, 0),
		H: max(r.H-2*n, 0),
	}
}

// Centered returns a w x h rectangle centered inside outer. When the
// content is larger than outer it is pinned to outer's top-left corner.
func Centered(outer Rect, w, h int) Rect {
	x := outer.X + max((outer.W-w)/2, 0)
	y := outer.Y + max((outer.H-h)/2, 0)
	return Rect{X: x, Y: y, W: w, H: h}
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Wrap maps val into [0, n), wrapping negative values around.
func Wrap(val, n int) int {
	if n <= 0 {
		return 0
	}
	val %= n
	if val < 0 {
		val += n
	}
	return val
}
