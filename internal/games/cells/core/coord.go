package core

import "fmt"

// Coord represents a 2D coordinate on the board.
// X is the column and increases to the right, Y is the row and increases downward.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Step returns a new Coord one step in the given direction.
// The result may lie off the board; callers check with Board.Contains.
func (c Coord) Step(d Dir) Coord {
	dx, dy := d.Delta()
	return c.Add(dx, dy)
}

// Area is an inclusive axis-aligned rectangle on the board.
// It marks the region a player may edit and has no effect on the simulation.
type Area struct {
	TopLeft     Coord
	BottomRight Coord
}

// NewArea creates an area from its top-left and bottom-right corners.
func NewArea(topLeft, bottomRight Coord) Area {
	return Area{TopLeft: topLeft, BottomRight: bottomRight}
}

// Contains returns true if the coordinate lies within the inclusive bounds.
func (a Area) Contains(c Coord) bool {
	return a.TopLeft.X <= c.X && c.X <= a.BottomRight.X &&
		a.TopLeft.Y <= c.Y && c.Y <= a.BottomRight.Y
}

// String returns the area in wire form: "tlx,tly-brx,bry".
func (a Area) String() string {
	return fmt.Sprintf("%d,%d-%d,%d", a.TopLeft.X, a.TopLeft.Y, a.BottomRight.X, a.BottomRight.Y)
}
