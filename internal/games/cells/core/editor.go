package core

import "errors"

// Editor errors. Operations that return one of these leave the board unchanged.
var (
	ErrOutsideBuildArea = errors.New("cannot move cells outside the build area")
	ErrEmptySource      = errors.New("cannot move empty cells")
	ErrOccupied         = errors.New("cannot move cell on top of another cell")
	ErrOutOfBounds      = errors.New("coordinate is off the board")
)

// MoveWithinBuildArea moves the cell at from to the empty position to.
// Both positions must lie inside the build area and on the board.
func MoveWithinBuildArea(b *Board, from, to Coord) error {
	area := b.BuildArea()
	if !area.Contains(from) || !area.Contains(to) {
		return ErrOutsideBuildArea
	}
	return Move(b, from, to)
}

// Move moves the cell at from to the empty position to, ignoring the
// build area.
func Move(b *Board, from, to Coord) error {
	if !b.Contains(from) || !b.Contains(to) {
		return ErrOutOfBounds
	}
	id := b.At(from)
	if id == NoCell {
		return ErrEmptySource
	}
	if b.At(to) != NoCell {
		return ErrOccupied
	}
	b.Set(id, to)
	b.Set(NoCell, from)
	return nil
}

// PutCell writes a fresh instance of cell at c, replacing any occupant.
func PutCell(b *Board, c Coord, cell Cell) (CellID, error) {
	if !b.Contains(c) {
		return NoCell, ErrOutOfBounds
	}
	return b.Put(cell, c), nil
}

// RemoveCell clears c. Clearing an empty position is a no-op.
func RemoveCell(b *Board, c Coord) error {
	if !b.Contains(c) {
		return ErrOutOfBounds
	}
	b.Set(NoCell, c)
	b.Prune()
	return nil
}

// RotateCell turns the cell at c a quarter clockwise. It reports false if
// there is no directional cell at c.
func RotateCell(b *Board, c Coord) (bool, error) {
	if !b.Contains(c) {
		return false, ErrOutOfBounds
	}
	cell := b.CellAt(c)
	if cell == nil || !cell.Kind.HasDirection() {
		return false, nil
	}
	cell.Dir = cell.Dir.Clockwise()
	return true, nil
}

// CycleCell replaces the cell at c with the next kind in declaration order,
// keeping its facing. An empty position becomes a Mover and an Enemy
// becomes empty.
func CycleCell(b *Board, c Coord) error {
	if !b.Contains(c) {
		return ErrOutOfBounds
	}
	cur := b.CellAt(c)
	switch {
	case cur == nil:
		b.Put(NewCell(KindMover, DirRight), c)
	case cur.Kind == KindEnemy:
		b.Set(NoCell, c)
	default:
		dir := cur.Dir
		if !cur.Kind.HasDirection() {
			dir = DirRight
		}
		b.Put(NewCell(cur.Kind+1, dir), c)
	}
	b.Prune()
	return nil
}
