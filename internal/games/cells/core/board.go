package core

import (
	"fmt"
	"iter"
)

// CellID is a stable handle to a cell stored in a Board's arena.
type CellID uint32

// NoCell is the zero handle. A grid position holding NoCell is empty.
const NoCell CellID = 0

// Board is a fixed-size grid of cells.
//
// Cells live in an arena addressed by CellID. The grid maps coordinates to
// handles and a reverse index maps live handles to their coordinate. A cell
// is alive while its handle is present in the reverse index.
type Board struct {
	width, height int

	grid  []CellID // row-major, index = y*width + x
	cells map[CellID]*Cell
	where map[CellID]Coord

	nextID    CellID
	buildArea Area
}

// NewBoard creates an empty board. The build area defaults to (0,0)-(0,0).
// It panics if the size is not positive or exceeds MaxCells.
func NewBoard(width, height int) *Board {
	if width <= 0 || height <= 0 || width > MaxCells || height > MaxCells || width*height > MaxCells {
		panic(fmt.Sprintf("core: invalid board size %dx%d", width, height))
	}
	return &Board{
		width:  width,
		height: height,
		grid:   make([]CellID, width*height),
		cells:  make(map[CellID]*Cell),
		where:  make(map[CellID]Coord),
	}
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// Contains reports whether the coordinate lies on the board.
func (b *Board) Contains(c Coord) bool {
	return c.X >= 0 && c.X < b.width && c.Y >= 0 && c.Y < b.height
}

func (b *Board) index(c Coord) int {
	if !b.Contains(c) {
		panic(fmt.Sprintf("core: coordinate %s outside %dx%d board", c, b.width, b.height))
	}
	return c.Y*b.width + c.X
}

// Alloc stores a new cell instance in the arena without placing it.
// The instance stays dead until it is written to the grid with Set.
func (b *Board) Alloc(cell Cell) CellID {
	b.nextID++
	c := cell
	b.cells[b.nextID] = &c
	return b.nextID
}

// Put allocates a fresh instance of cell and writes it at c.
func (b *Board) Put(cell Cell, c Coord) CellID {
	id := b.Alloc(cell)
	b.Set(id, c)
	return id
}

// At returns the handle stored at c, or NoCell.
// It panics if c is off the board.
func (b *Board) At(c Coord) CellID {
	return b.grid[b.index(c)]
}

// CellAt returns the cell stored at c, or nil if the position is empty.
// It panics if c is off the board.
func (b *Board) CellAt(c Coord) *Cell {
	id := b.At(c)
	if id == NoCell {
		return nil
	}
	return b.cells[id]
}

// Cell returns the cell for a handle, or nil if the handle is unknown.
func (b *Board) Cell(id CellID) *Cell {
	return b.cells[id]
}

// Set writes a handle (or NoCell to clear) at c.
//
// Clearing removes the previous occupant from the reverse index only when
// its indexed coordinate is still c, so a move written as
// "set new position, then clear old position" keeps the mover alive.
// Overwriting a different occupant removes that occupant under the same rule.
func (b *Board) Set(id CellID, c Coord) {
	i := b.index(c)
	prev := b.grid[i]

	if prev != NoCell && prev != id {
		if at, ok := b.where[prev]; ok && at == c {
			delete(b.where, prev)
		}
	}
	b.grid[i] = id
	if id != NoCell {
		b.where[id] = c
	}
}

// Locate returns the coordinate of a live cell.
func (b *Board) Locate(id CellID) (Coord, bool) {
	c, ok := b.where[id]
	return c, ok
}

// Alive reports whether the cell is currently on the board.
func (b *Board) Alive(id CellID) bool {
	_, ok := b.where[id]
	return ok
}

// Neighbor returns the coordinate one step from c in direction d.
// ok is false when that coordinate is off the board.
func (b *Board) Neighbor(c Coord, d Dir) (Coord, bool) {
	n := c.Step(d)
	return n, b.Contains(n)
}

// All yields every coordinate with its cell (nil when empty) in row-major
// order: rows top to bottom, columns left to right.
func (b *Board) All() iter.Seq2[Coord, *Cell] {
	return func(yield func(Coord, *Cell) bool) {
		for y := 0; y < b.height; y++ {
			for x := 0; x < b.width; x++ {
				var cell *Cell
				if id := b.grid[y*b.width+x]; id != NoCell {
					cell = b.cells[id]
				}
				if !yield(C(x, y), cell) {
					return
				}
			}
		}
	}
}

// OfKind returns the handles of all cells of the given kind in activation
// order: rows top to bottom, columns right to left.
func (b *Board) OfKind(kind Kind) []CellID {
	var ids []CellID
	for y := 0; y < b.height; y++ {
		for x := b.width - 1; x >= 0; x-- {
			id := b.grid[y*b.width+x]
			if id != NoCell && b.cells[id].Kind == kind {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// Count returns the number of cells of the given kind on the board.
func (b *Board) Count(kind Kind) int {
	n := 0
	for _, id := range b.grid {
		if id != NoCell && b.cells[id].Kind == kind {
			n++
		}
	}
	return n
}

// Len returns the number of occupied positions.
func (b *Board) Len() int {
	n := 0
	for _, id := range b.grid {
		if id != NoCell {
			n++
		}
	}
	return n
}

// BuildArea returns the editable sub-region.
func (b *Board) BuildArea() Area { return b.buildArea }

// SetBuildArea replaces the editable sub-region. It is not checked against
// the board bounds.
func (b *Board) SetBuildArea(a Area) { b.buildArea = a }

// Clone returns a deep copy. Handles are preserved, so a CellID valid on b
// refers to the corresponding cell on the clone.
func (b *Board) Clone() *Board {
	out := &Board{
		width:     b.width,
		height:    b.height,
		grid:      make([]CellID, len(b.grid)),
		cells:     make(map[CellID]*Cell, len(b.cells)),
		where:     make(map[CellID]Coord, len(b.where)),
		nextID:    b.nextID,
		buildArea: b.buildArea,
	}
	copy(out.grid, b.grid)
	for id, cell := range b.cells {
		c := *cell
		out.cells[id] = &c
	}
	for id, c := range b.where {
		out.where[id] = c
	}
	return out
}

// Equal reports whether both boards have the same size, build area and
// cell at every coordinate. Handles and spawn flags are not compared.
func (b *Board) Equal(o *Board) bool {
	if b.width != o.width || b.height != o.height || b.buildArea != o.buildArea {
		return false
	}
	for i := range b.grid {
		x, y := b.grid[i], o.grid[i]
		if (x == NoCell) != (y == NoCell) {
			return false
		}
		if x == NoCell {
			continue
		}
		if b.cells[x].Token() != o.cells[y].Token() {
			return false
		}
	}
	return true
}

// Prune drops arena entries for cells that are no longer alive.
func (b *Board) Prune() {
	for id := range b.cells {
		if _, ok := b.where[id]; !ok {
			delete(b.cells, id)
		}
	}
}
