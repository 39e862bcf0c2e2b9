// Package core implements the cells puzzle engine: the board, its text
// encoding and the tick algorithm. It is UI-agnostic and deterministic.
package core

import "fmt"

// Dir is the facing of a directional cell.
// Values are ordered clockwise so rotation is a single increment.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// Dirs lists all directions in clockwise order starting from Up.
var Dirs = [4]Dir{DirUp, DirRight, DirDown, DirLeft}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Code returns the single-character wire code of the direction.
func (d Dir) Code() byte {
	switch d {
	case DirUp:
		return 'U'
	case DirRight:
		return 'R'
	case DirDown:
		return 'D'
	default:
		return 'L'
	}
}

// ParseDir converts a wire code back to a direction.
func ParseDir(code byte) (Dir, bool) {
	switch code {
	case 'U':
		return DirUp, true
	case 'R':
		return DirRight, true
	case 'D':
		return DirDown, true
	case 'L':
		return DirLeft, true
	}
	return 0, false
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
// Up decreases Y, Down increases Y.
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the opposite direction.
func (d Dir) Opposite() Dir {
	return (d + 2) % 4
}

// Clockwise returns the direction after a quarter turn clockwise.
func (d Dir) Clockwise() Dir {
	return (d + 1) % 4
}

// Kind is the closed set of cell variants.
type Kind uint8

const (
	KindMover     Kind = iota // advances each tick, pushing what is ahead
	KindPush                  // inert, can be pushed
	KindSlider                // pushable only along its own axis
	KindRotator               // turns its four neighbours clockwise
	KindGenerator             // copies the cell behind it to the front
	KindImmobile              // blocks every push chain
	KindEnemy                 // destroyed together with whatever hits it
)

// Kinds lists every variant in declaration order.
var Kinds = [...]Kind{KindMover, KindPush, KindSlider, KindRotator, KindGenerator, KindImmobile, KindEnemy}

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case KindMover:
		return "Mover"
	case KindPush:
		return "Push"
	case KindSlider:
		return "Slider"
	case KindRotator:
		return "Rotator"
	case KindGenerator:
		return "Generator"
	case KindImmobile:
		return "Immobile"
	case KindEnemy:
		return "Enemy"
	default:
		return "Unknown"
	}
}

// Code returns the single-character wire code of the kind.
func (k Kind) Code() byte {
	switch k {
	case KindMover:
		return 'M'
	case KindPush:
		return 'P'
	case KindSlider:
		return 'S'
	case KindRotator:
		return 'R'
	case KindGenerator:
		return 'G'
	case KindImmobile:
		return 'I'
	default:
		return 'E'
	}
}

// HasDirection reports whether cells of this kind carry a facing.
func (k Kind) HasDirection() bool {
	switch k {
	case KindMover, KindSlider, KindGenerator:
		return true
	default:
		return false
	}
}

// ParseKind converts a wire code back to a kind.
func ParseKind(code byte) (Kind, bool) {
	for _, k := range Kinds {
		if k.Code() == code {
			return k, true
		}
	}
	return 0, false
}

// Cell is a single actor on the board.
// Dir is meaningful only when Kind.HasDirection is true.
type Cell struct {
	Kind Kind
	Dir  Dir

	// Spawned is set on cells created by a Generator during the current
	// tick and cleared when the tick ends. Spawned cells do not act.
	Spawned bool
}

// NewCell returns a cell of the given kind. The direction is ignored for
// kinds without a facing.
func NewCell(kind Kind, dir Dir) Cell {
	if !kind.HasDirection() {
		dir = 0
	}
	return Cell{Kind: kind, Dir: dir}
}

// Token returns the canonical text form of the cell, e.g. "MR" or "E".
func (c Cell) Token() string {
	if c.Kind.HasDirection() {
		return string([]byte{c.Kind.Code(), c.Dir.Code()})
	}
	return string(c.Kind.Code())
}

// String implements fmt.Stringer.
func (c Cell) String() string {
	return c.Token()
}

// ParseToken parses a single cell token such as "MR", "P" or "GU".
func ParseToken(token string) (Cell, error) {
	if token == "" {
		return Cell{}, fmt.Errorf("empty cell token")
	}
	kind, ok := ParseKind(token[0])
	if !ok {
		return Cell{}, fmt.Errorf("unknown cell type %q", token[:1])
	}
	if !kind.HasDirection() {
		if len(token) != 1 {
			return Cell{}, fmt.Errorf("cell %q takes no direction", token)
		}
		return NewCell(kind, 0), nil
	}
	if len(token) != 2 {
		return Cell{}, fmt.Errorf("cell %q needs exactly one direction", token)
	}
	dir, ok := ParseDir(token[1])
	if !ok {
		return Cell{}, fmt.Errorf("unknown direction %q in cell %q", token[1:], token)
	}
	return NewCell(kind, dir), nil
}
