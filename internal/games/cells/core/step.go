package core

import (
	"fmt"
	"strings"
)

// Status is the outcome of a single tick.
type Status uint8

const (
	// Ongoing means the board changed and at least one Enemy remains.
	Ongoing Status = iota
	// Blocked means the tick left the board unchanged.
	Blocked
	// Completed means the board changed and no Enemy remains.
	Completed
)

// String returns the string representation of a status.
func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Blocked:
		return "blocked"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Phase is one pass of a tick over all cells of a single kind.
type Phase uint8

const (
	PhaseGenerate Phase = iota
	PhaseRotate
	PhaseMove
)

// String returns the config name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseGenerate:
		return "generate"
	case PhaseRotate:
		return "rotate"
	case PhaseMove:
		return "move"
	default:
		return "unknown"
	}
}

// DefaultPhases is the phase order used by Advance.
var DefaultPhases = []Phase{PhaseGenerate, PhaseRotate, PhaseMove}

// ParsePhases converts phase names into an order. Every phase must appear
// exactly once.
func ParsePhases(names []string) ([]Phase, error) {
	if len(names) != 3 {
		return nil, fmt.Errorf("want 3 phases, got %d", len(names))
	}
	seen := make(map[Phase]bool, 3)
	phases := make([]Phase, 0, 3)
	for _, name := range names {
		var p Phase
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "generate":
			p = PhaseGenerate
		case "rotate":
			p = PhaseRotate
		case "move":
			p = PhaseMove
		default:
			return nil, fmt.Errorf("unknown phase %q", name)
		}
		if seen[p] {
			return nil, fmt.Errorf("phase %q listed twice", name)
		}
		seen[p] = true
		phases = append(phases, p)
	}
	return phases, nil
}

// Stepper advances boards using a fixed phase order.
// The zero value uses DefaultPhases.
type Stepper struct {
	Phases []Phase
}

// Advance runs one tick with the default phase order.
func Advance(b *Board) Status {
	return Stepper{}.Advance(b)
}

// Advance mutates b by exactly one tick and reports the resulting status.
func (s Stepper) Advance(b *Board) Status {
	before := Encode(b)

	phases := s.Phases
	if len(phases) == 0 {
		phases = DefaultPhases
	}
	for _, p := range phases {
		switch p {
		case PhaseGenerate:
			for _, id := range b.OfKind(KindGenerator) {
				if b.Alive(id) && !b.Cell(id).Spawned {
					generate(b, id)
				}
			}
		case PhaseRotate:
			for _, id := range b.OfKind(KindRotator) {
				if b.Alive(id) && !b.Cell(id).Spawned {
					rotate(b, id)
				}
			}
		case PhaseMove:
			for _, id := range b.OfKind(KindMover) {
				if b.Alive(id) && !b.Cell(id).Spawned {
					move(b, id)
				}
			}
		}
	}

	for id := range b.where {
		b.cells[id].Spawned = false
	}
	b.Prune()

	switch {
	case Encode(b) == before:
		return Blocked
	case b.Count(KindEnemy) == 0:
		return Completed
	default:
		return Ongoing
	}
}

// Run advances b until the status is no longer Ongoing or maxTicks ticks
// have run. A non-positive maxTicks means no limit. It returns the last
// status and the number of ticks performed.
func (s Stepper) Run(b *Board, maxTicks int) (Status, int) {
	return s.RunEach(b, maxTicks, nil)
}

// RunEach is Run with a callback after every tick. fn may be nil.
func (s Stepper) RunEach(b *Board, maxTicks int, fn func(tick int, status Status)) (Status, int) {
	status, n := Ongoing, 0
	for status == Ongoing && (maxTicks <= 0 || n < maxTicks) {
		status = s.Advance(b)
		n++
		if fn != nil {
			fn(n, status)
		}
	}
	return status, n
}

// CanPush reports whether the run of cells beyond from in direction d can
// shift one step, vacating the position next to from.
func CanPush(b *Board, from Coord, d Dir) bool {
	at, ok := b.Neighbor(from, d)
	for ok {
		cell := b.CellAt(at)
		switch {
		case cell == nil:
			return true
		case cell.Kind == KindEnemy:
			return true
		case cell.Kind == KindImmobile:
			return false
		case cell.Kind == KindSlider && cell.Dir != d && cell.Dir != d.Opposite():
			return false
		}
		at, ok = b.Neighbor(at, d)
	}
	return false
}

// PushAll shifts the chain of cells beyond from one step in direction d
// and leaves the position next to from empty. A chain that ends at an
// Enemy loses its last cell together with the Enemy. Callers must check
// CanPush first.
func PushAll(b *Board, from Coord, d Dir) {
	first, ok := b.Neighbor(from, d)
	if !ok {
		return
	}

	var chain []Coord
	at := first
	for ok {
		cell := b.CellAt(at)
		if cell == nil || cell.Kind == KindEnemy {
			break
		}
		chain = append(chain, at)
		at, ok = b.Neighbor(at, d)
	}
	if len(chain) == 0 {
		return
	}

	// Far end first so every destination is free or an Enemy.
	for i := len(chain) - 1; i >= 0; i-- {
		Place(b, b.At(chain[i]), chain[i].Step(d))
	}
	b.Set(NoCell, first)
}

// Place writes id at c unless c holds an Enemy, in which case the Enemy is
// removed and id is discarded.
func Place(b *Board, id CellID, c Coord) {
	if target := b.CellAt(c); target != nil && target.Kind == KindEnemy {
		b.Set(NoCell, c)
		return
	}
	b.Set(id, c)
}

func generate(b *Board, id CellID) {
	at, _ := b.Locate(id)
	d := b.Cell(id).Dir

	behind, ok := b.Neighbor(at, d.Opposite())
	if !ok {
		return
	}
	source := b.CellAt(behind)
	if source == nil || source.Kind == KindEnemy {
		return
	}
	front, ok := b.Neighbor(at, d)
	if !ok || !CanPush(b, at, d) {
		return
	}

	PushAll(b, at, d)
	copied := *source
	copied.Spawned = true
	Place(b, b.Alloc(copied), front)
}

func rotate(b *Board, id CellID) {
	at, _ := b.Locate(id)
	for _, d := range Dirs {
		n, ok := b.Neighbor(at, d)
		if !ok {
			continue
		}
		if cell := b.CellAt(n); cell != nil && cell.Kind.HasDirection() {
			cell.Dir = cell.Dir.Clockwise()
		}
	}
}

func move(b *Board, id CellID) {
	at, _ := b.Locate(id)
	d := b.Cell(id).Dir

	front, ok := b.Neighbor(at, d)
	if !ok || !CanPush(b, at, d) {
		return
	}
	PushAll(b, at, d)
	Place(b, id, front)
	b.Set(NoCell, at)
}
