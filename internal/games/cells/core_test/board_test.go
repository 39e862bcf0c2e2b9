package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-cells/internal/games/cells/core"
)

func TestBoardContains(t *testing.T) {
	b := core.NewBoard(2, 3)
	tests := []struct {
		c    core.Coord
		want bool
	}{
		{core.C(-1, 2), false},
		{core.C(1, -2), false},
		{core.C(0, 0), true},
		{core.C(2, 3), false},
		{core.C(2, 2), false},
		{core.C(1, 3), false},
		{core.C(1, 2), true},
	}
	for _, tt := range tests {
		if got := b.Contains(tt.c); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestBoardAllRowMajor(t *testing.T) {
	b := core.NewBoard(2, 3)
	want := []core.Coord{core.C(0, 0), core.C(1, 0), core.C(0, 1), core.C(1, 1), core.C(0, 2), core.C(1, 2)}
	i := 0
	for c := range b.All() {
		if i >= len(want) {
			t.Fatalf("All() yielded more than %d coordinates", len(want))
		}
		if c != want[i] {
			t.Errorf("All()[%d] = %v, want %v", i, c, want[i])
		}
		i++
	}
	if i != len(want) {
		t.Errorf("All() yielded %d coordinates, want %d", i, len(want))
	}
}

func TestBoardOfKindOrder(t *testing.T) {
	b := core.NewBoard(3, 2)
	r1 := b.Put(core.NewCell(core.KindRotator, 0), core.C(2, 0))
	r2 := b.Put(core.NewCell(core.KindRotator, 0), core.C(0, 0))
	r3 := b.Put(core.NewCell(core.KindRotator, 0), core.C(1, 1))
	b.Put(core.NewCell(core.KindPush, 0), core.C(1, 0))

	got := b.OfKind(core.KindRotator)
	want := []core.CellID{r1, r2, r3}
	if len(got) != len(want) {
		t.Fatalf("OfKind() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("OfKind()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	if n := b.Count(core.KindPush); n != 1 {
		t.Errorf("Count(Push) = %d, want 1", n)
	}
}

func TestBoardLocate(t *testing.T) {
	b := core.NewBoard(2, 2)
	mover := b.Put(core.NewCell(core.KindMover, core.DirUp), core.C(0, 0))
	other := b.Alloc(core.NewCell(core.KindMover, core.DirUp))

	if _, ok := b.Locate(other); ok {
		t.Error("Locate() found a cell that was never placed")
	}
	if at, ok := b.Locate(mover); !ok || at != core.C(0, 0) {
		t.Errorf("Locate() = %v, %v; want (0,0)", at, ok)
	}
}

func TestBoardSetNoneKeepsMovedCell(t *testing.T) {
	b := core.NewBoard(3, 1)
	id := b.Put(core.NewCell(core.KindPush, 0), core.C(0, 0))

	b.Set(id, core.C(1, 0))
	b.Set(core.NoCell, core.C(0, 0))

	if at, ok := b.Locate(id); !ok || at != core.C(1, 0) {
		t.Errorf("Locate() = %v, %v; want (1,0)", at, ok)
	}
	if b.At(core.C(0, 0)) != core.NoCell {
		t.Error("old position not cleared")
	}
}

func TestBoardSetNoneRemovesCell(t *testing.T) {
	b := core.NewBoard(2, 2)
	id := b.Put(core.NewCell(core.KindRotator, 0), core.C(1, 1))
	b.Set(core.NoCell, core.C(1, 1))

	if b.Alive(id) {
		t.Error("cleared cell is still alive")
	}
	if got := b.OfKind(core.KindRotator); len(got) != 0 {
		t.Errorf("OfKind() = %v, want none", got)
	}
	// Clearing an empty position is a no-op.
	b.Set(core.NoCell, core.C(1, 1))
}

func TestBoardOverwrite(t *testing.T) {
	b := core.NewBoard(1, 2)
	first := b.Put(core.NewCell(core.KindMover, core.DirUp), core.C(0, 0))
	b.Put(core.NewCell(core.KindMover, core.DirDown), core.C(0, 1))
	second := b.Put(core.NewCell(core.KindPush, 0), core.C(0, 0))

	if got := b.CellAt(core.C(0, 0)); got.Kind != core.KindPush {
		t.Errorf("CellAt(0,0) = %v, want P", got)
	}
	if b.Alive(first) {
		t.Error("overwritten cell is still alive")
	}
	if !b.Alive(second) {
		t.Error("new cell is not alive")
	}
}

func TestBoardBuildArea(t *testing.T) {
	b := core.NewBoard(4, 4)
	if got := b.BuildArea(); got != core.NewArea(core.C(0, 0), core.C(0, 0)) {
		t.Errorf("default BuildArea() = %v", got)
	}
	b.SetBuildArea(core.NewArea(core.C(1, 1), core.C(3, 3)))
	a := b.BuildArea()
	if a.TopLeft != core.C(1, 1) || a.BottomRight != core.C(3, 3) {
		t.Errorf("BuildArea() = %v", a)
	}
	if !a.Contains(core.C(3, 1)) || a.Contains(core.C(0, 2)) {
		t.Error("Area.Contains() mismatch")
	}
	if got := a.String(); got != "1,1-3,3" {
		t.Errorf("Area.String() = %q", got)
	}
}

func TestBoardClone(t *testing.T) {
	b, err := core.Decode("1/3,1/0,0-2,0/1MR1P1x")
	if err != nil {
		t.Fatal(err)
	}
	c := b.Clone()
	if !c.Equal(b) {
		t.Fatal("Clone() not equal to original")
	}
	c.CellAt(core.C(0, 0)).Dir = core.DirLeft
	if b.CellAt(core.C(0, 0)).Dir != core.DirRight {
		t.Error("Clone() shares cells with the original")
	}
	if c.Equal(b) {
		t.Error("Equal() ignored a direction change")
	}
}

func TestBoardAtPanicsOffBoard(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("At() off board did not panic")
		}
	}()
	core.NewBoard(2, 2).At(core.C(2, 0))
}

func TestDirRotation(t *testing.T) {
	d := core.DirUp
	want := []core.Dir{core.DirRight, core.DirDown, core.DirLeft, core.DirUp}
	for _, w := range want {
		d = d.Clockwise()
		if d != w {
			t.Errorf("Clockwise() = %v, want %v", d, w)
		}
	}
	if core.DirLeft.Opposite() != core.DirRight || core.DirUp.Opposite() != core.DirDown {
		t.Error("Opposite() mismatch")
	}
}

func TestRenderASCII(t *testing.T) {
	b, err := core.Decode("1/3,2/0,0-0,0/1MR1P1E1R1I1GU")
	if err != nil {
		t.Fatal(err)
	}
	want := "M> [] XX\n() ## G^\n"
	if got := core.RenderASCII(b); got != want {
		t.Errorf("RenderASCII() =\n%s\nwant\n%s", got, want)
	}
}
