package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-cells/internal/games/cells/core"
)

func TestEncode(t *testing.T) {
	b := core.NewBoard(4, 3)
	b.SetBuildArea(core.NewArea(core.C(1, 0), core.C(1, 2)))
	b.Put(core.NewCell(core.KindMover, core.DirRight), core.C(0, 0))
	b.Put(core.NewCell(core.KindMover, core.DirDown), core.C(1, 0))
	b.Put(core.NewCell(core.KindMover, core.DirDown), core.C(2, 0))
	b.Put(core.NewCell(core.KindEnemy, 0), core.C(2, 2))
	b.Put(core.NewCell(core.KindEnemy, 0), core.C(3, 2))

	if got, want := core.Encode(b), "1/4,3/1,0-1,2/1MR2MD7x2E"; got != want {
		t.Errorf("Encode() = %s, want %s", got, want)
	}
}

func TestEncodeEmptyBoard(t *testing.T) {
	if got, want := core.Encode(core.NewBoard(6, 6)), "1/6,6/0,0-0,0/36x"; got != want {
		t.Errorf("Encode() = %s, want %s", got, want)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	boards := []string{
		"1/4,3/1,0-1,2/1MR2MD7x2E",
		"1/6,6/0,0-0,1/9x1SU4x1SR1R1SD4x1SL14x",
		"1/10,3/0,0-3,2/12x1P1GR3P3E10x",
		"1/1,1/0,0-0,0/1I",
		"1/3,3/0,0-2,2/1GU1GR1GD1GL1SU1SR1SD1SL1E",
	}
	for _, text := range boards {
		t.Run(text, func(t *testing.T) {
			b, err := core.Decode(text)
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if got := core.Encode(b); got != text {
				t.Errorf("Encode(Decode()) = %s", got)
			}
			again, err := core.Decode(core.Encode(b))
			if err != nil {
				t.Fatal(err)
			}
			if !again.Equal(b) {
				t.Error("Decode(Encode(b)) differs from b")
			}
		})
	}
}

func TestDecodeLayout(t *testing.T) {
	b, err := core.Decode("1/4,3/1,0-1,2/1MR2MD7x2E")
	if err != nil {
		t.Fatal(err)
	}
	if b.Width() != 4 || b.Height() != 3 {
		t.Errorf("size = %dx%d, want 4x3", b.Width(), b.Height())
	}
	if got, want := b.BuildArea(), core.NewArea(core.C(1, 0), core.C(1, 2)); got != want {
		t.Errorf("BuildArea() = %v, want %v", got, want)
	}
	checks := map[core.Coord]string{
		core.C(0, 0): "MR",
		core.C(1, 0): "MD",
		core.C(2, 0): "MD",
		core.C(3, 0): "",
		core.C(1, 2): "",
		core.C(2, 2): "E",
		core.C(3, 2): "E",
	}
	for c, want := range checks {
		cell := b.CellAt(c)
		got := ""
		if cell != nil {
			got = cell.Token()
		}
		if got != want {
			t.Errorf("CellAt(%v) = %q, want %q", c, got, want)
		}
	}
}

func TestDecodeDistinctInstances(t *testing.T) {
	b, err := core.Decode("1/3,1/0,0-2,0/3P")
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[core.CellID]core.Coord)
	for x := 0; x < 3; x++ {
		c := core.C(x, 0)
		id := b.At(c)
		if id == core.NoCell {
			t.Fatalf("At(%v) is empty", c)
		}
		if prev, dup := seen[id]; dup {
			t.Fatalf("cells at %v and %v share handle %d", prev, c, id)
		}
		seen[id] = c
		if at, ok := b.Locate(id); !ok || at != c {
			t.Errorf("Locate(%d) = %v, %v; want %v", id, at, ok, c)
		}
	}

	b.CellAt(core.C(0, 0)).Kind = core.KindEnemy
	if b.CellAt(core.C(1, 0)).Kind != core.KindPush {
		t.Error("mutating one decoded cell changed another")
	}
}

func TestDecodeShortCellList(t *testing.T) {
	b, err := core.Decode("1/3,2/0,0-0,0/1P")
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if got, want := core.Encode(b), "1/3,2/0,0-0,0/1P5x"; got != want {
		t.Errorf("Encode() = %s, want %s", got, want)
	}
}

func TestDecodeNormalizesRuns(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"adjacent empties merge", "1/3,1/0,0-0,0/1x1x1P", "1/3,1/0,0-0,0/2x1P"},
		{"adjacent empties fill board", "1/2,1/0,0-0,0/1x1x", "1/2,1/0,0-0,0/2x"},
		{"short list padded", "1/2,2/0,0-0,0/1x", "1/2,2/0,0-0,0/4x"},
		{"zero-count run dropped", "1/2,1/0,0-0,0/0P2x", "1/2,1/0,0-0,0/2x"},
		{"leading zero stripped", "1/2,1/0,0-0,0/01x1P", "1/2,1/0,0-0,0/1x1P"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := core.Decode(tt.in)
			if err != nil {
				t.Fatalf("Decode(%q) error: %v", tt.in, err)
			}
			if got := core.Encode(b); got != tt.want {
				t.Errorf("Encode() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		field string
	}{
		{"empty", "", "fields"},
		{"too few fields", "1/3,3/0,0-0,0", "fields"},
		{"too many fields", "1/3,3/0,0-0,0/9x/", "fields"},
		{"version", "2/3,3/0,0-0,0/9x", "version"},
		{"size letters", "1/a,3/0,0-0,0/9x", "size"},
		{"size zero", "1/0,3/0,0-0,0/1x", "size"},
		{"size huge", "1/100000,100000/0,0-0,0/1x", "size"},
		{"area", "1/3,3/0,0/9x", "build area"},
		{"area negative", "1/3,3/-1,0-0,0/9x", "build area"},
		{"empty cells", "1/3,3/0,0-0,0/", "cells"},
		{"unknown kind", "1/3,3/0,0-0,0/1Q8x", "cells"},
		{"missing direction", "1/3,3/0,0-0,0/1M8x", "cells"},
		{"direction on push", "1/3,3/0,0-0,0/1PU8x", "cells"},
		{"missing count", "1/3,3/0,0-0,0/P8x", "cells"},
		{"too many cells", "1/3,3/0,0-0,0/10x", "cells"},
		{"count overflow", "1/3,3/0,0-0,0/99999999999999999999999x", "cells"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := core.Decode(tt.text)
			if err == nil {
				t.Fatalf("Decode(%q) = %v, want error", tt.text, core.Encode(b))
			}
			var de *core.DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("error %v is not a *DecodeError", err)
			}
			if de.Field != tt.field {
				t.Errorf("Field = %q, want %q", de.Field, tt.field)
			}
			if core.Validate(tt.text) == nil {
				t.Error("Validate() accepted the same text")
			}
		})
	}
}

func TestParseToken(t *testing.T) {
	tests := []struct {
		token   string
		want    core.Cell
		wantErr bool
	}{
		{"MR", core.NewCell(core.KindMover, core.DirRight), false},
		{"SU", core.NewCell(core.KindSlider, core.DirUp), false},
		{"GL", core.NewCell(core.KindGenerator, core.DirLeft), false},
		{"P", core.NewCell(core.KindPush, 0), false},
		{"R", core.NewCell(core.KindRotator, 0), false},
		{"I", core.NewCell(core.KindImmobile, 0), false},
		{"E", core.NewCell(core.KindEnemy, 0), false},
		{"", core.Cell{}, true},
		{"M", core.Cell{}, true},
		{"MX", core.Cell{}, true},
		{"RU", core.Cell{}, true},
		{"Z", core.Cell{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := core.ParseToken(tt.token)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseToken(%q) error = %v, wantErr %v", tt.token, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseToken(%q) = %+v, want %+v", tt.token, got, tt.want)
			}
			if !tt.wantErr && got.Token() != tt.token {
				t.Errorf("Token() = %q, want %q", got.Token(), tt.token)
			}
		})
	}
}
