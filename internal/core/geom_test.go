package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 5, 5)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 12, 12, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right exclusive", 15, 15, false},
		{"last inside", 14, 14, true},
		{"left", 9, 12, false},
		{"above", 12, 9, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tt.x, tt.y, got, tt.expected)
			}
		})
	}
}

func TestRectInset(t *testing.T) {
	got := NewRect(0, 0, 10, 6).Inset(1)
	if got != NewRect(1, 1, 8, 4) {
		t.Errorf("Inset(1) = %+v", got)
	}
	if got := NewRect(0, 0, 2, 2).Inset(3); got.W != 0 || got.H != 0 {
		t.Errorf("Inset(3) = %+v, want zero size", got)
	}
}

func TestCentered(t *testing.T) {
	got := Centered(NewRect(0, 0, 20, 10), 6, 4)
	if got != NewRect(7, 3, 6, 4) {
		t.Errorf("Centered() = %+v", got)
	}
	big := Centered(NewRect(2, 2, 5, 5), 30, 30)
	if big.X != 2 || big.Y != 2 {
		t.Errorf("oversized content should pin to top-left, got %+v", big)
	}
}

func TestClampWrap(t *testing.T) {
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"clamp low", Clamp(-5, 0, 10), 0},
		{"clamp high", Clamp(15, 0, 10), 10},
		{"clamp inside", Clamp(5, 0, 10), 5},
		{"wrap negative", Wrap(-1, 4), 3},
		{"wrap over", Wrap(9, 4), 1},
		{"wrap empty", Wrap(3, 0), 0},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}
