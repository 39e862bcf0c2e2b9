package core

import "strings"

var arrows = [4]byte{'^', '>', 'v', '<'}

// Glyph returns a two-character picture of a cell. nil renders as "..".
func Glyph(cell *Cell) string {
	if cell == nil {
		return ".."
	}
	switch cell.Kind {
	case KindMover:
		return string([]byte{'M', arrows[cell.Dir]})
	case KindSlider:
		return string([]byte{'S', arrows[cell.Dir]})
	case KindGenerator:
		return string([]byte{'G', arrows[cell.Dir]})
	case KindPush:
		return "[]"
	case KindRotator:
		return "()"
	case KindImmobile:
		return "##"
	case KindEnemy:
		return "XX"
	}
	return "??"
}

// RenderASCII draws the board one row per line, cells separated by spaces.
func RenderASCII(b *Board) string {
	var sb strings.Builder
	for c, cell := range b.All() {
		if c.X > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(Glyph(cell))
		if c.X == b.Width()-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
