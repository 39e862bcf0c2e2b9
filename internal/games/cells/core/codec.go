package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Version is the wire format version written by Encode and required by Decode.
const Version = "1"

// MaxCells caps width*height accepted by Decode.
const MaxCells = 1 << 16

var (
	sizeRe  = regexp.MustCompile(`^(\d+),(\d+)$`)
	areaRe  = regexp.MustCompile(`^(\d+),(\d+)-(\d+),(\d+)$`)
	cellsRe = regexp.MustCompile(`^(?:\d+(?:M[UDLR]|P|S[UDLR]|R|G[UDLR]|I|E|x))+$`)
	runRe   = regexp.MustCompile(`(\d+)(M[UDLR]|P|S[UDLR]|R|G[UDLR]|I|E|x)`)
)

// emptyToken is the wire token for an empty position.
const emptyToken = "x"

// DecodeError reports a malformed board string. Field names the subfield
// that failed: "fields", "version", "size", "build area" or "cells".
type DecodeError struct {
	Field string
	Text  string
	Err   error
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("invalid board %s %q", e.Field, e.Text)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Encode serializes the board as
// "<version>/<w>,<h>/<tlx>,<tly>-<brx>,<bry>/<rle-cells>".
// It panics if the result does not pass its own grammar check.
func Encode(b *Board) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s/%d,%d/%s/", Version, b.width, b.height, b.buildArea)

	run, count := "", 0
	flush := func() {
		if count > 0 {
			sb.WriteString(strconv.Itoa(count))
			sb.WriteString(run)
		}
	}
	for _, cell := range b.All() {
		tok := emptyToken
		if cell != nil {
			tok = cell.Token()
		}
		if tok == run {
			count++
			continue
		}
		flush()
		run, count = tok, 1
	}
	flush()

	out := sb.String()
	if err := Validate(out); err != nil {
		panic(fmt.Sprintf("core: encoded board failed validation: %v", err))
	}
	return out
}

// Validate checks a board string against the wire grammar without
// building a board.
func Validate(text string) error {
	_, err := parse(text)
	return err
}

// Decode parses a board string. Every unit of every run becomes a distinct
// cell instance. Cells are laid out row-major; a cell list shorter than
// width*height leaves the remaining positions empty.
//
// Encode(Decode(s)) == s holds only for canonical strings: Encode merges
// adjacent runs of the same token, drops zero-count runs, strips leading
// zeros and spells out trailing empties.
func Decode(text string) (*Board, error) {
	h, err := parse(text)
	if err != nil {
		return nil, err
	}

	b := NewBoard(h.width, h.height)
	b.SetBuildArea(h.area)
	pos := 0
	for _, r := range h.runs {
		for range r.count {
			if !r.empty {
				b.Put(r.cell, C(pos%h.width, pos/h.width))
			}
			pos++
		}
	}
	return b, nil
}

type cellRun struct {
	count int
	cell  Cell
	empty bool
}

type header struct {
	width, height int
	area          Area
	runs          []cellRun
}

func parse(text string) (header, error) {
	var h header

	fields := strings.Split(text, "/")
	if len(fields) != 4 {
		return h, &DecodeError{Field: "fields", Text: text,
			Err: fmt.Errorf("want 4 '/'-separated fields, got %d", len(fields))}
	}
	if fields[0] != Version {
		return h, &DecodeError{Field: "version", Text: fields[0],
			Err: fmt.Errorf("want %q", Version)}
	}

	m := sizeRe.FindStringSubmatch(fields[1])
	if m == nil {
		return h, &DecodeError{Field: "size", Text: fields[1]}
	}
	nums, err := atois(m[1:])
	if err != nil {
		return h, &DecodeError{Field: "size", Text: fields[1], Err: err}
	}
	h.width, h.height = nums[0], nums[1]
	if h.width == 0 || h.height == 0 {
		return h, &DecodeError{Field: "size", Text: fields[1], Err: fmt.Errorf("dimensions must be positive")}
	}
	if h.width > MaxCells || h.height > MaxCells || h.width*h.height > MaxCells {
		return h, &DecodeError{Field: "size", Text: fields[1], Err: fmt.Errorf("more than %d cells", MaxCells)}
	}

	m = areaRe.FindStringSubmatch(fields[2])
	if m == nil {
		return h, &DecodeError{Field: "build area", Text: fields[2]}
	}
	nums, err = atois(m[1:])
	if err != nil {
		return h, &DecodeError{Field: "build area", Text: fields[2], Err: err}
	}
	h.area = NewArea(C(nums[0], nums[1]), C(nums[2], nums[3]))

	if !cellsRe.MatchString(fields[3]) {
		return h, &DecodeError{Field: "cells", Text: fields[3]}
	}
	total := h.width * h.height
	seen := 0
	for _, rm := range runRe.FindAllStringSubmatch(fields[3], -1) {
		n, err := strconv.Atoi(rm[1])
		if err != nil || n > total-seen {
			return h, &DecodeError{Field: "cells", Text: fields[3],
				Err: fmt.Errorf("more than %d cells for a %dx%d board", total, h.width, h.height)}
		}
		seen += n
		r := cellRun{count: n}
		if rm[2] == emptyToken {
			r.empty = true
		} else {
			// The grammar already guarantees a well-formed token.
			r.cell, _ = ParseToken(rm[2])
		}
		h.runs = append(h.runs, r)
	}
	return h, nil
}

func atois(ss []string) ([]int, error) {
	out := make([]int, len(ss))
	for i, s := range ss {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
