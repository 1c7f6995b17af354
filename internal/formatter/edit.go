package formatter

import (
	"math"
	"slices"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// Position is a zero-based line and UTF-16 character offset, as used by LSP.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a half-open span between two positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// TextEdit replaces the text in Range with NewText.
type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

// unbounded covers any document before clamping.
var unbounded = Range{
	Start: Position{Line: 0, Character: 0},
	End:   Position{Line: math.MaxInt, Character: math.MaxInt},
}

// FullRange returns the range spanning all of text.
func FullRange(text string) Range {
	return Clamp(text, unbounded)
}

// Clamp limits r to the bounds of text. Lines past the end snap to the end of
// the last line and characters past a line's end snap to that line's end.
func Clamp(text string, r Range) Range {
	starts := lineStarts(text)
	return Range{
		Start: clampPosition(text, starts, r.Start),
		End:   clampPosition(text, starts, r.End),
	}
}

func clampPosition(text string, starts []int, p Position) Position {
	last := len(starts) - 1
	if p.Line < 0 {
		return Position{}
	}
	if p.Line > last {
		return Position{Line: last, Character: utf16Len(lineText(text, starts, last))}
	}
	n := utf16Len(lineText(text, starts, p.Line))
	c := max(0, min(p.Character, n))
	return Position{Line: p.Line, Character: c}
}

// Apply returns text with edits applied. Edits must not overlap.
func Apply(text string, edits []TextEdit) (string, error) {
	if len(edits) == 0 {
		return text, nil
	}

	type span struct {
		start, end int
		newText    string
	}

	starts := lineStarts(text)
	spans := make([]span, 0, len(edits))
	for _, e := range edits {
		r := Clamp(text, e.Range)
		s := offset(text, starts, r.Start)
		end := offset(text, starts, r.End)
		if end < s {
			return "", errors.Newf("edit range end %v precedes start %v", r.End, r.Start)
		}
		spans = append(spans, span{start: s, end: end, newText: e.NewText})
	}

	slices.SortFunc(spans, func(a, b span) int { return a.start - b.start })
	for i := 1; i < len(spans); i++ {
		if spans[i].start < spans[i-1].end {
			return "", errors.New("overlapping edits")
		}
	}

	out := make([]byte, 0, len(text))
	prev := 0
	for _, s := range spans {
		out = append(out, text[prev:s.start]...)
		out = append(out, s.newText...)
		prev = s.end
	}
	out = append(out, text[prev:]...)
	return string(out), nil
}

// lineStarts returns the byte offset of each line. \n, \r\n and \r all end a
// line.
func lineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineText returns line n without its terminator.
func lineText(text string, starts []int, n int) string {
	end := len(text)
	if n+1 < len(starts) {
		end = starts[n+1]
	}
	line := text[starts[n]:end]
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}

// offset converts an already clamped position to a byte offset.
func offset(text string, starts []int, p Position) int {
	line := lineText(text, starts, p.Line)
	units := 0
	for i, r := range line {
		if units >= p.Character {
			return starts[p.Line] + i
		}
		units += utf16RuneLen(r)
	}
	return starts[p.Line] + len(line)
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16RuneLen(r)
	}
	return n
}

func utf16RuneLen(r rune) int {
	if r >= 0x10000 && r <= utf8.MaxRune {
		return 2
	}
	return 1
}
