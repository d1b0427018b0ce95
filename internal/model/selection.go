package model

import "fmt"

// Selection is a span of text between two positions. Start never comes
// after End; an empty selection is a cursor.
type Selection struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end" yaml:"end"`
}

// NewSelection builds a selection from two (line, character) pairs, swapping
// them when they are given in reverse order.
func NewSelection(startLine, startCharacter, endLine, endCharacter int) Selection {
	return SelectionFromPositions(
		NewPosition(startLine, startCharacter),
		NewPosition(endLine, endCharacter),
	)
}

// SelectionFromPositions builds a normalised selection.
func SelectionFromPositions(start, end Position) Selection {
	if end.IsBefore(start) {
		start, end = end, start
	}

	return Selection{Start: start, End: end}
}

// Cursor returns the empty selection at p.
func Cursor(p Position) Selection {
	return Selection{Start: p, End: p}
}

// IsEmpty reports whether the selection is a cursor.
func (s Selection) IsEmpty() bool {
	return s.Start == s.End
}

// IsOneLine reports whether the selection starts and ends on the same line.
func (s Selection) IsOneLine() bool {
	return s.Start.IsSameLine(s.End)
}

// IsInside reports whether s lies within other, boundaries included.
func (s Selection) IsInside(other Selection) bool {
	return !s.Start.IsBefore(other.Start) && !s.End.IsAfter(other.End)
}

// Contains reports whether other lies within s, boundaries included.
func (s Selection) Contains(other Selection) bool {
	return other.IsInside(s)
}

// IsSameLine reports whether both selections start on the same line.
func (s Selection) IsSameLine(other Selection) bool {
	return s.Start.IsSameLine(other.Start)
}

// ExtendToStartOfLine moves the start to the beginning of its line.
func (s Selection) ExtendToStartOfLine() Selection {
	return Selection{Start: s.Start.PutAtStartOfLine(), End: s.End}
}

// ExtendToStartOfNextLine moves the end to the beginning of the next line.
func (s Selection) ExtendToStartOfNextLine() Selection {
	return Selection{Start: s.Start, End: s.End.PutAtNextLine()}
}

// ExtendStartTo widens s so that it starts where other starts. It never
// shrinks s.
func (s Selection) ExtendStartTo(other Selection) Selection {
	if other.Start.IsBefore(s.Start) {
		return Selection{Start: other.Start, End: s.End}
	}

	return s
}

// ExtendEndTo widens s so that it ends where other ends. It never shrinks s.
func (s Selection) ExtendEndTo(other Selection) Selection {
	if other.End.IsAfter(s.End) {
		return Selection{Start: s.Start, End: other.End}
	}

	return s
}

// Height is the number of line breaks covered by the selection.
func (s Selection) Height() int {
	return s.End.Line - s.Start.Line
}

func (s Selection) String() string {
	if s.IsEmpty() {
		return s.Start.String()
	}

	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
