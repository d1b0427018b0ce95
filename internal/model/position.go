// Package model defines the value types shared by the inline engine.
package model

import "fmt"

// Position is a zero-based location in a text document. Character counts
// Unicode code points from the start of the line.
type Position struct {
	Line      int `json:"line" yaml:"line"`
	Character int `json:"character" yaml:"character"`
}

// NewPosition builds a Position.
func NewPosition(line, character int) Position {
	return Position{Line: line, Character: character}
}

// Compare orders positions by line, then character.
func (p Position) Compare(other Position) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Character < other.Character:
		return -1
	case p.Character > other.Character:
		return 1
	}

	return 0
}

// IsBefore reports whether p is strictly before other.
func (p Position) IsBefore(other Position) bool {
	return p.Compare(other) < 0
}

// IsAfter reports whether p is strictly after other.
func (p Position) IsAfter(other Position) bool {
	return p.Compare(other) > 0
}

// IsSameLine reports whether both positions are on the same line.
func (p Position) IsSameLine(other Position) bool {
	return p.Line == other.Line
}

// AddCharacters moves the position n characters to the right.
func (p Position) AddCharacters(n int) Position {
	return Position{Line: p.Line, Character: p.Character + n}
}

// RemoveCharacters moves the position n characters to the left, stopping at
// the start of the line.
func (p Position) RemoveCharacters(n int) Position {
	return Position{Line: p.Line, Character: max(0, p.Character-n)}
}

// PutAtStartOfLine returns the first position of p's line.
func (p Position) PutAtStartOfLine() Position {
	return Position{Line: p.Line}
}

// PutAtNextLine returns the first position of the line after p.
func (p Position) PutAtNextLine() Position {
	return Position{Line: p.Line + 1}
}

// String renders the position one-based, the way editors display it.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Character+1)
}
