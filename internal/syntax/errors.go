package syntax

import (
	"fmt"

	m "jsinline.dev/pkg/jsinline/internal/model"
)

// ParseError reports source text the grammar could not parse.
type ParseError struct {
	Path     m.Path
	Position m.Position
	Snippet  string
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s:%s: syntax error near %q", e.Path, e.Position, e.Snippet)
	}

	return fmt.Sprintf("%s: syntax error near %q", e.Position, e.Snippet)
}

// NewParseError describes the error node id.
func NewParseError(t *Tree, id NodeID) *ParseError {
	snippet := t.Text(id)
	if len(snippet) > 40 {
		snippet = snippet[:40]
	}

	start, _ := t.Span(id)

	return &ParseError{Position: t.Index().Position(start), Snippet: snippet}
}
