package domain

import (
	"strings"

	m "jsinline.dev/pkg/jsinline/internal/model"
	"jsinline.dev/pkg/jsinline/internal/syntax"
)

// statementRemoval returns what to delete to drop stmt. A statement alone on
// its lines takes the lines with it, and one following blank line when it
// opens the file or already follows a blank line.
func statementRemoval(t *syntax.Tree, stmt syntax.NodeID) m.Selection {
	sel := t.Selection(stmt)
	index := t.Index()
	src := t.Source()
	start, end := t.Span(stmt)

	before := string(src[index.LineStart(sel.Start.Line):start])
	after := string(src[end:index.LineEnd(sel.End.Line)])

	if !isBlank(before) || !isBlank(after) {
		return sel
	}

	sel = sel.ExtendToStartOfLine().ExtendToStartOfNextLine()

	next := sel.End.Line
	if next < index.LineCount() && isBlank(index.Line(next)) &&
		(sel.Start.Line == 0 || isBlank(index.Line(sel.Start.Line-1))) {
		sel = sel.ExtendEndTo(m.Cursor(m.NewPosition(next+1, 0)))
	}

	return sel
}

// listElementRemoval returns what to delete to drop element from a comma
// separated list: the element and the comma towards its next sibling, or
// towards its previous sibling when it is the last one.
func listElementRemoval(t *syntax.Tree, element syntax.NodeID) (m.Selection, bool) {
	sel := t.Selection(element)

	if next := t.NextSibling(element); next.Valid() {
		return sel.ExtendEndTo(m.Cursor(t.Selection(next).Start)), true
	}

	if prev := t.PrevSibling(element); prev.Valid() {
		return sel.ExtendStartTo(m.Cursor(t.Selection(prev).End)), true
	}

	return m.Selection{}, false
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// indentationOf returns the leading whitespace of the line holding offset.
func indentationOf(t *syntax.Tree, offset int) string {
	index := t.Index()
	line := index.Line(index.Position(offset).Line)

	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// reindent moves the continuation lines of code from one indentation to
// another. The first line is left alone.
func reindent(code, from, to string) string {
	lines := strings.Split(code, "\n")

	for i := 1; i < len(lines); i++ {
		if isBlank(lines[i]) {
			lines[i] = ""
			continue
		}

		if strings.HasPrefix(lines[i], from) {
			lines[i] = to + lines[i][len(from):]
		}
	}

	return strings.Join(lines, "\n")
}
