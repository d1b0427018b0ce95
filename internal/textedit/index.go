// Package textedit converts between byte offsets and editor positions and
// applies batches of replacements to a text snapshot.
package textedit

import (
	"sort"
	"unicode/utf8"

	m "jsinline.dev/pkg/jsinline/internal/model"
)

// Index maps byte offsets of a snapshot to positions and back.
type Index struct {
	src        []byte
	lineStarts []int
}

// NewIndex indexes the line starts of src.
func NewIndex(src []byte) *Index {
	starts := []int{0}

	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}

	return &Index{src: src, lineStarts: starts}
}

// LineCount returns the number of lines, counting a trailing empty line.
func (x *Index) LineCount() int {
	return len(x.lineStarts)
}

// LineStart returns the offset of the first byte of line.
func (x *Index) LineStart(line int) int {
	if line < 0 {
		return 0
	}

	if line >= len(x.lineStarts) {
		return len(x.src)
	}

	return x.lineStarts[line]
}

// LineEnd returns the offset of the line break ending line, or the end of
// the text for the last line.
func (x *Index) LineEnd(line int) int {
	if line < 0 {
		return 0
	}

	if line+1 >= len(x.lineStarts) {
		return len(x.src)
	}

	return x.lineStarts[line+1] - 1
}

// Line returns the text of line without its line break.
func (x *Index) Line(line int) string {
	return string(x.src[x.LineStart(line):x.LineEnd(line)])
}

// Position converts a byte offset. Offsets outside the text are clamped.
func (x *Index) Position(offset int) m.Position {
	offset = min(max(offset, 0), len(x.src))
	line := sort.Search(len(x.lineStarts), func(i int) bool {
		return x.lineStarts[i] > offset
	}) - 1

	return m.NewPosition(line, utf8.RuneCount(x.src[x.lineStarts[line]:offset]))
}

// Offset converts a position. Characters past the end of a line land on the
// line break; lines past the end of the text land on the end.
func (x *Index) Offset(p m.Position) int {
	if p.Line < 0 {
		return 0
	}

	if p.Line >= len(x.lineStarts) {
		return len(x.src)
	}

	offset := x.lineStarts[p.Line]
	end := x.LineEnd(p.Line)

	for i := 0; i < p.Character && offset < end; i++ {
		_, size := utf8.DecodeRune(x.src[offset:end])
		offset += size
	}

	return offset
}

// Selection converts a byte range.
func (x *Index) Selection(start, end int) m.Selection {
	return m.SelectionFromPositions(x.Position(start), x.Position(end))
}

// Range converts a selection to a byte range.
func (x *Index) Range(sel m.Selection) (int, int) {
	return x.Offset(sel.Start), x.Offset(sel.End)
}

// Text returns the text covered by sel.
func (x *Index) Text(sel m.Selection) string {
	start, end := x.Range(sel)
	return string(x.src[start:end])
}
