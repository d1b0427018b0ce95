package textedit

import (
	"fmt"
	"sort"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/span"

	m "jsinline.dev/pkg/jsinline/internal/model"
)

// OverlapError reports two edits that touch the same bytes.
type OverlapError struct {
	First, Second [2]int
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("overlapping edits at [%d,%d) and [%d,%d)",
		e.First[0], e.First[1], e.Second[0], e.Second[1])
}

type replacement struct {
	start, end int
	text       string
}

// Buffer queues replacements against an immutable text and applies them in
// one pass with gotextdiff. All offsets refer to the original text.
type Buffer struct {
	old   []byte
	queue []replacement
}

// NewBuffer returns a buffer editing data.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{old: data}
}

// Insert queues an insertion at offset.
func (b *Buffer) Insert(offset int, text string) {
	b.Replace(offset, offset, text)
}

// Delete queues the removal of [start, end).
func (b *Buffer) Delete(start, end int) {
	b.Replace(start, end, "")
}

// Replace queues the replacement of [start, end) with text.
func (b *Buffer) Replace(start, end int, text string) {
	if start < 0 || end < start || end > len(b.old) {
		panic(fmt.Sprintf("invalid replacement [%d,%d) in text of %d bytes", start, end, len(b.old)))
	}

	b.queue = append(b.queue, replacement{start: start, end: end, text: text})
}

func (b *Buffer) sorted() ([]replacement, error) {
	queue := append([]replacement(nil), b.queue...)
	sort.SliceStable(queue, func(i, j int) bool {
		if queue[i].start != queue[j].start {
			return queue[i].start < queue[j].start
		}

		return queue[i].end < queue[j].end
	})

	for i := 1; i < len(queue); i++ {
		prev, cur := queue[i-1], queue[i]
		if cur.start < prev.end {
			return nil, &OverlapError{
				First:  [2]int{prev.start, prev.end},
				Second: [2]int{cur.start, cur.end},
			}
		}
	}

	return queue, nil
}

// Bytes applies the queued replacements. Overlapping replacements are
// reported before anything is applied, since gotextdiff would produce
// garbage for them.
func (b *Buffer) Bytes() ([]byte, error) {
	queue, err := b.sorted()
	if err != nil {
		return nil, err
	}

	edits := make([]gotextdiff.TextEdit, 0, len(queue))
	for _, r := range queue {
		edits = append(edits, gotextdiff.TextEdit{
			Span:    span.New("", span.NewPoint(0, 0, r.start), span.NewPoint(0, 0, r.end)),
			NewText: r.text,
		})
	}

	return []byte(gotextdiff.ApplyEdits(string(b.old), edits)), nil
}

// String applies the queued replacements.
func (b *Buffer) String() (string, error) {
	out, err := b.Bytes()
	return string(out), err
}

// MapOffset translates an offset of the original text to the edited text.
// Offsets inside a replaced range map to the start of its replacement;
// insertions at offset are placed before it.
func (b *Buffer) MapOffset(offset int) int {
	queue, err := b.sorted()
	if err != nil {
		queue = b.queue
	}

	shift := 0

	for _, r := range queue {
		switch {
		case r.end <= offset && (r.start < offset || r.start == r.end):
			shift += len(r.text) - (r.end - r.start)
		case r.start < offset && offset < r.end:
			return r.start + shift
		}
	}

	return offset + shift
}

// Apply applies position based edits to text.
func Apply(text string, edits []m.Edit) (string, error) {
	out, _, err := ApplyAndTrack(text, edits, m.Position{})
	return out, err
}

// ApplyAndTrack applies edits and reports where the position at of the
// original text ends up in the result.
func ApplyAndTrack(text string, edits []m.Edit, at m.Position) (string, m.Position, error) {
	src := []byte(text)
	index := NewIndex(src)
	buf := NewBuffer(src)

	for _, e := range edits {
		start, end := index.Range(e.Selection)
		buf.Replace(start, end, e.Text)
	}

	out, err := buf.Bytes()
	if err != nil {
		return "", m.Position{}, err
	}

	return string(out), NewIndex(out).Position(buf.MapOffset(index.Offset(at))), nil
}
