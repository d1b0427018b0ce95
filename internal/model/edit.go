package model

// Edit replaces the text covered by Selection with Text. An empty Text
// deletes the selection.
type Edit struct {
	Selection Selection `json:"selection" yaml:"selection"`
	Text      string    `json:"text" yaml:"text"`
}

// NewDeletion builds an edit that removes the selection.
func NewDeletion(selection Selection) Edit {
	return Edit{Selection: selection}
}

// Result is what a refactoring produces for one source snapshot. Edits are
// expressed against the original text and applied together.
type Result struct {
	Edits    []Edit
	Warnings []Reason
}

// IsEmpty reports whether the result changes nothing.
func (r Result) IsEmpty() bool {
	return len(r.Edits) == 0
}
