package model

// Refactoring names an operation of the engine.
type Refactoring string

const (
	// RefactoringInlineVariable inlines a variable, destructured field or type alias.
	RefactoringInlineVariable Refactoring = "inline-variable"
	// RefactoringInlineFunction inlines a function declaration into its call sites.
	RefactoringInlineFunction Refactoring = "inline-function"
	// RefactoringRename renames a binding and its references.
	RefactoringRename Refactoring = "rename"
)

// Request is one refactoring to run against a file, as found in batch plans.
type Request struct {
	Path        Path        `yaml:"path"`
	Refactoring Refactoring `yaml:"refactoring"`
	Line        int         `yaml:"line"`
	Character   int         `yaml:"character"`
	EndLine     *int        `yaml:"end_line,omitempty"`
	EndChar     *int        `yaml:"end_character,omitempty"`
	NewName     string      `yaml:"new_name,omitempty"`
}

// Selection converts the one-based coordinates of the request to a selection.
func (r Request) Selection() Selection {
	start := NewPosition(r.Line-1, r.Character-1)
	end := start

	if r.EndLine != nil && r.EndChar != nil {
		end = NewPosition(*r.EndLine-1, *r.EndChar-1)
	}

	return SelectionFromPositions(start, end)
}

// Plan is a list of refactorings applied in order.
type Plan struct {
	Requests []Request `yaml:"requests"`
}

// Status is the verdict of a single request.
type Status string

const (
	// Applied means the edits were produced and applied.
	Applied Status = "applied"
	// Refused means the engine declined with a reason.
	Refused Status = "refused"
	// Failed means an infrastructure or parse error occurred.
	Failed Status = "failed"
)

// Report records what happened to one request.
type Report struct {
	Request  Request  `yaml:"request"`
	Status   Status   `yaml:"status"`
	Reason   Reason   `yaml:"reason,omitempty"`
	Warnings []Reason `yaml:"warnings,omitempty"`
	Edits    int      `yaml:"edits"`
	Error    string   `yaml:"error,omitempty"`
}
