package model

// TargetKind classifies what an inline target declares.
type TargetKind string

const (
	// TargetVariable is a variable bound by a plain identifier.
	TargetVariable TargetKind = "variable"
	// TargetDestructured is a leaf of a destructuring pattern.
	TargetDestructured TargetKind = "destructured"
	// TargetTypeAlias is a TypeScript type alias.
	TargetTypeAlias TargetKind = "type-alias"
	// TargetFunction is a function declaration.
	TargetFunction TargetKind = "function"
)

// Refactoring returns the operation that inlines targets of this kind.
func (k TargetKind) Refactoring() Refactoring {
	if k == TargetFunction {
		return RefactoringInlineFunction
	}

	return RefactoringInlineVariable
}

// Target is a declaration found in a file, with the verdict the engine
// gives when asked to inline it.
type Target struct {
	Path       Path       `json:"path" yaml:"path"`
	Kind       TargetKind `json:"kind" yaml:"kind"`
	Name       string     `json:"name" yaml:"name"`
	Position   Position   `json:"position" yaml:"position"`
	References int        `json:"references" yaml:"references"`
	// Reason is empty when the target can be inlined.
	Reason   Reason   `json:"reason,omitempty" yaml:"reason,omitempty"`
	Warnings []Reason `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// IsInlinable reports whether inlining the target would succeed.
func (t Target) IsInlinable() bool {
	return t.Reason == ""
}
