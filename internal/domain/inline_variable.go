package domain

import (
	m "jsinline.dev/pkg/jsinline/internal/model"
	"jsinline.dev/pkg/jsinline/internal/syntax"
)

// InlineVariable replaces the variable, destructured field or type alias
// under the selection by its value and removes the dead declaration.
func InlineVariable(t *syntax.Tree, selection m.Selection) (m.Result, error) {
	target := Locate(t, selection)
	if target == nil {
		return m.Result{}, m.DidNotFindInlinableCode
	}

	if err := checkInlinable(target); err != nil {
		return m.Result{}, err
	}

	code := t.Index().Text(target.ValueSelection())
	edits := target.UpdateIdentifiersWith(code)

	if removal, ok := target.CodeToRemoveSelection(); ok {
		edits = append(edits, m.NewDeletion(removal))
	}

	return m.Result{Edits: edits}, nil
}

// checkInlinable runs the safety checks in the order they are reported.
func checkInlinable(target Inlinable) error {
	switch {
	case target.IsRedeclared():
		return m.CantInlineRedeclaredVariables
	case target.IsExported():
		return m.CantInlineExportedVariables
	case !target.HasIdentifiersToUpdate():
		return m.DidNotFindInlinableCodeIdentifiers
	}

	return nil
}
