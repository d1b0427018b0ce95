package domain

import (
	"context"
	"fmt"
	"regexp"
	"slices"

	m "jsinline.dev/pkg/jsinline/internal/model"
	"jsinline.dev/pkg/jsinline/internal/syntax"
)

// Prompter asks the user for a value. ok is false when the user gave no
// answer, which is not an error.
type Prompter interface {
	AskUserInput(ctx context.Context, defaultValue string) (value string, ok bool, err error)
}

// FixedPrompter answers every question with the same value.
type FixedPrompter string

// AskUserInput returns the fixed value, or no answer when it is empty.
func (p FixedPrompter) AskUserInput(_ context.Context, _ string) (string, bool, error) {
	return string(p), p != "", nil
}

var identifierPattern = regexp.MustCompile(`^[\p{L}\p{Nl}$_][\p{L}\p{Nl}\p{Mn}\p{Mc}\p{Nd}\p{Pc}$]*$`)

var reservedWords = []string{
	"await", "break", "case", "catch", "class", "const", "continue", "debugger",
	"default", "delete", "do", "else", "enum", "export", "extends", "false",
	"finally", "for", "function", "if", "implements", "import", "in", "instanceof",
	"interface", "let", "new", "null", "package", "private", "protected", "public",
	"return", "static", "super", "switch", "this", "throw", "true", "try",
	"typeof", "var", "void", "while", "with", "yield",
}

// IsValidIdentifier reports whether name can name a binding.
func IsValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name) && !slices.Contains(reservedWords, name)
}

var renameableKinds = []string{
	syntax.KindIdentifier,
	syntax.KindShorthandPropertyIdentifier,
	syntax.KindShorthandPattern,
	syntax.KindTypeIdentifier,
}

// Rename renames the binding under the selection and all its references.
// The new name comes from prompter, with the current name as default.
func Rename(ctx context.Context, t *syntax.Tree, selection m.Selection, prompter Prompter) (m.Result, error) {
	if err := ctx.Err(); err != nil {
		return m.Result{}, err
	}

	ref := innermost(t, selection, renameableKinds...)
	if !ref.Valid() || isPropertyName(t, ref) {
		return m.Result{}, m.DidNotFindIdentifierToRename
	}

	decl, scope := resolveDeclaration(t, ref)
	if !decl.Valid() {
		return m.Result{}, m.DidNotFindIdentifierToRename
	}

	current := t.Text(decl)

	name, ok, err := prompter.AskUserInput(ctx, current)
	if err != nil {
		return m.Result{}, fmt.Errorf("ask for new name: %w", err)
	}

	if !ok || name == current {
		return m.Result{}, nil
	}

	if !IsValidIdentifier(name) {
		return m.Result{}, m.InvalidIdentifierName
	}

	edits := []m.Edit{renameEdit(t, decl, name)}
	for _, o := range FindOccurrences(t, scope, decl) {
		edits = append(edits, renameEdit(t, o.Node, name))
	}

	return m.Result{Edits: edits}, nil
}

// renameEdit renames id. Shorthands keep their property key.
func renameEdit(t *syntax.Tree, id syntax.NodeID, name string) m.Edit {
	text := name
	if t.Is(id, syntax.KindShorthandPropertyIdentifier, syntax.KindShorthandPattern) {
		text = t.Text(id) + ": " + name
	}

	return m.Edit{Selection: t.Selection(id), Text: text}
}
