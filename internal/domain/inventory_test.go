package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsinline.dev/pkg/jsinline/internal/adapter"
	m "jsinline.dev/pkg/jsinline/internal/model"
)

func TestInventory(t *testing.T) {
	src := `const a = 1, { b, c: [d] } = obj;
type T = string;
function f(x) {
  return x;
}
console.log(a, b, d, f(1));
`
	tree := parse(t, m.TypeScript, src)

	targets := Inventory(tree)
	require.Len(t, targets, 5)

	tests := []struct {
		kind       m.TargetKind
		name       string
		position   m.Position
		references int
		reason     m.Reason
	}{
		{m.TargetVariable, "a", m.NewPosition(0, 6), 1, ""},
		{m.TargetDestructured, "b", m.NewPosition(0, 15), 1, ""},
		{m.TargetDestructured, "d", m.NewPosition(0, 22), 1, ""},
		{m.TargetTypeAlias, "T", m.NewPosition(1, 5), 0, m.DidNotFindInlinableCodeIdentifiers},
		{m.TargetFunction, "f", m.NewPosition(2, 9), 1, ""},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := targets[i]
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.name, got.Name)
			assert.Equal(t, tt.position, got.Position)
			assert.Equal(t, tt.references, got.References)
			assert.Equal(t, tt.reason, got.Reason)
			assert.Equal(t, tt.reason == "", got.IsInlinable())
			assert.Equal(t, tt.kind.Refactoring() == m.RefactoringInlineFunction, tt.kind == m.TargetFunction)
		})
	}
}

func TestInventory_ExportedFunctionWarning(t *testing.T) {
	src := "export function f() {\n  go();\n}\nf();\n"
	tree := parse(t, m.JavaScript, src)

	targets := Inventory(tree)
	require.Len(t, targets, 1)
	assert.True(t, targets[0].IsInlinable())
	assert.Equal(t, []m.Reason{m.CantRemoveExportedFunction}, targets[0].Warnings)
}

func TestRefactorer_Targets(t *testing.T) {
	r := NewRefactorer(adapter.NewLocalJSFileAdapter())
	source := m.Source{
		Origin:   &m.File{Path: "src/a.js"},
		Language: m.JavaScript,
		Content:  []byte("let a = 1;\na = 2;\n"),
	}

	targets, err := r.Targets(context.Background(), source)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, m.Path("src/a.js"), targets[0].Path)
	assert.Equal(t, m.CantInlineRedeclaredVariables, targets[0].Reason)

	_, err = r.Targets(context.Background(), m.Source{Language: m.JavaScript, Content: []byte("const = ;")})
	require.Error(t, err)
}

func TestRefactorer_UnknownRefactoring(t *testing.T) {
	r := NewRefactorer(adapter.NewLocalJSFileAdapter())
	source := m.Source{Language: m.JavaScript, Content: []byte("let a = 1;\n")}

	outcome, err := r.Refactor(context.Background(), source, m.Request{Refactoring: "extract", Line: 1, Character: 1}, nil)
	require.Error(t, err)
	assert.False(t, outcome.Changed())
}

func TestRefactorer_TracksCursor(t *testing.T) {
	r := NewRefactorer(adapter.NewLocalJSFileAdapter())
	source := m.Source{Language: m.JavaScript, Content: []byte("const a = 1;\nconst b = 2;\n")}
	request := m.Request{Refactoring: m.RefactoringRename, Line: 2, Character: 7, NewName: "longer"}

	outcome, err := r.Refactor(context.Background(), source, request, nil)
	require.NoError(t, err)
	assert.Equal(t, "const a = 1;\nconst longer = 2;\n", outcome.After)
	require.NotNil(t, outcome.Cursor)
	assert.Equal(t, m.NewPosition(1, 6), *outcome.Cursor)
	assert.Equal(t, 1, outcome.Edits)
}
