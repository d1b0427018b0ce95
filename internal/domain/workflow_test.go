package domain_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jsinline.dev/pkg/jsinline/internal/adapter"
	"jsinline.dev/pkg/jsinline/internal/domain"
	m "jsinline.dev/pkg/jsinline/internal/model"
)

const simpleSource = "const a = 1;\nconsole.log(a);\n"

func newTestWorkflow(ui *mockUI) domain.Workflow {
	return domain.NewWorkflow(
		adapter.NewLocalSourceFSAdapter(),
		adapter.NewYAMLReportStore(),
		ui,
		domain.NewRefactorer(adapter.NewLocalJSFileAdapter()),
	)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

func TestWorkflow_Inline(t *testing.T) {
	ctx := context.Background()

	t.Run("prints the outcome without touching the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.js")
		writeFile(t, path, simpleSource)

		ui := newMockUI()
		ui.On("DisplayOutcome", mock.Anything, mock.MatchedBy(func(o m.Outcome) bool {
			return o.After == "console.log(1);\n" && o.Before == simpleSource && o.Edits == 2
		}), false).Return(nil)

		err := newTestWorkflow(ui).Inline(ctx, domain.InlineArgs{
			Path:        m.Path(path),
			Refactoring: m.RefactoringInlineVariable,
			Selection:   m.Cursor(m.NewPosition(0, 6)),
		})

		require.NoError(t, err)
		assert.Equal(t, simpleSource, readFile(t, path))
		ui.AssertExpectations(t)
	})

	t.Run("writes the outcome", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.js")
		writeFile(t, path, simpleSource)

		ui := newMockUI()
		ui.On("DisplayOutcome", mock.Anything, mock.AnythingOfType("model.Outcome"), true).Return(nil)

		err := newTestWorkflow(ui).Inline(ctx, domain.InlineArgs{
			Path:        m.Path(path),
			Refactoring: m.RefactoringInlineVariable,
			Selection:   m.Cursor(m.NewPosition(0, 6)),
			Write:       true,
		})

		require.NoError(t, err)
		assert.Equal(t, "console.log(1);\n", readFile(t, path))
		ui.AssertExpectations(t)
	})

	t.Run("reports a refusal", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.js")
		writeFile(t, path, "export const a = 1;\nconsole.log(a);\n")

		ui := newMockUI()
		ui.On("DisplayRefusal", mock.Anything, m.Path(path), m.CantInlineExportedVariables).Return()

		err := newTestWorkflow(ui).Inline(ctx, domain.InlineArgs{
			Path:        m.Path(path),
			Refactoring: m.RefactoringInlineVariable,
			Selection:   m.Cursor(m.NewPosition(0, 13)),
			Write:       true,
		})

		require.ErrorIs(t, err, m.CantInlineExportedVariables)
		assert.Equal(t, "export const a = 1;\nconsole.log(a);\n", readFile(t, path))
		ui.AssertExpectations(t)
		ui.AssertNotCalled(t, "DisplayOutcome", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing file", func(t *testing.T) {
		ui := newMockUI()

		err := newTestWorkflow(ui).Inline(ctx, domain.InlineArgs{
			Path:        m.Path(filepath.Join(t.TempDir(), "missing.js")),
			Refactoring: m.RefactoringInlineVariable,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing.js")
	})
}

func TestWorkflow_Rename(t *testing.T) {
	ctx := context.Background()
	source := "let count = 0;\ncount += 1;\n"

	t.Run("asks for the new name", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.js")
		writeFile(t, path, source)

		ui := newMockUI()
		ui.On("AskUserInput", mock.Anything, "count").Return("total", true, nil)
		ui.On("DisplayOutcome", mock.Anything, mock.AnythingOfType("model.Outcome"), true).Return(nil)

		err := newTestWorkflow(ui).Rename(ctx, domain.RenameArgs{
			Path:      m.Path(path),
			Selection: m.Cursor(m.NewPosition(1, 0)),
			Write:     true,
		})

		require.NoError(t, err)
		assert.Equal(t, "let total = 0;\ntotal += 1;\n", readFile(t, path))
		ui.AssertExpectations(t)
	})

	t.Run("uses the given name", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.js")
		writeFile(t, path, source)

		ui := newMockUI()
		ui.On("DisplayOutcome", mock.Anything, mock.AnythingOfType("model.Outcome"), true).Return(nil)

		err := newTestWorkflow(ui).Rename(ctx, domain.RenameArgs{
			Path:      m.Path(path),
			Selection: m.Cursor(m.NewPosition(0, 4)),
			NewName:   "n",
			Write:     true,
		})

		require.NoError(t, err)
		assert.Equal(t, "let n = 0;\nn += 1;\n", readFile(t, path))
		ui.AssertNotCalled(t, "AskUserInput", mock.Anything, mock.Anything)
	})

	t.Run("file edited while prompting", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.js")
		writeFile(t, path, source)

		edited := "let count = 1;\ncount += 1;\n"

		ui := newMockUI()
		ui.On("AskUserInput", mock.Anything, "count").
			Run(func(mock.Arguments) { writeFile(t, path, edited) }).
			Return("total", true, nil)

		err := newTestWorkflow(ui).Rename(ctx, domain.RenameArgs{
			Path:      m.Path(path),
			Selection: m.Cursor(m.NewPosition(0, 4)),
			Write:     true,
		})

		require.ErrorIs(t, err, domain.ErrFileChanged)
		assert.Equal(t, edited, readFile(t, path))
		ui.AssertNotCalled(t, "DisplayOutcome", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cancelled prompt changes nothing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.js")
		writeFile(t, path, source)

		ui := newMockUI()
		ui.On("AskUserInput", mock.Anything, "count").Return("", false, nil)

		err := newTestWorkflow(ui).Rename(ctx, domain.RenameArgs{
			Path:      m.Path(path),
			Selection: m.Cursor(m.NewPosition(0, 4)),
			Write:     true,
		})

		require.NoError(t, err)
		assert.Equal(t, source, readFile(t, path))
		ui.AssertNotCalled(t, "DisplayOutcome", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestWorkflow_List(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.js"), simpleSource)
	writeFile(t, filepath.Join(root, "b.ts"), "export type Id = string;\n")
	writeFile(t, filepath.Join(root, "broken.js"), "const = ;\n")
	writeFile(t, filepath.Join(root, "notes.txt"), "const x = 1;\n")

	t.Run("all targets", func(t *testing.T) {
		ui := newMockUI()
		ui.On("Wait", mock.Anything).Return()
		ui.On("DisplayTargets", mock.Anything, mock.MatchedBy(func(targets []m.Target) bool {
			return len(targets) == 2 &&
				targets[0].Name == "a" && targets[0].References == 1 && targets[0].IsInlinable() &&
				targets[1].Name == "Id" && targets[1].Reason == m.CantInlineExportedVariables
		}), nil).Return(nil)

		err := newTestWorkflow(ui).List(ctx, domain.ListArgs{Paths: []m.Path{m.Path(root)}})

		require.NoError(t, err)
		ui.AssertExpectations(t)
	})

	t.Run("inlinable only", func(t *testing.T) {
		ui := newMockUI()
		ui.On("Wait", mock.Anything).Return()
		ui.On("DisplayTargets", mock.Anything, mock.MatchedBy(func(targets []m.Target) bool {
			return len(targets) == 1 && targets[0].Name == "a"
		}), nil).Return(nil)

		err := newTestWorkflow(ui).List(ctx, domain.ListArgs{Paths: []m.Path{m.Path(root)}, InlinableOnly: true})

		require.NoError(t, err)
		ui.AssertExpectations(t)
	})

	t.Run("excluded files", func(t *testing.T) {
		ui := newMockUI()
		ui.On("Wait", mock.Anything).Return()
		ui.On("DisplayTargets", mock.Anything, mock.MatchedBy(func(targets []m.Target) bool {
			return len(targets) == 1 && targets[0].Name == "Id"
		}), nil).Return(nil)

		err := newTestWorkflow(ui).List(ctx, domain.ListArgs{Paths: []m.Path{m.Path(root)}, Exclude: []string{"*.js"}})

		require.NoError(t, err)
		ui.AssertExpectations(t)
	})
}
