package controller

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "jsinline.dev/pkg/jsinline/internal/model"
)

func newTestCommand(input string) (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(input))

	return cmd, &out
}

func TestSimpleUI_AskUserInput(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"answer", "total\n", "total", true},
		{"answer without newline", "total", "total", true},
		{"empty line keeps default", "\n", "count", true},
		{"padded answer", "  total  \n", "total", true},
		{"end of input", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, out := newTestCommand(tt.input)
			ui := NewSimpleUI(cmd)

			got, ok, err := ui.AskUserInput(context.Background(), "count")

			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "New name [count]: ", out.String())
		})
	}
}

func TestSimpleUI_AskUserInput_ReadsSuccessiveLines(t *testing.T) {
	cmd, _ := newTestCommand("first\nsecond\n")
	ui := NewSimpleUI(cmd)

	first, _, err := ui.AskUserInput(context.Background(), "x")
	require.NoError(t, err)

	second, _, err := ui.AskUserInput(context.Background(), "x")
	require.NoError(t, err)

	assert.Equal(t, "first", first)
	assert.Equal(t, "second", second)
}

func TestSimpleUI_AskUserInput_Cancelled(t *testing.T) {
	cmd, out := newTestCommand("total\n")
	ui := NewSimpleUI(cmd)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok, err := ui.AskUserInput(ctx, "count")

	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
	assert.Empty(t, out.String())
}

func TestSimpleUI_DisplayOutcome(t *testing.T) {
	outcome := m.Outcome{
		Path:   "a.js",
		Before: "const a = 1;\nconsole.log(a);\n",
		After:  "console.log(1);\n",
		Edits:  2,
	}

	t.Run("written", func(t *testing.T) {
		cmd, out := newTestCommand("")
		ui := NewSimpleUI(cmd)

		require.NoError(t, ui.DisplayOutcome(context.Background(), outcome, true))
		assert.Equal(t, "a.js: 2 edit(s) written\n", out.String())
	})

	t.Run("diff", func(t *testing.T) {
		cmd, out := newTestCommand("")
		ui := NewSimpleUI(cmd)

		require.NoError(t, ui.DisplayOutcome(context.Background(), outcome, false))

		diff := out.String()
		assert.Contains(t, diff, "--- a/a.js")
		assert.Contains(t, diff, "+++ b/a.js")
		assert.Contains(t, diff, "-const a = 1;\n")
		assert.Contains(t, diff, "-console.log(a);\n")
		assert.Contains(t, diff, "+console.log(1);\n")
		assert.NotContains(t, diff, "\x1b[")
	})

	t.Run("coloured diff", func(t *testing.T) {
		cmd, out := newTestCommand("")
		ui := NewSimpleUI(cmd)
		require.NoError(t, ui.Start(context.Background(), WithRefactorMode(), WithColor(true)))

		require.NoError(t, ui.DisplayOutcome(context.Background(), outcome, false))

		assert.Contains(t, out.String(), "\x1b[")
		assert.Contains(t, out.String(), "+console.log(1);")
	})

	t.Run("warnings come first", func(t *testing.T) {
		cmd, out := newTestCommand("")
		ui := NewSimpleUI(cmd)

		withWarning := outcome
		withWarning.Warnings = []m.Reason{m.CantRemoveExportedFunction}

		require.NoError(t, ui.DisplayOutcome(context.Background(), withWarning, true))
		assert.Equal(t,
			"a.js: warning: "+m.CantRemoveExportedFunction.Error()+"\na.js: 2 edit(s) written\n",
			out.String())
	})

	t.Run("unchanged text prints no hunk", func(t *testing.T) {
		cmd, out := newTestCommand("")
		ui := NewSimpleUI(cmd)

		same := m.Outcome{Path: "a.js", Before: "x;\n", After: "x;\n"}

		require.NoError(t, ui.DisplayOutcome(context.Background(), same, false))
		assert.Empty(t, out.String())
	})
}

func TestSimpleUI_DisplayRefusal(t *testing.T) {
	cmd, out := newTestCommand("")
	ui := NewSimpleUI(cmd)

	ui.DisplayRefusal(context.Background(), "a.js", m.CantInlineExportedVariables)

	assert.Equal(t, "a.js: "+m.CantInlineExportedVariables.Error()+"\n", out.String())
}

func TestSimpleUI_DisplayTargets(t *testing.T) {
	targets := []m.Target{
		{Path: "a.js", Kind: m.TargetVariable, Name: "answer", Position: m.NewPosition(0, 6), References: 3},
		{Path: "b.ts", Kind: m.TargetTypeAlias, Name: "Id", Position: m.NewPosition(4, 12), Reason: m.CantInlineExportedVariables},
	}

	t.Run("table", func(t *testing.T) {
		cmd, out := newTestCommand("")
		ui := NewSimpleUI(cmd)

		require.NoError(t, ui.DisplayTargets(context.Background(), targets, nil))

		table := out.String()
		upper := strings.ToUpper(table)

		assert.Contains(t, upper, "VERDICT")
		assert.Contains(t, table, "answer")
		assert.Contains(t, table, "1:7")
		assert.Contains(t, table, "5:13")
		assert.Contains(t, table, string(m.CantInlineExportedVariables))
		assert.Contains(t, upper, "TOTAL TARGETS 2")
		assert.Contains(t, upper, "1 INLINABLE")
	})

	t.Run("error", func(t *testing.T) {
		cmd, out := newTestCommand("")
		ui := NewSimpleUI(cmd)
		listErr := errors.New("walk failed")

		err := ui.DisplayTargets(context.Background(), nil, listErr)

		require.ErrorIs(t, err, listErr)
		assert.Equal(t, "list error: walk failed\n", out.String())
	})
}

func TestSimpleUI_DisplayReports(t *testing.T) {
	reports := []m.Report{
		{Request: m.Request{Path: "a.js", Refactoring: m.RefactoringInlineVariable, Line: 1, Character: 7}, Status: m.Applied, Edits: 2},
		{Request: m.Request{Path: "b.js", Refactoring: m.RefactoringInlineFunction, Line: 3, Character: 10}, Status: m.Refused, Reason: m.CantInlineFunctionWithMultipleReturns},
		{Request: m.Request{Path: "c.js", Refactoring: m.RefactoringRename, Line: 1, Character: 1}, Status: m.Failed, Error: "boom"},
	}

	cmd, out := newTestCommand("")
	ui := NewSimpleUI(cmd)

	require.NoError(t, ui.DisplayReports(context.Background(), reports))

	table := out.String()
	upper := strings.ToUpper(table)

	assert.Contains(t, table, "inline-function")
	assert.Contains(t, table, "3:10")
	assert.Contains(t, table, string(m.CantInlineFunctionWithMultipleReturns))
	assert.Contains(t, table, "boom")
	assert.Contains(t, upper, "TOTAL REQUESTS 3")
	assert.Contains(t, upper, "1 APPLIED")
	assert.Contains(t, upper, "1 REFUSED, 1 FAILED")
}

func TestVerdictLabel(t *testing.T) {
	assert.Equal(t, "ok", verdictLabel(m.Target{}))
	assert.Equal(t, "ok (cant-remove-exported-function)",
		verdictLabel(m.Target{Warnings: []m.Reason{m.CantRemoveExportedFunction}}))
	assert.Equal(t, "cant-inline-redeclared-variables",
		verdictLabel(m.Target{Reason: m.CantInlineRedeclaredVariables}))
}

func TestNewUI(t *testing.T) {
	cmd, _ := newTestCommand("")

	assert.IsType(t, &SimpleUI{}, NewUI(cmd, false))
	assert.IsType(t, &TUI{}, NewUI(cmd, true))
	assert.False(t, IsTTY(nil))
}
