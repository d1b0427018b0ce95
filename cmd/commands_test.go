package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "jsinline.dev/pkg/jsinline/internal/model"
)

// executeRoot runs the shared root command, logging to a temporary file.
func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	viper.Set(logFilenameKey, filepath.Join(t.TempDir(), "jsinline.log"))
	viper.Set(colorConfigKey, false)
	t.Cleanup(func() {
		viper.Set(logFilenameKey, defaultLogFilename)
		viper.Set(colorConfigKey, defaultColor)
	})

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()

	return out.String(), err
}

func writeSource(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestInlineVariableCmd_PrintsDiff(t *testing.T) {
	path := writeSource(t, "a.js", "const a = 1;\nconsole.log(a);\n")

	out, err := executeRoot(t, "inline", "variable", path, "1:7")

	require.NoError(t, err)
	assert.Contains(t, out, "+console.log(1);")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "const a = 1;\nconsole.log(a);\n", string(data))
}

func TestInlineFunctionCmd_Refusal(t *testing.T) {
	path := writeSource(t, "a.js", "function f(a) {\n  if (a) return 1;\n  return 2;\n}\nf(x);\n")

	out, err := executeRoot(t, "inline", "function", path, "1:10")

	require.Error(t, err)
	assert.Contains(t, out, "multiple return")
}

func TestInlineCmd_InvalidPosition(t *testing.T) {
	path := writeSource(t, "a.js", "const a = 1;\n")

	_, err := executeRoot(t, "inline", "variable", path, "line-one")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid position")
}

func TestListCmd(t *testing.T) {
	path := writeSource(t, "a.js", "const a = 1;\nconst b = a;\nconsole.log(b);\n")

	out, err := executeRoot(t, "list", filepath.Dir(path))

	require.NoError(t, err)
	assert.Contains(t, out, "a.js")
	assert.Contains(t, out, "1:7")
	assert.Contains(t, out, "2:7")
}

func TestBatchCmd(t *testing.T) {
	path := writeSource(t, "a.js", "const a = 1;\nconsole.log(a);\n")
	plan := writeSource(t, "plan.yaml",
		fmt.Sprintf("requests:\n  - path: %s\n    refactoring: inline-variable\n    line: 1\n    character: 7\n", path))
	reports := filepath.Join(t.TempDir(), "report.yaml")

	viper.Set(reportsConfigKey, reports)
	t.Cleanup(func() { viper.Set(reportsConfigKey, defaultReports) })

	out, err := executeRoot(t, "batch", plan)

	require.NoError(t, err)
	assert.Contains(t, out, "applied")
	assert.FileExists(t, reports)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "const a = 1;\nconsole.log(a);\n", string(data), "batch writes only with --write")
}

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"inline", "rename", "list", "batch", "mcp", "init", "version"} {
		assert.True(t, names[name], name)
	}

	variable, _, err := rootCmd.Find([]string{"inline", "variable"})
	require.NoError(t, err)
	assert.Equal(t, "variable", variable.Name())
	assert.NotNil(t, variable.InheritedFlags().Lookup(writeFlagName))

	rename, _, err := rootCmd.Find([]string{"rename"})
	require.NoError(t, err)
	assert.NotNil(t, rename.Flags().Lookup(toFlagName))
}

func TestListCmd_Examples(t *testing.T) {
	out, err := executeRoot(t, "list", "../examples/...")

	require.NoError(t, err)
	assert.Contains(t, out, "cart.js")
	assert.Contains(t, out, "taxRate")
	assert.Contains(t, out, "UserId")
	assert.Contains(t, out, "counter.js")
	assert.Contains(t, out, string(m.CantInlineRedeclaredVariables))
}
