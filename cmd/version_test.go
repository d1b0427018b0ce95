package cmd

import (
	"bytes"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Output(t *testing.T) {
	cmd := newVersionCmd()

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		assert.Equal(t, "jsinline version unknown\n", out.String())
		return
	}

	assert.Equal(t, "jsinline "+info.Main.Version+" ("+info.GoVersion+")\n", out.String())
}

func TestVersionCmd_RegisteredOnRoot(t *testing.T) {
	found, _, err := rootCmd.Find([]string{"version"})
	require.NoError(t, err)

	assert.Same(t, versionCmd, found)
	assert.Contains(t, found.Short, "jsinline")
}
