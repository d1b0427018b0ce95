// Package controller provides the output adapters that show refactoring
// results and ask the user for input.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "jsinline.dev/pkg/jsinline/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeRefactor StartMode = iota
	ModeList
	ModeBatch
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode  StartMode
	color bool
}

// WithRefactorMode sets the UI to show one refactoring.
func WithRefactorMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRefactor
	}
}

// WithListMode sets the UI to show inline targets.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// WithBatchMode sets the UI to show batch reports.
func WithBatchMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeBatch
	}
}

// WithColor enables coloured diffs.
func WithColor(enabled bool) StartOption {
	return func(c *StartConfig) {
		c.color = enabled
	}
}

// UI defines how workflows talk to the user. Implementations can use
// different output methods (plain text, TUI).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	// AskUserInput asks for a value; ok is false when the user gave none.
	AskUserInput(ctx context.Context, defaultValue string) (value string, ok bool, err error)
	// DisplayOutcome shows an applied refactoring, as a diff unless it was
	// written back.
	DisplayOutcome(ctx context.Context, outcome m.Outcome, written bool) error
	DisplayRefusal(ctx context.Context, path m.Path, err error)
	DisplayTargets(ctx context.Context, targets []m.Target, err error) error
	DisplayReports(ctx context.Context, reports []m.Report) error
}

// NewUI returns the interactive UI when the output is a terminal and the
// plain one otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
