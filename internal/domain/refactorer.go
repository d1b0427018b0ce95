package domain

import (
	"context"
	"fmt"
	"log/slog"

	"jsinline.dev/pkg/jsinline/internal/adapter"
	m "jsinline.dev/pkg/jsinline/internal/model"
	"jsinline.dev/pkg/jsinline/internal/textedit"
)

// Refactorer runs the engine against one source snapshot.
type Refactorer interface {
	// Refactor runs request against source and returns the new text. A
	// refused refactoring returns the reason as error and an unchanged
	// outcome.
	Refactor(ctx context.Context, source m.Source, request m.Request, prompter Prompter) (m.Outcome, error)
	// Targets lists the inline targets of source.
	Targets(ctx context.Context, source m.Source) ([]m.Target, error)
}

type refactorer struct {
	adapter.JSFileAdapter
}

// NewRefactorer creates a Refactorer parsing with jsAdapter.
func NewRefactorer(jsAdapter adapter.JSFileAdapter) Refactorer {
	return &refactorer{JSFileAdapter: jsAdapter}
}

func (r *refactorer) Refactor(ctx context.Context, source m.Source, request m.Request, prompter Prompter) (m.Outcome, error) {
	before := string(source.Content)
	outcome := m.Outcome{Path: request.Path, Before: before, After: before}

	tree, err := r.Parse(ctx, source.Language, source.Content)
	if err != nil {
		return outcome, fmt.Errorf("parse %s: %w", request.Path, err)
	}

	selection := request.Selection()

	var result m.Result

	switch request.Refactoring {
	case m.RefactoringInlineVariable:
		result, err = InlineVariable(tree, selection)
	case m.RefactoringInlineFunction:
		result, err = InlineFunction(tree, selection)
	case m.RefactoringRename:
		if request.NewName != "" {
			prompter = FixedPrompter(request.NewName)
		}

		result, err = Rename(ctx, tree, selection, prompter)
	default:
		return outcome, fmt.Errorf("unknown refactoring %q", request.Refactoring)
	}

	if err != nil {
		slog.Debug("refactoring refused", "path", request.Path, "refactoring", request.Refactoring,
			"selection", selection.String(), "error", err)

		return outcome, err
	}

	after, cursor, err := textedit.ApplyAndTrack(before, result.Edits, selection.Start)
	if err != nil {
		return outcome, fmt.Errorf("apply edits to %s: %w", request.Path, err)
	}

	slog.Info("refactoring applied", "path", request.Path, "refactoring", request.Refactoring,
		"edits", len(result.Edits), "warnings", len(result.Warnings))

	outcome.After = after
	outcome.Cursor = &cursor
	outcome.Warnings = result.Warnings
	outcome.Edits = len(result.Edits)

	return outcome, nil
}

func (r *refactorer) Targets(ctx context.Context, source m.Source) ([]m.Target, error) {
	tree, err := r.Parse(ctx, source.Language, source.Content)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	targets := Inventory(tree)

	if source.Origin != nil {
		for i := range targets {
			targets[i].Path = source.Origin.Path
		}
	}

	return targets, nil
}
