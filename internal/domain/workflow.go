package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"jsinline.dev/pkg/jsinline/internal/adapter"
	"jsinline.dev/pkg/jsinline/internal/controller"
	m "jsinline.dev/pkg/jsinline/internal/model"
)

// InlineArgs describes one refactoring of one file.
type InlineArgs struct {
	Path        m.Path
	Refactoring m.Refactoring
	Selection   m.Selection
	Write       bool
	Color       bool
}

// RenameArgs describes a rename. An empty NewName asks the user.
type RenameArgs struct {
	Path      m.Path
	Selection m.Selection
	NewName   string
	Write     bool
	Color     bool
}

// ListArgs selects the files whose inline targets are listed.
type ListArgs struct {
	Paths         []m.Path
	Exclude       []string
	InlinableOnly bool
}

// Workflow runs the engine on files on behalf of the CLI.
type Workflow interface {
	Inline(ctx context.Context, args InlineArgs) error
	Rename(ctx context.Context, args RenameArgs) error
	List(ctx context.Context, args ListArgs) error
	Batch(ctx context.Context, args BatchArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ReportStore
	controller.UI
	Refactorer
}

// NewWorkflow creates a new Workflow with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	refactorer Refactorer,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		UI:              ui,
		Refactorer:      refactorer,
	}
}

func (w *workflow) Inline(ctx context.Context, args InlineArgs) error {
	return w.refactorFile(ctx, requestFor(args.Path, args.Refactoring, args.Selection, ""), args.Write, args.Color)
}

func (w *workflow) Rename(ctx context.Context, args RenameArgs) error {
	return w.refactorFile(ctx, requestFor(args.Path, m.RefactoringRename, args.Selection, args.NewName), args.Write, args.Color)
}

func (w *workflow) refactorFile(ctx context.Context, request m.Request, write, color bool) error {
	if err := w.Start(ctx, controller.WithRefactorMode(), controller.WithColor(color)); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	defer w.Close(ctx)

	source, err := w.loadSource(request.Path)
	if err != nil {
		return err
	}

	outcome, err := w.Refactor(ctx, source, request, w.UI)
	if err != nil {
		var reason m.Reason
		if errors.As(err, &reason) {
			w.DisplayRefusal(ctx, request.Path, reason)
		}

		return err
	}

	if !outcome.Changed() {
		slog.Info("nothing to change", "path", request.Path)
		return nil
	}

	if write {
		if err := w.writeBack(source, []byte(outcome.After)); err != nil {
			return err
		}
	}

	return w.DisplayOutcome(ctx, outcome, write)
}

func (w *workflow) List(ctx context.Context, args ListArgs) error {
	if err := w.Start(ctx, controller.WithListMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	targets, err := w.collectTargets(ctx, args)

	err = w.DisplayTargets(ctx, targets, err)
	if err != nil {
		w.Close(ctx)
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)
	w.Close(ctx)

	return nil
}

func (w *workflow) collectTargets(ctx context.Context, args ListArgs) ([]m.Target, error) {
	paths, err := w.Sources(ctx, args.Paths, args.Exclude...)
	if err != nil {
		return nil, fmt.Errorf("get sources: %w", err)
	}

	var all []m.Target

	for _, path := range paths {
		source, err := w.loadSource(path)
		if err != nil {
			return nil, err
		}

		targets, err := w.Targets(ctx, source)
		if err != nil {
			slog.Warn("skipping unparsable file", "path", path, "error", err)
			continue
		}

		for _, target := range targets {
			if args.InlinableOnly && !target.IsInlinable() {
				continue
			}

			all = append(all, target)
		}
	}

	return all, nil
}

func (w *workflow) loadSource(path m.Path) (m.Source, error) {
	hash, err := w.HashFile(path)
	if err != nil {
		return m.Source{}, fmt.Errorf("hash %s: %w", path, err)
	}

	content, err := w.ReadFile(path)
	if err != nil {
		return m.Source{}, fmt.Errorf("read %s: %w", path, err)
	}

	return m.Source{
		Origin:   &m.File{Path: path, Hash: hash},
		Language: m.LanguageFor(path),
		Content:  content,
	}, nil
}

// ErrFileChanged is returned when a file was modified on disk between
// reading it and writing the refactored text back.
var ErrFileChanged = errors.New("file changed since it was read")

// writeBack replaces the file of source with content, unless the file no
// longer matches the hash taken when it was read.
func (w *workflow) writeBack(source m.Source, content []byte) error {
	path := source.Origin.Path

	hash, err := w.HashFile(path)
	if err != nil {
		return fmt.Errorf("hash %s: %w", path, err)
	}

	if hash != source.Origin.Hash {
		return fmt.Errorf("write %s: %w", path, ErrFileChanged)
	}

	if err := w.WriteFile(path, content); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// requestFor builds a request from a zero-based selection.
func requestFor(path m.Path, refactoring m.Refactoring, selection m.Selection, newName string) m.Request {
	endLine := selection.End.Line + 1
	endChar := selection.End.Character + 1

	return m.Request{
		Path:        path,
		Refactoring: refactoring,
		Line:        selection.Start.Line + 1,
		Character:   selection.Start.Character + 1,
		EndLine:     &endLine,
		EndChar:     &endChar,
		NewName:     newName,
	}
}
