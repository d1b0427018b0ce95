package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"jsinline.dev/pkg/jsinline/internal/controller"
	m "jsinline.dev/pkg/jsinline/internal/model"
)

// BatchArgs describes a batch run of a plan.
type BatchArgs struct {
	Plan     m.Path
	Reports  m.Path
	Parallel int
	Write    bool
}

// Batch runs every request of a plan. Requests on the same file run in plan
// order, each against the text left by the previous one; files are
// processed concurrently. Refusals are reported, not returned as errors.
func (w *workflow) Batch(ctx context.Context, args BatchArgs) error {
	if err := w.Start(ctx, controller.WithBatchMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	defer w.Close(ctx)

	plan, err := w.LoadPlan(args.Plan)
	if err != nil {
		return fmt.Errorf("load plan: %w", err)
	}

	reports, runErr := w.runPlan(ctx, plan, args)

	if args.Reports != "" {
		if err := w.SaveReports(args.Reports, reports); err != nil {
			return fmt.Errorf("save reports: %w", err)
		}
	}

	if err := w.DisplayReports(ctx, reports); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return runErr
}

func (w *workflow) runPlan(ctx context.Context, plan m.Plan, args BatchArgs) ([]m.Report, error) {
	reports := make([]m.Report, len(plan.Requests))
	byFile := make(map[m.Path][]int)

	var files []m.Path

	for i, request := range plan.Requests {
		if _, ok := byFile[request.Path]; !ok {
			files = append(files, request.Path)
		}

		byFile[request.Path] = append(byFile[request.Path], i)
	}

	var (
		result *multierror.Error
		mu     sync.Mutex
	)

	group, groupCtx := errgroup.WithContext(ctx)
	if args.Parallel > 0 {
		group.SetLimit(args.Parallel)
	}

	for _, path := range files {
		indexes := byFile[path]

		group.Go(func() error {
			if err := w.runFile(groupCtx, path, plan.Requests, indexes, reports, args.Write); err != nil {
				mu.Lock()
				result = multierror.Append(result, err)
				mu.Unlock()
			}

			return groupCtx.Err()
		})
	}

	if err := group.Wait(); err != nil {
		result = multierror.Append(result, err)
	}

	return reports, result.ErrorOrNil()
}

// runFile applies the requests at indexes, all on path. It only writes to
// reports at those indexes.
func (w *workflow) runFile(ctx context.Context, path m.Path, requests []m.Request, indexes []int, reports []m.Report, write bool) error {
	var errs *multierror.Error

	fail := func(err error) {
		for _, i := range indexes {
			if reports[i].Status == "" {
				reports[i] = m.Report{Request: requests[i], Status: m.Failed, Error: err.Error()}
			}
		}
	}

	source, err := w.loadSource(path)
	if err != nil {
		fail(err)
		return err
	}

	changed := false

	for _, i := range indexes {
		request := requests[i]

		outcome, err := w.Refactor(ctx, source, request, FixedPrompter(request.NewName))

		var reason m.Reason

		switch {
		case errors.As(err, &reason):
			reports[i] = m.Report{Request: request, Status: m.Refused, Reason: reason}
		case err != nil:
			reports[i] = m.Report{Request: request, Status: m.Failed, Error: err.Error()}
			errs = multierror.Append(errs, fmt.Errorf("%s %s:%d:%d: %w",
				request.Refactoring, path, request.Line, request.Character, err))
		default:
			reports[i] = m.Report{Request: request, Status: m.Applied, Warnings: outcome.Warnings, Edits: outcome.Edits}
			source.Content = []byte(outcome.After)
			changed = changed || outcome.Changed()
		}
	}

	if write && changed {
		if err := w.writeBack(source, source.Content); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	return errs.ErrorOrNil()
}
