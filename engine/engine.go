// Package engine orchestrates a full synchronization run: planning,
// generation, the post-write concurrent-update check, and stamp
// advancement.
package engine

import (
	"context"

	"github.com/Nasreen123/tango/config"
	"github.com/Nasreen123/tango/planner"
	"github.com/Nasreen123/tango/stamp"
	"github.com/Nasreen123/tango/tangoerr"
	"github.com/Nasreen123/tango/timestamp"
)

// Result summarizes a completed run: the plan that was computed, any
// non-fatal warnings collected while generating, and whether it was a
// dry run (in which case nothing on disk was touched).
type Result struct {
	Plan     planner.Plan
	Warnings []tangoerr.Warning
	DryRun   bool
}

// Run executes one full synchronization pass against cfg: read the
// stamp, plan the work, generate it (unless cfg.DryRun), verify no
// input changed out from under the run, and advance the stamp.
func Run(ctx context.Context, cfg config.Config) (Result, error) {
	guard := stamp.New(cfg.StampPath())

	stampState, err := guard.Read()
	if err != nil {
		return Result{}, err
	}

	plan, warnings, err := planner.Build(cfg, stampState)
	if err != nil {
		return Result{Warnings: warnings}, err
	}

	if cfg.DryRun {
		return Result{Plan: plan, Warnings: warnings, DryRun: true}, nil
	}

	if err := generateToLiterate(ctx, cfg, plan.ToLiterate); err != nil {
		return Result{Plan: plan, Warnings: warnings}, err
	}

	toSourceWarnings, err := generateToSource(ctx, cfg, plan.ToSource)
	warnings = append(warnings, toSourceWarnings...)
	if err != nil {
		return Result{Plan: plan, Warnings: warnings}, err
	}

	if err := verifyNoConcurrentUpdate(plan); err != nil {
		return Result{Plan: plan, Warnings: warnings}, err
	}

	if !stampState.IsPresent() {
		if err := guard.Create(); err != nil {
			return Result{Plan: plan, Warnings: warnings}, err
		}
	}
	if !plan.NewestInputTime.IsZero() {
		if err := guard.Advance(plan.NewestInputTime); err != nil {
			return Result{Plan: plan, Warnings: warnings}, err
		}
	}

	return Result{Plan: plan, Warnings: warnings}, nil
}

// verifyNoConcurrentUpdate re-reads the origin file of every scheduled
// transform and confirms its mtime still matches what planning observed,
// catching the case where something else modified a source or
// literate file while this run was generating.
func verifyNoConcurrentUpdate(plan planner.Plan) error {
	for _, t := range plan.ToLiterate {
		if err := checkUnchanged(t.Origin.String(), t.SourceTime); err != nil {
			return err
		}
	}
	for _, t := range plan.ToSource {
		if err := checkUnchanged(t.Origin.String(), t.SourceTime); err != nil {
			return err
		}
	}
	return nil
}

func checkUnchanged(path string, observed timestamp.Timestamp) error {
	state, err := timestamp.ReadMtime(path)
	if err != nil {
		return tangoerr.Wrap("re-checking "+path, err)
	}
	now, present := state.Get()
	if !present {
		return &tangoerr.ConcurrentUpdateError{Path: path, OldTime: observed}
	}
	if !now.Equal(observed) {
		return &tangoerr.ConcurrentUpdateError{Path: path, OldTime: observed, NewTime: now}
	}
	return nil
}
