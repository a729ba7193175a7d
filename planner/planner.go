package planner

import (
	"fmt"

	"github.com/Nasreen123/tango/config"
	"github.com/Nasreen123/tango/pathkind"
	"github.com/Nasreen123/tango/tangoerr"
	"github.com/Nasreen123/tango/timestamp"
)

// SourceTransform schedules converting a source file into its
// literate counterpart.
type SourceTransform struct {
	Origin      pathkind.SourcePath
	Target      pathkind.LiteratePath
	SourceTime  timestamp.Timestamp
	TargetState timestamp.MtimeState
}

// LiterateTransform schedules converting a literate file into its
// source counterpart.
type LiterateTransform struct {
	Origin      pathkind.LiteratePath
	Target      pathkind.SourcePath
	SourceTime  timestamp.Timestamp
	TargetState timestamp.MtimeState
}

// Plan is the full set of work a run would perform.
type Plan struct {
	ToLiterate []SourceTransform
	ToSource   []LiterateTransform

	// NewestInputTime is the maximum mtime observed across every input
	// file sampled while planning (both trees), used to advance the
	// stamp monotonically.
	NewestInputTime timestamp.Timestamp

	// SkippedLiterate lists .md files that were present but judged not
	// tango-managed by the format-auto-detection sniff, so no
	// LiterateToSource transform was scheduled for them.
	SkippedLiterate []string
}

func trackNewest(newest timestamp.Timestamp, candidate timestamp.Timestamp) timestamp.Timestamp {
	if newest.IsZero() || candidate.After(newest) {
		return candidate
	}
	return newest
}

// Build walks the configured source and literate trees and produces a
// Plan, given the current stamp state. It returns any warnings
// collected along the way; a non-nil error means planning was aborted
// and the returned Plan must not be acted upon.
func Build(cfg config.Config, stamp timestamp.MtimeState) (Plan, []tangoerr.Warning, error) {
	var plan Plan
	var warnings []tangoerr.Warning

	srcFiles, err := walkTree(cfg.SourceRoot(), ".rs")
	if err != nil {
		return Plan{}, warnings, tangoerr.Wrap("walking source tree", err)
	}
	litFiles, err := walkTree(cfg.LiterateRoot(), ".md")
	if err != nil {
		return Plan{}, warnings, tangoerr.Wrap("walking literate tree", err)
	}

	for _, srcFile := range srcFiles {
		sp, err := pathkind.NewSourcePath(srcFile, cfg.SourceRoot(), "rs", cfg.LiterateRoot(), "md")
		if err != nil {
			return Plan{}, warnings, tangoerr.Wrap("classifying "+srcFile, err)
		}
		lp, err := sp.Counterpart()
		if err != nil {
			return Plan{}, warnings, tangoerr.Wrap("computing counterpart of "+srcFile, err)
		}

		sourceState, err := timestamp.ReadMtime(sp.String())
		if err != nil {
			return Plan{}, warnings, &tangoerr.MtimeError{Path: sp.String(), Err: err}
		}
		sourceTime, present := sourceState.Get()
		if !present {
			// Walked it, so it exists; a vanishing race is reported as
			// an MtimeError rather than silently skipped.
			return Plan{}, warnings, &tangoerr.MtimeError{Path: sp.String(), Err: fmt.Errorf("file vanished during planning")}
		}
		plan.NewestInputTime = trackNewest(plan.NewestInputTime, sourceTime)

		targetState, err := timestamp.ReadMtime(lp.String())
		if err != nil {
			return Plan{}, warnings, &tangoerr.MtimeError{Path: lp.String(), Err: err}
		}

		need, warns, err := checkDivergence(sourceTime, targetState, stamp, sp.String(), lp.String())
		warnings = append(warnings, warns...)
		if err != nil {
			return Plan{}, warnings, err
		}
		if need == Needed {
			plan.ToLiterate = append(plan.ToLiterate, SourceTransform{
				Origin:      sp,
				Target:      lp,
				SourceTime:  sourceTime,
				TargetState: targetState,
			})
		}
	}

	for _, litFile := range litFiles {
		managed, err := isTangoManaged(litFile, cfg.SourceLanguageTag, cfg.PlaygroundBaseURL, cfg.PlaygroundVersionParam)
		if err != nil {
			return Plan{}, warnings, tangoerr.Wrap("sniffing "+litFile, err)
		}
		if !managed {
			plan.SkippedLiterate = append(plan.SkippedLiterate, litFile)
			continue
		}

		lp, err := pathkind.NewLiteratePath(litFile, cfg.LiterateRoot(), "md", cfg.SourceRoot(), "rs")
		if err != nil {
			return Plan{}, warnings, tangoerr.Wrap("classifying "+litFile, err)
		}
		sp, err := lp.Counterpart()
		if err != nil {
			return Plan{}, warnings, tangoerr.Wrap("computing counterpart of "+litFile, err)
		}

		literateState, err := timestamp.ReadMtime(lp.String())
		if err != nil {
			return Plan{}, warnings, &tangoerr.MtimeError{Path: lp.String(), Err: err}
		}
		literateTime, present := literateState.Get()
		if !present {
			return Plan{}, warnings, &tangoerr.MtimeError{Path: lp.String(), Err: fmt.Errorf("file vanished during planning")}
		}
		plan.NewestInputTime = trackNewest(plan.NewestInputTime, literateTime)

		targetState, err := timestamp.ReadMtime(sp.String())
		if err != nil {
			return Plan{}, warnings, &tangoerr.MtimeError{Path: sp.String(), Err: err}
		}

		need, warns, err := checkDivergence(literateTime, targetState, stamp, lp.String(), sp.String())
		warnings = append(warnings, warns...)
		if err != nil {
			return Plan{}, warnings, err
		}
		if need == Needed {
			plan.ToSource = append(plan.ToSource, LiterateTransform{
				Origin:      lp,
				Target:      sp,
				SourceTime:  literateTime,
				TargetState: targetState,
			})
		}
	}

	return plan, warnings, nil
}
