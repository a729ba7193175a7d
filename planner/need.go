// Package planner walks the source and literate trees, pairs each
// file with its counterpart, and classifies every pair as needed,
// unneeded, or an unreconcilable divergence, by comparing source,
// target, and stamp modification times.
package planner

import (
	"github.com/Nasreen123/tango/tangoerr"
	"github.com/Nasreen123/tango/timestamp"
)

// Need is the outcome of the divergence check for a single pair.
type Need int

const (
	Unneeded Need = iota
	Needed
)

func (n Need) String() string {
	if n == Needed {
		return "needed"
	}
	return "unneeded"
}

// checkDivergence implements the divergence decision table. sourceTime
// is the mtime of the side being read from, targetState is the
// MtimeState of the side that would be overwritten, and stamp is the
// witness file's state. sourcePath/targetPath are used only to
// populate diagnostics.
func checkDivergence(sourceTime timestamp.Timestamp, targetState timestamp.MtimeState, stamp timestamp.MtimeState, sourcePath, targetPath string) (Need, []tangoerr.Warning, error) {
	targetTime, present := targetState.Get()
	if !present {
		return Needed, nil, nil
	}

	if targetTime.AfterLowPrecision(sourceTime) {
		return Unneeded, nil, nil
	}

	if targetTime.SameLowPrecision(sourceTime) {
		if !targetTime.Equal(sourceTime) {
			return Unneeded, []tangoerr.Warning{{
				Kind:    tangoerr.PrecisionCoarsened,
				Path:    targetPath,
				Message: "target and source mtimes match at millisecond precision only; treating as up to date",
			}}, nil
		}
		return Unneeded, nil, nil
	}

	// targetTime is strictly older than sourceTime at low precision.
	stampTime, stampPresent := stamp.Get()
	if !stampPresent {
		return Unneeded, nil, &tangoerr.CheckError{
			Kind:   tangoerr.NoStampExists,
			Source: sourcePath,
			Target: targetPath,
		}
	}

	if stampTime.BeforeLowPrecision(targetTime) {
		return Unneeded, nil, &tangoerr.CheckError{
			Kind:   tangoerr.StampOlderThanTarget,
			Source: sourcePath,
			Target: targetPath,
		}
	}

	if stampTime.SameLowPrecision(targetTime) && stampTime.Before(targetTime) {
		return Needed, []tangoerr.Warning{{
			Kind:    tangoerr.PrecisionCoarsened,
			Path:    targetPath,
			Message: "stamp predates target at nanosecond precision only; proceeding",
		}}, nil
	}

	return Needed, nil, nil
}
