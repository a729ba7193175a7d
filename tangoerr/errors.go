// Package tangoerr defines the typed error taxonomy used across the
// synchronization engine: each failure mode carries enough context to
// print a one-line human diagnosis naming the offending path(s). The
// kinds that wrap an underlying cause (IOError, MtimeError, ConfigError,
// ArchiveError) implement Unwrap so errors.Is/errors.As reach it.
package tangoerr

import (
	"fmt"

	"github.com/Nasreen123/tango/timestamp"
)

// CheckKind identifies the specific sub-kind of an unreconcilable
// divergence the planner refused to resolve automatically.
type CheckKind string

const (
	// TargetYoungerThanSource means the target has edits newer than
	// the source; overwriting it would discard them. In practice the
	// planner treats this case as "unneeded" rather than an error, but
	// the kind exists for diagnostics that want to say why a pair was
	// skipped.
	TargetYoungerThanSource CheckKind = "target_younger_than_source"

	// NoStampExists means both source and target exist but no stamp
	// file records a previous successful run to arbitrate between them.
	NoStampExists CheckKind = "no_stamp_exists"

	// StampOlderThanTarget means the stamp predates the target, so
	// source and target appear to have diverged independently since
	// the last run.
	StampOlderThanTarget CheckKind = "stamp_older_than_target"
)

// CheckError reports that the divergence check (see package planner)
// found a source/target pair it cannot safely reconcile.
type CheckError struct {
	Kind   CheckKind
	Source string
	Target string
}

func (e *CheckError) Error() string {
	switch e.Kind {
	case TargetYoungerThanSource:
		return fmt.Sprintf("target %q is younger than source %q; it may hold edits that would be lost", e.Target, e.Source)
	case NoStampExists:
		return fmt.Sprintf("both %q and %q exist but no tango.stamp is present", e.Source, e.Target)
	case StampOlderThanTarget:
		return fmt.Sprintf("tango.stamp is older than %q; source and target appear to have diverged since the last run", e.Target)
	default:
		return fmt.Sprintf("unreconcilable divergence between %q and %q", e.Source, e.Target)
	}
}

// MtimeError reports that a modification time could not be obtained
// for a file known to exist.
type MtimeError struct {
	Path string
	Err  error
}

func (e *MtimeError) Error() string {
	return fmt.Sprintf("could not read modification time of %s: %v", e.Path, e.Err)
}

func (e *MtimeError) Unwrap() error { return e.Err }

// ConcurrentUpdateError reports that a tracked source file's
// modification time changed between the planning snapshot and the
// post-generation verification re-read.
type ConcurrentUpdateError struct {
	Path    string
	OldTime timestamp.Timestamp
	NewTime timestamp.Timestamp
}

func (e *ConcurrentUpdateError) Error() string {
	return fmt.Sprintf("concurrent update to %s during run: was %s, now %s",
		e.Path, e.OldTime.FormatHuman(), e.NewTime.FormatHuman())
}

// IOError wraps an underlying filesystem failure with the operation
// that triggered it.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("I/O error running tango (%s): %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Wrap annotates err with the operation that produced it. Returns nil
// if err is nil, so it composes with the usual `if err != nil` guard
// pattern at call sites.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Err: err}
}

// ConfigError reports that the configuration file could not be read,
// could not be parsed, or failed validation.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ArchiveError reports that a supplied archive could not be extracted
// or repacked.
type ArchiveError struct {
	Path string
	Op   string
	Err  error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("archive %s (%s): %v", e.Path, e.Op, e.Err)
}

func (e *ArchiveError) Unwrap() error { return e.Err }

// WarningKind identifies the specific non-fatal condition a Warning
// describes.
type WarningKind string

const (
	// EncodedURLMismatch means a literate file's playground URL
	// decoded to code that does not match the fenced block it follows.
	EncodedURLMismatch WarningKind = "encoded_url_mismatch"

	// PrecisionCoarsened means a timestamp comparison that would
	// disagree at nanosecond precision agreed once truncated to
	// milliseconds, so the engine treated the coarser comparison as
	// authoritative.
	PrecisionCoarsened WarningKind = "precision_coarsened"
)

// Warning is a non-fatal condition surfaced alongside an otherwise
// successful conversion or plan. Warnings never abort a run.
type Warning struct {
	Kind    WarningKind
	Path    string
	Actual  string
	Expect  string
	Message string
}

func (w Warning) String() string {
	switch w.Kind {
	case EncodedURLMismatch:
		return fmt.Sprintf("%s: mismatch between encoded playground URL, expected %q, got %q", w.Path, w.Expect, w.Actual)
	case PrecisionCoarsened:
		return fmt.Sprintf("%s: %s", w.Path, w.Message)
	default:
		return fmt.Sprintf("%s: %s", w.Path, w.Message)
	}
}

// WarningsError wraps a non-empty batch of warnings so it can be
// returned through an error-returning signature when a caller needs
// to treat "there were warnings" as the terminal outcome of a call
// that otherwise succeeded (e.g. a converter invoked outside the
// engine, with no other channel to report them through).
type WarningsError struct {
	Warnings []Warning
}

func (e *WarningsError) Error() string {
	if len(e.Warnings) == 0 {
		return "warnings"
	}
	msg := ""
	for i, w := range e.Warnings {
		if i > 0 {
			msg += "; "
		}
		msg += w.String()
	}
	return "WARNING: " + msg
}
