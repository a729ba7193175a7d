package engine

import (
	"context"
	"os"
	"sync"

	"github.com/Nasreen123/tango/config"
	"github.com/Nasreen123/tango/planner"
	"github.com/Nasreen123/tango/tangoerr"
	"github.com/Nasreen123/tango/timestamp"
	"github.com/Nasreen123/tango/transform"
)

// generateOne opens srcPath, creates (truncating) dstPath, runs
// convert, backdates dstPath's mtime to sourceTime, and re-reads it to
// assert the backdate held at millisecond precision.
func generateOne(srcPath, dstPath string, sourceTime timestamp.Timestamp, convert func(src *os.File, dst *os.File) error) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return tangoerr.Wrap("opening "+srcPath, err)
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return tangoerr.Wrap("creating "+dstPath, err)
	}
	defer dst.Close()

	if err := convert(src, dst); err != nil {
		return tangoerr.Wrap("converting "+srcPath, err)
	}
	if err := dst.Sync(); err != nil {
		return tangoerr.Wrap("flushing "+dstPath, err)
	}

	atime, mtime := sourceTime.ToChtimesArgs()
	if err := os.Chtimes(dstPath, atime, mtime); err != nil {
		return tangoerr.Wrap("backdating "+dstPath, err)
	}

	state, err := timestamp.ReadMtime(dstPath)
	if err != nil {
		return tangoerr.Wrap("verifying backdate of "+dstPath, err)
	}
	got, present := state.Get()
	if !present || !got.SameLowPrecision(sourceTime) {
		return tangoerr.Wrap("verifying backdate of "+dstPath, &tangoerr.MtimeError{
			Path: dstPath,
			Err:  errBackdateMismatch{dstPath},
		})
	}
	return nil
}

type errBackdateMismatch struct{ path string }

func (e errBackdateMismatch) Error() string {
	return "backdated mtime did not match source at millisecond precision: " + e.path
}

// generateToLiterate runs every queued SourceToLiterate transform,
// fanned out across cfg.ResolvedWorkers() goroutines.
func generateToLiterate(ctx context.Context, cfg config.Config, items []planner.SourceTransform) error {
	if len(items) == 0 {
		return nil
	}
	converter := transform.NewSourceToLiterate(cfg.CommentPrefix, cfg.SourceLanguageTag, cfg.PlaygroundBaseURL, cfg.PlaygroundVersionParam)

	return runPool(ctx, cfg.ResolvedWorkers(), len(items), func(i int) error {
		t := items[i]
		return generateOne(t.Origin.String(), t.Target.String(), t.SourceTime, func(src, dst *os.File) error {
			return converter.Convert(src, dst)
		})
	})
}

// generateToSource runs every queued LiterateToSource transform,
// fanned out across cfg.ResolvedWorkers() goroutines, and collects any
// warnings the converter produced along the way.
func generateToSource(ctx context.Context, cfg config.Config, items []planner.LiterateTransform) ([]tangoerr.Warning, error) {
	if len(items) == 0 {
		return nil, nil
	}
	converter := transform.NewLiterateToSource(cfg.CommentPrefix, cfg.PlaygroundBaseURL, cfg.PlaygroundVersionParam)

	var mu sync.Mutex
	var warnings []tangoerr.Warning

	err := runPool(ctx, cfg.ResolvedWorkers(), len(items), func(i int) error {
		t := items[i]
		return generateOne(t.Origin.String(), t.Target.String(), t.SourceTime, func(src, dst *os.File) error {
			warns, err := converter.Convert(src, dst)
			if len(warns) > 0 {
				for j := range warns {
					warns[j].Path = t.Origin.String()
				}
				mu.Lock()
				warnings = append(warnings, warns...)
				mu.Unlock()
			}
			return err
		})
	})
	return warnings, err
}
