// Package report renders the outcome of a synchronization run —
// text, JSON, or Markdown — the way the reference tooling's output
// package renders its own analysis reports in multiple formats.
package report

import (
	"fmt"

	"github.com/Nasreen123/tango/config"
	"github.com/Nasreen123/tango/engine"
)

// TransformLine names one scheduled or completed conversion, in the
// direction-agnostic shape every report format renders identically.
type TransformLine struct {
	From string
	To   string
}

// Summary is the format-independent view of an engine.Result that
// each Formatter renders.
type Summary struct {
	DryRun          bool
	ToLiterate      []TransformLine
	ToSource        []TransformLine
	SkippedLiterate []string
	Warnings        []string
}

// Summarize reduces an engine.Result to the data every Formatter needs.
func Summarize(result engine.Result) Summary {
	s := Summary{DryRun: result.DryRun}

	for _, t := range result.Plan.ToLiterate {
		s.ToLiterate = append(s.ToLiterate, TransformLine{From: t.Origin.String(), To: t.Target.String()})
	}
	for _, t := range result.Plan.ToSource {
		s.ToSource = append(s.ToSource, TransformLine{From: t.Origin.String(), To: t.Target.String()})
	}
	s.SkippedLiterate = append(s.SkippedLiterate, result.Plan.SkippedLiterate...)

	for _, w := range result.Warnings {
		s.Warnings = append(s.Warnings, w.String())
	}

	return s
}

// Formatter renders a Summary to a string.
type Formatter interface {
	Format(Summary) string
}

// ForFormat returns the Formatter matching the configured report
// format. Validate is assumed to have already rejected unrecognized
// values, so the default case only needs to exist to satisfy the
// compiler.
func ForFormat(format config.ReportFormat) Formatter {
	switch format {
	case config.ReportJSON:
		return NewJSONFormatter()
	case config.ReportMarkdown:
		return NewMarkdownFormatter()
	default:
		return NewTextFormatter()
	}
}

func totalCount(s Summary) int {
	return len(s.ToLiterate) + len(s.ToSource)
}

func formatTransformCount(s Summary) string {
	return fmt.Sprintf("%d to literate, %d to source", len(s.ToLiterate), len(s.ToSource))
}
