package report

import (
	"fmt"
	"strings"
)

// MarkdownFormatter renders a Summary as a Markdown document, for
// pasting into a PR description or CI job summary.
type MarkdownFormatter struct{}

// NewMarkdownFormatter returns a MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(s Summary) string {
	var sb strings.Builder

	sb.WriteString("# Synchronization Report\n\n")
	if s.DryRun {
		sb.WriteString("_Dry run: nothing was written._\n\n")
	}
	fmt.Fprintf(&sb, "%s.\n\n", formatTransformCount(s))

	if len(s.ToLiterate) > 0 {
		sb.WriteString("## Source -> Literate\n\n")
		sb.WriteString("| From | To |\n| --- | --- |\n")
		for _, t := range s.ToLiterate {
			fmt.Fprintf(&sb, "| `%s` | `%s` |\n", t.From, t.To)
		}
		sb.WriteString("\n")
	}

	if len(s.ToSource) > 0 {
		sb.WriteString("## Literate -> Source\n\n")
		sb.WriteString("| From | To |\n| --- | --- |\n")
		for _, t := range s.ToSource {
			fmt.Fprintf(&sb, "| `%s` | `%s` |\n", t.From, t.To)
		}
		sb.WriteString("\n")
	}

	if len(s.SkippedLiterate) > 0 {
		sb.WriteString("## Skipped (not tango-managed)\n\n")
		for _, p := range s.SkippedLiterate {
			fmt.Fprintf(&sb, "- `%s`\n", p)
		}
		sb.WriteString("\n")
	}

	if len(s.Warnings) > 0 {
		sb.WriteString("## Warnings\n\n")
		for _, w := range s.Warnings {
			fmt.Fprintf(&sb, "- %s\n", w)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
