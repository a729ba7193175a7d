package report

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// TextFormatter renders a Summary as a boxed terminal table, falling
// back to a fixed width when stdout isn't a terminal.
type TextFormatter struct{}

// NewTextFormatter returns a TextFormatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 100
	}
	return w
}

// Format renders a Summary as a heading line, a boxed table per
// direction, and a trailing warnings section.
func (tf *TextFormatter) Format(s Summary) string {
	var sb strings.Builder

	if s.DryRun {
		sb.WriteString("Dry run: nothing was written.\n\n")
	}

	fmt.Fprintf(&sb, "Synchronization summary (%s)\n", formatTransformCount(s))

	if len(s.ToLiterate) > 0 {
		sb.WriteString(renderTable("SOURCE -> LITERATE", s.ToLiterate, terminalWidth()))
	}
	if len(s.ToSource) > 0 {
		sb.WriteString(renderTable("LITERATE -> SOURCE", s.ToSource, terminalWidth()))
	}

	if len(s.SkippedLiterate) > 0 {
		sb.WriteString("\nSkipped (not tango-managed):\n")
		for _, p := range s.SkippedLiterate {
			fmt.Fprintf(&sb, "  %s\n", p)
		}
	}

	if len(s.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		for _, w := range s.Warnings {
			fmt.Fprintf(&sb, "  %s\n", w)
		}
	}

	if totalCount(s) == 0 {
		sb.WriteString("\nNothing to do.\n")
	}

	return sb.String()
}

// renderTable draws a bordered box-drawing table with a merged,
// centered title row, mirroring the layout used elsewhere in this
// codebase for tabular terminal output.
func renderTable(title string, rows []TransformLine, termWidth int) string {
	widthFrom := len("From")
	widthTo := len("To")
	for _, r := range rows {
		if len(r.From) > widthFrom {
			widthFrom = len(r.From)
		}
		if len(r.To) > widthTo {
			widthTo = len(r.To)
		}
	}

	// Clamp path columns so the table doesn't overrun the terminal;
	// long paths are left as-is (no truncation) when they don't fit,
	// since a truncated path is useless for the reader to act on.
	maxPathWidth := (termWidth - 7) / 2
	if maxPathWidth < 20 {
		maxPathWidth = 20
	}
	if widthFrom > maxPathWidth {
		widthFrom = maxPathWidth
	}
	if widthTo > maxPathWidth {
		widthTo = maxPathWidth
	}

	totalWidth := (widthFrom + 2) + (widthTo + 2) + 3

	top := fmt.Sprintf("┌%s┐", strings.Repeat("─", totalWidth-2))
	titleBorder := fmt.Sprintf("├%s┤", strings.Repeat("─", totalWidth-2))
	headerSep := fmt.Sprintf("├%s┼%s┤", strings.Repeat("─", widthFrom+2), strings.Repeat("─", widthTo+2))
	bottom := fmt.Sprintf("└%s┴%s┘", strings.Repeat("─", widthFrom+2), strings.Repeat("─", widthTo+2))

	avail := totalWidth - 2
	pad := avail - len(title)
	if pad < 0 {
		pad = 0
	}
	left := pad / 2
	right := pad - left
	titleRow := fmt.Sprintf("│%s%s%s│", strings.Repeat(" ", left), title, strings.Repeat(" ", right))
	headerRow := fmt.Sprintf("│ %-*s │ %-*s │", widthFrom, "From", widthTo, "To")

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(top + "\n")
	sb.WriteString(titleRow + "\n")
	sb.WriteString(titleBorder + "\n")
	sb.WriteString(headerRow + "\n")
	sb.WriteString(headerSep + "\n")
	for _, r := range rows {
		fmt.Fprintf(&sb, "│ %-*s │ %-*s │\n", widthFrom, r.From, widthTo, r.To)
	}
	sb.WriteString(bottom + "\n")
	return sb.String()
}
