package transform

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Nasreen123/tango/tangoerr"
)

// literateToSourceState is the state of the LiterateToSource scanner.
type literateToSourceState int

const (
	mdInProse literateToSourceState = iota
	mdInCode
	mdAwaitURL // just closed a fence; watching for its playground-URL paragraph
)

// LiterateToSource converts a literate Markdown file back into its
// program-source form, preserving prose as comments and code as code,
// and validating embedded playground URLs against the code block they
// follow.
type LiterateToSource struct {
	CommentPrefix          string
	PlaygroundBaseURL      string
	PlaygroundVersionParam string
}

// NewLiterateToSource builds a converter from the pieces of Config
// that govern this direction.
func NewLiterateToSource(commentPrefix, playgroundBaseURL, playgroundVersionParam string) *LiterateToSource {
	return &LiterateToSource{
		CommentPrefix:          commentPrefix,
		PlaygroundBaseURL:      playgroundBaseURL,
		PlaygroundVersionParam: playgroundVersionParam,
	}
}

// Convert reads a literate stream and writes its source form,
// returning any non-fatal warnings (e.g. a playground URL whose
// decoded code didn't match its block) collected along the way.
// Warnings never abort the conversion.
func (c *LiterateToSource) Convert(source io.Reader, target io.Writer) ([]tangoerr.Warning, error) {
	scanner := bufio.NewScanner(source)
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, 16*1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading literate input: %w", err)
	}

	w := bufio.NewWriter(target)
	barePrefix := c.CommentPrefix
	prosePrefix := c.CommentPrefix + " "

	state := mdInProse
	var codeLines []string
	var pendingBlanks int
	var warnings []tangoerr.Warning
	var writeErr error

	emit := func(s string) {
		if writeErr != nil {
			return
		}
		_, writeErr = fmt.Fprintln(w, s)
	}

	// handleContentLine processes a line that is known to be prose or
	// a fence-opener; it is only ever invoked while logically in
	// InProse state (including just after an AwaitUrl re-interpretation).
	handleContentLine := func(line string) {
		switch {
		case line == "":
			emit(barePrefix)
		case strings.HasPrefix(line, "```"):
			state = mdInCode
			codeLines = nil
		default:
			emit(prosePrefix + line)
		}
	}

	flushPendingBlanksAsProse := func() {
		for i := 0; i < pendingBlanks; i++ {
			emit(barePrefix)
		}
		pendingBlanks = 0
	}

	for i := 0; i < len(lines) && writeErr == nil; i++ {
		line := lines[i]

		switch state {
		case mdInCode:
			if line == "```" {
				state = mdAwaitURL
				continue
			}
			emit(line)
			codeLines = append(codeLines, line)

		case mdAwaitURL:
			if line == "" {
				pendingBlanks++
				continue
			}
			if code, ok := extractPlaygroundCode(unwrapPlaygroundLink(line), c.PlaygroundBaseURL, c.PlaygroundVersionParam); ok {
				expect := buildPlaygroundURL(c.PlaygroundBaseURL, c.PlaygroundVersionParam, strings.Join(codeLines, "\n"))
				if expectCode, _ := extractPlaygroundCode(expect, c.PlaygroundBaseURL, c.PlaygroundVersionParam); code != expectCode {
					warnings = append(warnings, tangoerr.Warning{
						Kind:   tangoerr.EncodedURLMismatch,
						Actual: code,
						Expect: expectCode,
					})
				}
				pendingBlanks = 0
				codeLines = nil
				state = mdInProse
				continue
			}
			// Not a playground URL: everything pending, plus this
			// line, is re-interpreted as ordinary prose content.
			flushPendingBlanksAsProse()
			codeLines = nil
			state = mdInProse
			handleContentLine(line)

		case mdInProse:
			handleContentLine(line)
		}
	}

	if state == mdAwaitURL {
		flushPendingBlanksAsProse()
	}

	if writeErr != nil {
		return warnings, writeErr
	}
	if err := w.Flush(); err != nil {
		return warnings, err
	}
	return warnings, nil
}
