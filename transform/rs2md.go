package transform

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// sourceToLiterateState is the state of the SourceToLiterate line
// scanner: InProse while emitting prose text, InCode while inside an
// open fence.
type sourceToLiterateState int

const (
	rsInProse sourceToLiterateState = iota
	rsInCode
)

// SourceToLiterate converts a program file, using a line-comment
// prefix to mark prose lines, into its literate Markdown form, writing
// a "play this code" URL immediately after each fenced block it
// closes.
type SourceToLiterate struct {
	CommentPrefix          string
	SourceLanguageTag      string
	PlaygroundBaseURL      string
	PlaygroundVersionParam string
}

// NewSourceToLiterate builds a converter from the pieces of Config
// that govern this direction.
func NewSourceToLiterate(commentPrefix, languageTag, playgroundBaseURL, playgroundVersionParam string) *SourceToLiterate {
	return &SourceToLiterate{
		CommentPrefix:          commentPrefix,
		SourceLanguageTag:      languageTag,
		PlaygroundBaseURL:      playgroundBaseURL,
		PlaygroundVersionParam: playgroundVersionParam,
	}
}

// Convert reads a source stream and writes its literate form.
func (c *SourceToLiterate) Convert(source io.Reader, target io.Writer) error {
	scanner := bufio.NewScanner(source)
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, 16*1024*1024)

	w := bufio.NewWriter(target)
	state := rsInProse
	var codeLines []string

	barePrefix := c.CommentPrefix
	prosePrefix := c.CommentPrefix + " "

	closeFence := func() error {
		if _, err := fmt.Fprintln(w, "```"); err != nil {
			return err
		}
		if len(codeLines) > 0 {
			url := buildPlaygroundURL(c.PlaygroundBaseURL, c.PlaygroundVersionParam, strings.Join(codeLines, "\n"))
			if _, err := fmt.Fprintf(w, "\n[playground](%s)\n", url); err != nil {
				return err
			}
		}
		codeLines = nil
		return nil
	}

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case line == "":
			if state == rsInCode {
				codeLines = append(codeLines, line)
			}
			if _, err := fmt.Fprintln(w, ""); err != nil {
				return err
			}

		case line == barePrefix || strings.HasPrefix(line, prosePrefix):
			if state == rsInCode {
				if err := closeFence(); err != nil {
					return err
				}
				state = rsInProse
			}
			text := ""
			if line != barePrefix {
				text = line[len(prosePrefix):]
			}
			if _, err := fmt.Fprintln(w, text); err != nil {
				return err
			}

		default:
			if state == rsInProse {
				if _, err := fmt.Fprintf(w, "```%s\n", c.SourceLanguageTag); err != nil {
					return err
				}
				state = rsInCode
			}
			codeLines = append(codeLines, line)
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	if state == rsInCode {
		if err := closeFence(); err != nil {
			return err
		}
	}

	return w.Flush()
}
