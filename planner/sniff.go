package planner

import (
	"os"
	"strings"

	"github.com/Nasreen123/tango/transform"
)

// isTangoManaged samples a literate file's content to decide whether
// it was produced by this tool (vs. being ordinary hand-written
// Markdown coexisting in the same tree). A file qualifies if it
// contains at least one fence tagged with languageTag and, for every
// such fence, any playground-URL paragraph immediately following it is
// shaped like the documented form for baseURL/versionParam.
func isTangoManaged(path, languageTag, baseURL, versionParam string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	lines := strings.Split(string(data), "\n")
	fenceOpen := transform.FenceOpenLine(languageTag)

	foundBlock := false
	i := 0
	for i < len(lines) {
		if lines[i] != fenceOpen {
			i++
			continue
		}
		foundBlock = true

		i++
		for i < len(lines) && lines[i] != "```" {
			i++
		}
		if i >= len(lines) {
			// Unterminated fence: malformed, not tango-managed.
			return false, nil
		}
		i++ // past the closing fence

		j := i
		for j < len(lines) && lines[j] == "" {
			j++
		}
		if j < len(lines) && strings.HasPrefix(lines[j], "[playground](") {
			if !transform.LooksLikePlaygroundLink(lines[j], baseURL, versionParam) {
				return false, nil
			}
		}
		i = j
	}

	return foundBlock, nil
}
