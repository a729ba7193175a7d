package report

import "encoding/json"

// JSONFormatter renders a Summary as indented JSON.
type JSONFormatter struct{}

// NewJSONFormatter returns a JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

type transformLineJSON struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type summaryJSON struct {
	DryRun          bool                `json:"dry_run"`
	ToLiterate      []transformLineJSON `json:"to_literate"`
	ToSource        []transformLineJSON `json:"to_source"`
	SkippedLiterate []string            `json:"skipped_literate"`
	Warnings        []string            `json:"warnings"`
}

// Format renders s as JSON. Marshaling a well-formed Summary cannot
// fail, so a failure here indicates a bug and is rendered inline
// rather than silently dropped.
func (jf *JSONFormatter) Format(s Summary) string {
	out := summaryJSON{
		DryRun:          s.DryRun,
		SkippedLiterate: s.SkippedLiterate,
		Warnings:        s.Warnings,
	}
	for _, t := range s.ToLiterate {
		out.ToLiterate = append(out.ToLiterate, transformLineJSON{From: t.From, To: t.To})
	}
	for _, t := range s.ToSource {
		out.ToSource = append(out.ToSource, transformLineJSON{From: t.From, To: t.To})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return `{"error": "failed to marshal report: ` + err.Error() + `"}`
	}
	return string(data) + "\n"
}
