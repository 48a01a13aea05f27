package report

import (
	"io"

	"github.com/goccy/go-json"

	"github.com/broady/typeormlint"
)

// JSON writes {"diagnostics": [...], "summary": {...}}.
type JSON struct {
	Indent string
}

type jsonReport struct {
	Diagnostics []typeormlint.Diagnostic `json:"diagnostics"`
	Summary     Summary                  `json:"summary"`
}

func (j *JSON) Report(w io.Writer, diags []typeormlint.Diagnostic) error {
	if diags == nil {
		diags = []typeormlint.Diagnostic{}
	}
	enc := json.NewEncoder(w)
	if j.Indent != "" {
		enc.SetIndent("", j.Indent)
	}
	return enc.Encode(jsonReport{Diagnostics: diags, Summary: Summarize(diags)})
}
