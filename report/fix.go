package report

import (
	"github.com/broady/typeormlint"
	"github.com/broady/typeormlint/tsast"
)

// Apply splices edits into src. Overlapping edits are an error.
func Apply(src []byte, edits []typeormlint.Edit) ([]byte, error) {
	return tsast.ApplyEdits(src, edits)
}

// FixSet is the non-overlapping selection of edits for one file.
type FixSet struct {
	Edits   []typeormlint.Edit
	Applied int
	Skipped int
}

// SelectFixes picks the edits to apply for each file. A diagnostic
// contributes its direct fix, or else its suggestion at index
// suggestion (none when suggestion < 0). Diagnostics are taken in
// order and a group whose edits overlap an already accepted edit is
// skipped as a whole; running the linter again picks it up.
func SelectFixes(diags []typeormlint.Diagnostic, suggestion int) map[string]*FixSet {
	out := make(map[string]*FixSet)
	for _, d := range diags {
		group := d.Fix
		if len(group) == 0 && suggestion >= 0 && suggestion < len(d.Suggestions) {
			group = d.Suggestions[suggestion].Edits
		}
		if len(group) == 0 {
			continue
		}
		set := out[d.File]
		if set == nil {
			set = &FixSet{}
			out[d.File] = set
		}
		if overlapsAny(set.Edits, group) {
			set.Skipped++
			continue
		}
		set.Edits = append(set.Edits, group...)
		set.Applied++
	}
	return out
}

func overlapsAny(accepted, group []typeormlint.Edit) bool {
	for _, e := range group {
		for _, a := range accepted {
			if a.Span.Overlaps(e.Span) {
				return true
			}
		}
	}
	return false
}
