package tsast

import (
	"fmt"
	"sort"
)

// Edit replaces the bytes covered by Span with Text.
// An empty span is an insertion.
type Edit struct {
	Span Span   `json:"span"`
	Text string `json:"text"`
}

// Replace returns an edit replacing span with text.
func Replace(span Span, text string) Edit { return Edit{Span: span, Text: text} }

// Insert returns an edit inserting text at offset.
func Insert(offset int, text string) Edit { return Edit{Span: Span{offset, offset}, Text: text} }

// Remove returns an edit deleting span.
func Remove(span Span) Edit { return Edit{Span: span} }

// ApplyEdits returns src with edits applied. Edits may be given in any
// order but must not overlap.
func ApplyEdits(src []byte, edits []Edit) ([]byte, error) {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Span.Start < sorted[j].Span.Start })
	for i, e := range sorted {
		if e.Span.Start < 0 || e.Span.End > len(src) || e.Span.Start > e.Span.End {
			return nil, fmt.Errorf("edit %v out of range for %d bytes", e.Span, len(src))
		}
		if i > 0 && sorted[i-1].Span.Overlaps(e.Span) {
			return nil, fmt.Errorf("edits %v and %v overlap", sorted[i-1].Span, e.Span)
		}
	}
	out := make([]byte, 0, len(src))
	pos := 0
	for _, e := range sorted {
		out = append(out, src[pos:e.Span.Start]...)
		out = append(out, e.Text...)
		pos = e.Span.End
	}
	return append(out, src[pos:]...), nil
}
