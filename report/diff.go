package report

import (
	"bytes"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sourcegraph/go-diff/diff"
)

// DiffContext is the number of unchanged lines around each hunk.
const DiffContext = 3

// Diff returns a unified diff from before to after, labelled with
// path. It returns nil when the contents are equal.
func Diff(path string, before, after []byte) ([]byte, error) {
	if bytes.Equal(before, after) {
		return nil, nil
	}
	a, b := splitLines(string(before)), splitLines(string(after))
	fd := &diff.FileDiff{OrigName: "a/" + path, NewName: "b/" + path}
	for _, group := range difflib.NewMatcher(a, b).GetGroupedOpCodes(DiffContext) {
		fd.Hunks = append(fd.Hunks, hunk(group, a, b))
	}
	return diff.PrintFileDiff(fd)
}

func hunk(group []difflib.OpCode, a, b []string) *diff.Hunk {
	first, last := group[0], group[len(group)-1]
	h := &diff.Hunk{
		OrigStartLine: startLine(first.I1, last.I2),
		OrigLines:     int32(last.I2 - first.I1),
		NewStartLine:  startLine(first.J1, last.J2),
		NewLines:      int32(last.J2 - first.J1),
	}
	var body bytes.Buffer
	for _, op := range group {
		switch op.Tag {
		case 'e':
			writeLines(&body, ' ', a[op.I1:op.I2])
		case 'd':
			writeLines(&body, '-', a[op.I1:op.I2])
		case 'i':
			writeLines(&body, '+', b[op.J1:op.J2])
		case 'r':
			writeLines(&body, '-', a[op.I1:op.I2])
			writeLines(&body, '+', b[op.J1:op.J2])
		}
	}
	h.Body = body.Bytes()
	return h
}

// startLine is 1-based, or the line before an empty range.
func startLine(from, to int) int32 {
	if from == to {
		return int32(from)
	}
	return int32(from + 1)
}

func writeLines(buf *bytes.Buffer, prefix byte, lines []string) {
	for _, l := range lines {
		buf.WriteByte(prefix)
		buf.WriteString(l)
		if !strings.HasSuffix(l, "\n") {
			buf.WriteByte('\n')
		}
	}
}

func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
