package typeormlint

import (
	"strings"

	"github.com/broady/typeormlint/tsast"
)

const (
	directiveDisable         = "typeormlint-disable"
	directiveDisableNextLine = "typeormlint-disable-next-line"
)

// ruleSet is a set of rule names; nil means every rule.
type ruleSet map[string]bool

func (s ruleSet) has(rule string) bool { return s == nil || s[rule] }

// suppressions are the disable directives found in one file's comments.
type suppressions struct {
	file     bool
	fileSet  ruleSet
	nextLine map[int]ruleSet
}

// parseSuppressions reads directives from f.Comments.
//
//	// typeormlint-disable-next-line [rule, ...] [-- reason]
//	/* typeormlint-disable [rule, ...] */
//
// The file-wide form only counts before the first import, class or type
// alias.
func parseSuppressions(f *tsast.File) suppressions {
	s := suppressions{nextLine: make(map[int]ruleSet)}
	top := firstDeclaration(f)
	for _, c := range f.Comments {
		body := commentBody(c.Text)
		switch {
		case strings.HasPrefix(body, directiveDisableNextLine):
			rules, ok := directiveRules(body[len(directiveDisableNextLine):])
			if !ok {
				continue
			}
			line := f.Position(c.Span.End).Line + 1
			s.nextLine[line] = mergeRules(s.nextLine[line], rules, hasLine(s.nextLine, line))
		case strings.HasPrefix(body, directiveDisable):
			if c.Span.Start > top {
				continue
			}
			rules, ok := directiveRules(body[len(directiveDisable):])
			if !ok {
				continue
			}
			s.fileSet = mergeRules(s.fileSet, rules, s.file)
			s.file = true
		}
	}
	return s
}

func hasLine(m map[int]ruleSet, line int) bool {
	_, ok := m[line]
	return ok
}

// mergeRules unions two sets; present reports whether cur is a real
// entry, since a nil ruleSet means all rules.
func mergeRules(cur, add ruleSet, present bool) ruleSet {
	if !present {
		return add
	}
	if cur == nil || add == nil {
		return nil
	}
	for r := range add {
		cur[r] = true
	}
	return cur
}

// directiveRules parses the text after a directive name. ok is false
// when the directive name continues (e.g. "typeormlint-disabled").
func directiveRules(rest string) (ruleSet, bool) {
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return nil, false
	}
	if before, _, found := strings.Cut(rest, " -- "); found {
		rest = before
	}
	fields := strings.FieldsFunc(rest, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	if len(fields) == 0 {
		return nil, true
	}
	set := make(ruleSet, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set, true
}

func commentBody(text string) string {
	switch {
	case strings.HasPrefix(text, "//"):
		text = text[2:]
	case strings.HasPrefix(text, "/*"):
		text = strings.TrimSuffix(text[2:], "*/")
	}
	return strings.TrimSpace(text)
}

func firstDeclaration(f *tsast.File) int {
	first := len(f.Source)
	for _, imp := range f.Imports {
		first = min(first, imp.Span.Start)
	}
	for _, c := range f.Classes {
		first = min(first, c.Span.Start)
	}
	for _, a := range f.Aliases {
		first = min(first, a.Span.Start)
	}
	return first
}

func (s suppressions) suppressed(d Diagnostic) bool {
	if s.file && s.fileSet.has(d.Rule) {
		return true
	}
	if rules, ok := s.nextLine[d.Pos.Line]; ok && rules.has(d.Rule) {
		return true
	}
	return false
}

// disablesAll reports whether the file opts out of every rule.
func (s suppressions) disablesAll() bool { return s.file && s.fileSet == nil }
