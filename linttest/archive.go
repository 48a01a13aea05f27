package linttest

import (
	"bufio"
	"path"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/broady/typeormlint"
)

// LoadArchive reads cases from a txtar archive. The archive comment is
// an option query (driver=mysql&specifyUndefined=always) applied to all
// cases; lines starting with # are ignored. Sections are:
//
//	valid/NAME.ts          a source that must not be reported
//	invalid/NAME.ts        a source that must be reported
//	invalid/NAME.errors    one "messageId [line]" per expected diagnostic
//	invalid/NAME.output    the source after direct fixes
//	invalid/NAME.suggest.E.S
//	                       the source after suggestion S of diagnostic E
//	*/NAME.options         an option query for that case only
//
// It returns the archive-wide options and the cases.
func LoadArchive(t *testing.T, file string) (typeormlint.Options, Cases) {
	t.Helper()
	ar, err := txtar.ParseFile(file)
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	opts := parseOptions(t, file, string(ar.Comment))

	sections := make(map[string]string, len(ar.Files))
	for _, f := range ar.Files {
		sections[f.Name] = string(f.Data)
	}

	var cases Cases
	for _, f := range ar.Files {
		dir, base := path.Split(f.Name)
		name, ok := strings.CutSuffix(base, ".ts")
		if !ok {
			continue
		}
		key := dir + name
		caseOpts := parseOptions(t, f.Name, sections[key+".options"])
		switch dir {
		case "valid/":
			cases.Valid = append(cases.Valid, Valid{Name: name, Code: string(f.Data), Options: caseOpts})
		case "invalid/":
			tc := Invalid{
				Name:    name,
				Code:    string(f.Data),
				Options: caseOpts,
				Errors:  parseErrors(t, f.Name, sections[key+".errors"]),
				Output:  sections[key+".output"],
			}
			attachSuggestions(t, key, tc.Errors, sections)
			cases.Invalid = append(cases.Invalid, tc)
		default:
			t.Fatalf("%s: %s: source must be under valid/ or invalid/", file, f.Name)
		}
	}
	return opts, cases
}

func parseOptions(t *testing.T, where, text string) typeormlint.Options {
	t.Helper()
	var query []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		query = append(query, line)
	}
	opts, err := typeormlint.ParseOptions(strings.Join(query, "&"))
	if err != nil {
		t.Fatalf("%s: options: %v", where, err)
	}
	return opts
}

func parseErrors(t *testing.T, where, text string) []Error {
	t.Helper()
	var errs []Error
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		e := Error{MessageID: typeormlint.MessageID(fields[0])}
		if len(fields) > 1 {
			line, err := strconv.Atoi(fields[1])
			if err != nil {
				t.Fatalf("%s: bad line %q", where, fields[1])
			}
			e.Line = line
		}
		errs = append(errs, e)
	}
	if len(errs) == 0 {
		t.Fatalf("%s: invalid case has no .errors section", where)
	}
	return errs
}

func attachSuggestions(t *testing.T, key string, errs []Error, sections map[string]string) {
	t.Helper()
	for i := range errs {
		for j := 0; ; j++ {
			out, ok := sections[key+".suggest."+strconv.Itoa(i)+"."+strconv.Itoa(j)]
			if !ok {
				break
			}
			errs[i].Suggestions = append(errs[i].Suggestions, out)
		}
	}
}
