package typeormlint

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/broady/typeormlint/tsast"
)

// Severity is how a rule's diagnostics are treated.
type Severity int

const (
	SeverityOff Severity = iota
	SeverityWarn
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityOff:
		return "off"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// ParseSeverity parses "off", "warn" or "error". "warning" is accepted
// for "warn".
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "0":
		return SeverityOff, nil
	case "warn", "warning", "1":
		return SeverityWarn, nil
	case "error", "2":
		return SeverityError, nil
	}
	return SeverityOff, Errorf(CodeConfigInvalid, "invalid severity %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(b []byte) error {
	v, err := ParseSeverity(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Edit is a text replacement in the linted file.
type Edit = tsast.Edit

// Suggestion is an optional fix the user picks explicitly.
type Suggestion struct {
	MessageID MessageID         `json:"messageId"`
	Message   string            `json:"message"`
	Data      map[string]string `json:"data,omitempty"`
	Edits     []Edit            `json:"edits"`
}

// Diagnostic is a single finding.
type Diagnostic struct {
	File      string            `json:"file"`
	Rule      string            `json:"rule"`
	MessageID MessageID         `json:"messageId"`
	Message   string            `json:"message"`
	Data      map[string]string `json:"data,omitempty"`
	Severity  Severity          `json:"severity"`
	Span      tsast.Span        `json:"span"`
	Pos       tsast.Position    `json:"pos"`
	End       tsast.Position    `json:"end"`

	// Fix is applied automatically by the fix command.
	Fix         []Edit       `json:"fix,omitempty"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%s: %s (%s)", d.File, d.Pos, d.Message, d.Rule)
}

// SortDiagnostics orders diagnostics by file, span start, rule and
// message id.
func SortDiagnostics(ds []Diagnostic) {
	sort.SliceStable(ds, func(i, j int) bool {
		a, b := ds[i], ds[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Span.Start != b.Span.Start {
			return a.Span.Start < b.Span.Start
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		return a.MessageID < b.MessageID
	})
}

// MessageID identifies a diagnostic or suggestion message template.
type MessageID string

const (
	MsgColumnMismatch   MessageID = "typescript_typeorm_column_mismatch"
	MsgColumnSuggestion MessageID = "typescript_typeorm_column_suggestion"

	MsgRelationMissing                   MessageID = "typescript_typeorm_relation_missing"
	MsgRelationMismatch                  MessageID = "typescript_typeorm_relation_mismatch"
	MsgRelationArrayToMany               MessageID = "typescript_typeorm_relation_array_to_many"
	MsgRelationSuggestion                MessageID = "typescript_typeorm_relation_suggestion"
	MsgRelationNullableByDefault         MessageID = "typescript_typeorm_relation_nullable_by_default"
	MsgRelationNullableByDefaultSuggest  MessageID = "typescript_typeorm_relation_nullable_by_default_suggestion"
	MsgRelationSpecifyRelationAlways     MessageID = "typescript_typeorm_relation_specify_relation_always"
	MsgRelationSpecifyUndefinedAlways    MessageID = "typescript_typeorm_relation_specify_undefined_always"
	MsgMissingNullability                MessageID = "typescript_typeorm_missing_nullability"
	MsgSuperfluousNullability            MessageID = "typescript_typeorm_superfluous_nullability"
	MsgSetNullable                       MessageID = "typescript_typeorm_set_nullable"
	MsgRemoveNullable                    MessageID = "typescript_typeorm_remove_nullable"
	MsgExpectedRelation                  MessageID = "expectedRelation"
	MsgPreferRelation                    MessageID = "preferRelation"
)

var messageTemplates = map[MessageID]string{
	MsgColumnMismatch:   "Type of {{ propertyName }}{{ className }} is not matching the TypeORM column type{{ expectedValue }}.",
	MsgColumnSuggestion: "Change the type of {{ propertyName }} to {{ expectedValue }}.",

	MsgRelationMissing:                  "Relation {{ relation }} of {{ propertyName }}{{ className }} does not have an arrow function with the relation type.",
	MsgRelationMismatch:                 "Type of {{ propertyName }}{{ className }} is not consistent with the TypeORM relation type {{ relation }}{{ expectedValue }}.",
	MsgRelationArrayToMany:              "{{ relation }} relations return multiple entities. Type of {{ propertyName }}{{ className }} should be an array {{ expectedValue }}.",
	MsgRelationSuggestion:               "Change the type of {{ propertyName }} to {{ expectedValue }}.",
	MsgRelationNullableByDefault:        "TypeORM relations are nullable by default. Type of {{ propertyName }}{{ className }} should be nullable{{ expectedValue }}.",
	MsgRelationNullableByDefaultSuggest: "Make the {{ relation }} relation nullable: false.",
	MsgRelationSpecifyRelationAlways:    "To avoid circular dependencies, wrap your type of {{ propertyName }} with `Relation`{{ expectedValue }}.",
	MsgRelationSpecifyUndefinedAlways:   "TypeORM relations are undefined by default. Type of {{ propertyName }} should be undefined{{ expectedValue }}.",

	MsgMissingNullability:     "The nullability of {{ propertyName }}{{ className }} should be defined{{ expectedValue }}.",
	MsgSuperfluousNullability: "The nullability of {{ propertyName }}{{ className }} should not be defined, {{ value }} is the default.",
	MsgSetNullable:            "Set nullable: {{ value }} on {{ propertyName }}.",
	MsgRemoveNullable:         "Remove nullable from {{ propertyName }}.",

	MsgExpectedRelation: "When importing a relation decorator, the Relation<...>-wrapper is also expected to be imported.",
	MsgPreferRelation:   "Better use Relation<...>-wrapper for relation types.",
}

// Template returns the message template of id.
func Template(id MessageID) (string, bool) {
	t, ok := messageTemplates[id]
	return t, ok
}

// RenderMessage fills the {{ key }} placeholders of id's template.
// Missing keys render empty. Unknown ids render as the id itself.
func RenderMessage(id MessageID, data map[string]string) string {
	tmpl, ok := messageTemplates[id]
	if !ok {
		return string(id)
	}
	return fasttemplate.ExecuteFuncString(tmpl, "{{", "}}", func(w io.Writer, tag string) (int, error) {
		return io.WriteString(w, data[strings.TrimSpace(tag)])
	})
}
