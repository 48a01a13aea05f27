// Package tsast is a small syntax model of TypeScript class declarations,
// covering what is needed to compare ORM decorator metadata with property
// type annotations.
//
// Nodes carry byte spans into File.Source so that diagnostics and fixes
// can address the original text.
package tsast

// File is one parsed source file.
type File struct {
	Path     string
	Source   []byte
	Imports  []*Import
	Classes  []*Class
	Aliases  []*TypeAlias
	Comments []*Comment
	// TypeNames lists the classes, interfaces and enums declared in the file.
	TypeNames []string

	// SyntaxErrors is true if the parser recovered from malformed input.
	SyntaxErrors bool

	lines *LineIndex
}

// Text returns the source text covered by span.
func (f *File) Text(span Span) string {
	if span.Start < 0 || span.End > len(f.Source) || span.Start > span.End {
		return ""
	}
	return string(f.Source[span.Start:span.End])
}

// Position returns the line and column of offset.
func (f *File) Position(offset int) Position {
	if f.lines == nil {
		f.lines = NewLineIndex(f.Source)
	}
	return f.lines.Position(offset)
}

// ImportsFrom returns the import declarations whose module is module.
func (f *File) ImportsFrom(module string) []*Import {
	var out []*Import
	for _, imp := range f.Imports {
		if imp.Module == module {
			out = append(out, imp)
		}
	}
	return out
}

// Import is an ES module import declaration.
type Import struct {
	Module     string
	TypeOnly   bool
	Specifiers []*ImportSpecifier
	Span       Span
}

// NamespaceImport is the Imported value of an `* as ns` specifier.
const NamespaceImport = "*"

// DefaultImport is the Imported value of a default import.
const DefaultImport = "default"

// ImportSpecifier binds Imported from the module to the local name Local.
type ImportSpecifier struct {
	Imported string
	Local    string
	Span     Span
}

// Named returns the named (non-default, non-namespace) specifiers.
func (imp *Import) Named() []*ImportSpecifier {
	var out []*ImportSpecifier
	for _, s := range imp.Specifiers {
		if s.Imported != NamespaceImport && s.Imported != DefaultImport {
			out = append(out, s)
		}
	}
	return out
}

// Class is a class declaration and its fields.
type Class struct {
	Name       string
	Properties []*Property
	Span       Span
}

// Property is a class field declaration.
type Property struct {
	// Name is empty for computed or non-identifier keys.
	Name       string
	ClassName  string
	Decorators []*Decorator
	// Type is nil when the field has no annotation.
	Type     TypeNode
	Optional bool
	Span     Span
}

// Decorator is an @-expression on a property.
type Decorator struct {
	// Name is the callee as written, e.g. "Column" or "typeorm.Column".
	Name string
	// Call is false for bare decorators such as @Column.
	Call bool
	Args []Expr
	// ArgsSpan covers the argument list including parentheses.
	ArgsSpan Span
	Span     Span
}

// TypeAlias is a `type Name<Params> = ...` declaration.
type TypeAlias struct {
	Name   string
	Params []string
	Type   TypeNode
	Span   Span
}

// Comment is a line or block comment with delimiters included.
type Comment struct {
	Text string
	Span Span
}

// Symbol is a semantic resolution result.
type Symbol struct {
	// Name is the declared name of the resolved symbol.
	Name string
	// Type is the aliased type for type aliases, nil for classes,
	// interfaces and enums.
	Type TypeNode
}

// Checker resolves type references beyond their syntax.
// Implementations are optional; callers must work without one.
type Checker interface {
	// ResolveReference returns the symbol ref names, if known.
	ResolveReference(ref *Reference) (Symbol, bool)
}
