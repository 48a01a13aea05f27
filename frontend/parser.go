// Package frontend parses TypeScript source into the tsast model using
// tree-sitter.
//
// The parser is error-tolerant: malformed input yields a partial File
// with SyntaxErrors set rather than an error.
package frontend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/broady/typeormlint/tsast"
)

var (
	// ErrFileTooLarge is returned when input exceeds the maximum file size.
	ErrFileTooLarge = errors.New("file exceeds maximum size limit")

	// ErrInvalidContent is returned when input is not valid UTF-8.
	ErrInvalidContent = errors.New("invalid content")
)

const (
	// DefaultMaxFileSize is the default input limit.
	DefaultMaxFileSize = 10 * 1024 * 1024

	// WarnFileSize is the size above which a warning is logged.
	WarnFileSize = 1024 * 1024
)

// Option configures a Parser.
type Option func(*Parser)

// WithMaxFileSize sets the largest input Parse accepts.
func WithMaxFileSize(bytes int64) Option {
	return func(p *Parser) {
		if bytes > 0 {
			p.maxFileSize = bytes
		}
	}
}

// WithLogger sets the logger used for warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Parser converts TypeScript source to tsast.File values.
// It is safe for concurrent use.
type Parser struct {
	maxFileSize int64
	logger      *slog.Logger
}

// New returns a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{
		maxFileSize: DefaultMaxFileSize,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses content. Files ending in .tsx use the TSX grammar.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*tsast.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse canceled before start: %w", err)
	}
	if int64(len(content)) > p.maxFileSize {
		return nil, fmt.Errorf("%w: size %d exceeds limit %d", ErrFileTooLarge, len(content), p.maxFileSize)
	}
	if len(content) > WarnFileSize {
		p.logger.Warn("parsing large file",
			slog.String("file", path),
			slog.Int("size_bytes", len(content)))
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: content is not valid UTF-8", ErrInvalidContent)
	}

	// tree-sitter parsers are not safe for concurrent use; one per call.
	parser := sitter.NewParser()
	if strings.HasSuffix(path, ".tsx") {
		parser.SetLanguage(tsx.GetLanguage())
	} else {
		parser.SetLanguage(typescript.GetLanguage())
	}

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("tree-sitter returned nil root node for %s", path)
	}

	b := &builder{src: content, file: &tsast.File{Path: path, Source: content}}
	b.file.SyntaxErrors = root.HasError()
	b.walk(root, 0)
	return b.file, nil
}

// ParseSource parses content with a default Parser.
func ParseSource(ctx context.Context, path string, content []byte) (*tsast.File, error) {
	return New().Parse(ctx, path, content)
}

// maxWalkDepth bounds recursion on pathological nesting.
const maxWalkDepth = 256

type builder struct {
	src  []byte
	file *tsast.File
}

func (b *builder) text(n *sitter.Node) string {
	return string(b.src[n.StartByte():n.EndByte()])
}

func span(n *sitter.Node) tsast.Span {
	return tsast.Span{Start: int(n.StartByte()), End: int(n.EndByte())}
}

func (b *builder) walk(n *sitter.Node, depth int) {
	if depth > maxWalkDepth {
		return
	}
	switch n.Type() {
	case "comment":
		b.file.Comments = append(b.file.Comments, &tsast.Comment{Text: b.text(n), Span: span(n)})
		return
	case "import_statement":
		if imp := b.importStatement(n); imp != nil {
			b.file.Imports = append(b.file.Imports, imp)
		}
		return
	case "class_declaration", "abstract_class_declaration", "class":
		b.class(n, depth)
		return
	case "type_alias_declaration":
		b.typeAlias(n)
		return
	case "interface_declaration", "enum_declaration":
		if name := n.ChildByFieldName("name"); name != nil {
			b.file.TypeNames = append(b.file.TypeNames, b.text(name))
		}
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil {
			b.walk(c, depth+1)
		}
	}
}

func (b *builder) importStatement(n *sitter.Node) *tsast.Import {
	imp := &tsast.Import{Span: span(n)}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "type":
			imp.TypeOnly = true
		case "import_clause":
			b.importClause(c, imp)
		case "string":
			imp.Module = b.stringValue(c)
		}
	}
	if src := n.ChildByFieldName("source"); src != nil {
		imp.Module = b.stringValue(src)
	}
	if imp.Module == "" {
		return nil
	}
	return imp
}

func (b *builder) importClause(n *sitter.Node, imp *tsast.Import) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "identifier":
			imp.Specifiers = append(imp.Specifiers, &tsast.ImportSpecifier{
				Imported: tsast.DefaultImport, Local: b.text(c), Span: span(c),
			})
		case "namespace_import":
			for j := 0; j < int(c.NamedChildCount()); j++ {
				if id := c.NamedChild(j); id.Type() == "identifier" {
					imp.Specifiers = append(imp.Specifiers, &tsast.ImportSpecifier{
						Imported: tsast.NamespaceImport, Local: b.text(id), Span: span(c),
					})
				}
			}
		case "named_imports":
			for j := 0; j < int(c.NamedChildCount()); j++ {
				spec := c.NamedChild(j)
				if spec.Type() != "import_specifier" {
					continue
				}
				name := spec.ChildByFieldName("name")
				if name == nil {
					continue
				}
				s := &tsast.ImportSpecifier{Imported: b.text(name), Local: b.text(name), Span: span(spec)}
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					s.Local = b.text(alias)
				}
				imp.Specifiers = append(imp.Specifiers, s)
			}
		}
	}
}

func (b *builder) typeAlias(n *sitter.Node) {
	name := n.ChildByFieldName("name")
	value := n.ChildByFieldName("value")
	if name == nil || value == nil {
		return
	}
	alias := &tsast.TypeAlias{Name: b.text(name), Type: b.typeNode(value, 0), Span: span(n)}
	if params := n.ChildByFieldName("type_parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			p := params.NamedChild(i)
			if p.Type() != "type_parameter" {
				continue
			}
			if pn := p.ChildByFieldName("name"); pn != nil {
				alias.Params = append(alias.Params, b.text(pn))
			}
		}
	}
	b.file.Aliases = append(b.file.Aliases, alias)
}

func (b *builder) class(n *sitter.Node, depth int) {
	cls := &tsast.Class{Span: span(n)}
	if name := n.ChildByFieldName("name"); name != nil {
		cls.Name = b.text(name)
		b.file.TypeNames = append(b.file.TypeNames, cls.Name)
	}
	body := n.ChildByFieldName("body")
	if body == nil {
		return
	}
	var pending []*tsast.Decorator
	for i := 0; i < int(body.NamedChildCount()); i++ {
		c := body.NamedChild(i)
		switch c.Type() {
		case "comment":
			b.walk(c, depth+1)
		case "decorator":
			// Some grammar versions attach member decorators to the body.
			if d := b.decorator(c); d != nil {
				pending = append(pending, d)
			}
		case "public_field_definition":
			prop := b.property(c, cls.Name)
			prop.Decorators = append(pending, prop.Decorators...)
			if len(pending) > 0 {
				prop.Span.Start = pending[0].Span.Start
			}
			pending = nil
			cls.Properties = append(cls.Properties, prop)
		default:
			pending = nil
			b.walk(c, depth+1)
		}
	}
	b.file.Classes = append(b.file.Classes, cls)
}

func (b *builder) property(n *sitter.Node, className string) *tsast.Property {
	prop := &tsast.Property{ClassName: className, Span: span(n)}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "decorator":
			if d := b.decorator(c); d != nil {
				prop.Decorators = append(prop.Decorators, d)
			}
		case "comment":
			b.walk(c, 0)
		case "property_identifier", "private_property_identifier":
			prop.Name = b.text(c)
		case "?":
			prop.Optional = true
		case "type_annotation":
			prop.Type = b.annotation(c)
		}
	}
	return prop
}

func (b *builder) annotation(n *sitter.Node) tsast.TypeNode {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() != "comment" {
			return b.typeNode(c, 0)
		}
	}
	return nil
}

func (b *builder) decorator(n *sitter.Node) *tsast.Decorator {
	var expr *sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() != "comment" {
			expr = c
			break
		}
	}
	if expr == nil {
		return nil
	}
	d := &tsast.Decorator{Span: span(n)}
	switch expr.Type() {
	case "identifier", "member_expression":
		d.Name = b.text(expr)
	case "call_expression":
		fn := expr.ChildByFieldName("function")
		args := expr.ChildByFieldName("arguments")
		if fn == nil || args == nil {
			return nil
		}
		d.Name = b.text(fn)
		d.Call = true
		d.ArgsSpan = span(args)
		for i := 0; i < int(args.NamedChildCount()); i++ {
			if c := args.NamedChild(i); c.Type() != "comment" {
				d.Args = append(d.Args, b.expr(c, 0))
			}
		}
	default:
		return nil
	}
	return d
}

// stringValue returns the contents of a string node without quotes.
func (b *builder) stringValue(n *sitter.Node) string {
	var sb strings.Builder
	found := false
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "string_fragment":
			sb.WriteString(b.text(c))
			found = true
		case "escape_sequence":
			sb.WriteString(unescape(b.text(c)))
			found = true
		}
	}
	if found {
		return sb.String()
	}
	raw := b.text(n)
	if len(raw) >= 2 {
		return raw[1 : len(raw)-1]
	}
	return ""
}

func unescape(seq string) string {
	if len(seq) < 2 {
		return seq
	}
	switch seq[1] {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case '0':
		return "\x00"
	default:
		return seq[1:]
	}
}
