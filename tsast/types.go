package tsast

// TypeKind identifies the category of a type-annotation node.
type TypeKind int

const (
	KindKeyword         TypeKind = iota // Predefined keyword type (string, number, null, ...)
	KindReference                       // Named type reference, possibly generic
	KindArray                           // T[]
	KindUnion                           // T1 | T2 | ...
	KindLiteral                         // 'a', 1, true
	KindTemplateLiteral                 // `prefix-${string}`
	KindParenthesized                   // (T)
	KindOtherType                       // Anything else: object literals, functions, intersections
)

// String returns the string representation of the type kind.
func (k TypeKind) String() string {
	switch k {
	case KindKeyword:
		return "Keyword"
	case KindReference:
		return "Reference"
	case KindArray:
		return "Array"
	case KindUnion:
		return "Union"
	case KindLiteral:
		return "Literal"
	case KindTemplateLiteral:
		return "TemplateLiteral"
	case KindParenthesized:
		return "Parenthesized"
	case KindOtherType:
		return "Other"
	default:
		return "Unknown"
	}
}

// TypeNode is a node of a type annotation.
type TypeNode interface {
	// Kind returns the node kind for type switching.
	Kind() TypeKind

	// Span returns the source range of the node.
	Span() Span

	// Ensure only types in this package can implement TypeNode.
	sealed()
}

// typeBase carries the span shared by every type node.
type typeBase struct {
	Pos Span
}

func (b typeBase) Span() Span { return b.Pos }
func (typeBase) sealed()      {}

// Predefined keyword type names.
const (
	KeywordString    = "string"
	KeywordNumber    = "number"
	KeywordBigInt    = "bigint"
	KeywordBoolean   = "boolean"
	KeywordNull      = "null"
	KeywordUndefined = "undefined"
	KeywordAny       = "any"
	KeywordUnknown   = "unknown"
	KeywordNever     = "never"
	KeywordVoid      = "void"
	KeywordObject    = "object"
	KeywordSymbol    = "symbol"
)

var keywords = map[string]bool{
	KeywordString: true, KeywordNumber: true, KeywordBigInt: true, KeywordBoolean: true,
	KeywordNull: true, KeywordUndefined: true, KeywordAny: true, KeywordUnknown: true,
	KeywordNever: true, KeywordVoid: true, KeywordObject: true, KeywordSymbol: true,
}

// IsKeyword reports whether name is a predefined keyword type.
func IsKeyword(name string) bool { return keywords[name] }

// Keyword is a predefined type such as string, null or undefined.
type Keyword struct {
	typeBase
	Name string
}

func (*Keyword) Kind() TypeKind { return KindKeyword }

// Reference names another type. Name may be qualified ("ns.Type").
type Reference struct {
	typeBase
	Name     string
	TypeArgs []TypeNode
}

func (*Reference) Kind() TypeKind { return KindReference }

// Array is an element type followed by [].
type Array struct {
	typeBase
	Element TypeNode
}

func (*Array) Kind() TypeKind { return KindArray }

// Union lists its members in declared order.
type Union struct {
	typeBase
	Members []TypeNode
}

func (*Union) Kind() TypeKind { return KindUnion }

// LiteralKind identifies the value type of a literal type.
type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralBigInt
	LiteralBoolean
	LiteralOther
)

// String returns the string representation of the literal kind.
func (k LiteralKind) String() string {
	switch k {
	case LiteralString:
		return "string"
	case LiteralNumber:
		return "number"
	case LiteralBigInt:
		return "bigint"
	case LiteralBoolean:
		return "boolean"
	default:
		return "other"
	}
}

// Literal is a literal type. Raw is the source text of the literal.
type Literal struct {
	typeBase
	LitKind LiteralKind
	Raw     string
}

func (*Literal) Kind() TypeKind { return KindLiteral }

// TemplateLiteral is a template literal type.
type TemplateLiteral struct {
	typeBase
	Raw string
}

func (*TemplateLiteral) Kind() TypeKind { return KindTemplateLiteral }

// Parenthesized wraps a type in parentheses.
type Parenthesized struct {
	typeBase
	Inner TypeNode
}

func (*Parenthesized) Kind() TypeKind { return KindParenthesized }

// OtherType is any type form the model does not represent structurally.
// Syntax names the parser's node type; Raw is the source text.
type OtherType struct {
	typeBase
	Syntax string
	Raw    string
}

func (*OtherType) Kind() TypeKind { return KindOtherType }

// NewKeyword constructs a Keyword node.
func NewKeyword(span Span, name string) *Keyword {
	return &Keyword{typeBase: typeBase{span}, Name: name}
}

// NewReference constructs a Reference node.
func NewReference(span Span, name string, args ...TypeNode) *Reference {
	return &Reference{typeBase: typeBase{span}, Name: name, TypeArgs: args}
}

// NewArray constructs an Array node.
func NewArray(span Span, elem TypeNode) *Array {
	return &Array{typeBase: typeBase{span}, Element: elem}
}

// NewUnion constructs a Union node.
func NewUnion(span Span, members ...TypeNode) *Union {
	return &Union{typeBase: typeBase{span}, Members: members}
}

// NewLiteral constructs a Literal node.
func NewLiteral(span Span, kind LiteralKind, raw string) *Literal {
	return &Literal{typeBase: typeBase{span}, LitKind: kind, Raw: raw}
}

// NewTemplateLiteral constructs a TemplateLiteral node.
func NewTemplateLiteral(span Span, raw string) *TemplateLiteral {
	return &TemplateLiteral{typeBase: typeBase{span}, Raw: raw}
}

// NewParenthesized constructs a Parenthesized node.
func NewParenthesized(span Span, inner TypeNode) *Parenthesized {
	return &Parenthesized{typeBase: typeBase{span}, Inner: inner}
}

// NewOtherType constructs an OtherType node.
func NewOtherType(span Span, syntax, raw string) *OtherType {
	return &OtherType{typeBase: typeBase{span}, Syntax: syntax, Raw: raw}
}

// Unparen strips any number of enclosing parentheses.
func Unparen(n TypeNode) TypeNode {
	for {
		p, ok := n.(*Parenthesized)
		if !ok {
			return n
		}
		n = p.Inner
	}
}
