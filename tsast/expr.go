package tsast

// ExprKind identifies the category of a decorator argument expression.
type ExprKind int

const (
	ExprString ExprKind = iota // 'text' or "text"
	ExprNumber                 // 42
	ExprBool                   // true, false
	ExprNull                   // null
	ExprIdent                  // name
	ExprObject                 // { key: value }
	ExprArrow                  // (params) => body
	ExprOther                  // anything else
)

// String returns the string representation of the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprString:
		return "String"
	case ExprNumber:
		return "Number"
	case ExprBool:
		return "Bool"
	case ExprNull:
		return "Null"
	case ExprIdent:
		return "Ident"
	case ExprObject:
		return "Object"
	case ExprArrow:
		return "Arrow"
	case ExprOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// Expr is a call-argument expression.
type Expr interface {
	Kind() ExprKind
	Span() Span
	sealed()
}

type exprBase struct {
	Pos Span
}

func (b exprBase) Span() Span { return b.Pos }
func (exprBase) sealed()      {}

// StringLit is a string literal. Value has quotes and escapes removed.
type StringLit struct {
	exprBase
	Value string
}

func (*StringLit) Kind() ExprKind { return ExprString }

// NumberLit is a numeric literal in source form.
type NumberLit struct {
	exprBase
	Raw string
}

func (*NumberLit) Kind() ExprKind { return ExprNumber }

// BoolLit is true or false.
type BoolLit struct {
	exprBase
	Value bool
}

func (*BoolLit) Kind() ExprKind { return ExprBool }

// NullLit is the null literal.
type NullLit struct {
	exprBase
}

func (*NullLit) Kind() ExprKind { return ExprNull }

// Ident is a bare identifier.
type Ident struct {
	exprBase
	Name string
}

func (*Ident) Kind() ExprKind { return ExprIdent }

// Prop is one member of an object literal. Key is empty for spreads
// and computed keys.
type Prop struct {
	Key   string `json:"key"`
	Value Expr   `json:"value"`
	Span  Span   `json:"span"`
}

// ObjectLit is an object literal.
type ObjectLit struct {
	exprBase
	Props []*Prop
}

func (*ObjectLit) Kind() ExprKind { return ExprObject }

// Lookup returns the last property named key.
func (o *ObjectLit) Lookup(key string) (*Prop, bool) {
	for i := len(o.Props) - 1; i >= 0; i-- {
		if o.Props[i].Key == key {
			return o.Props[i], true
		}
	}
	return nil, false
}

// Index returns the position of p in o.Props, or -1.
func (o *ObjectLit) Index(p *Prop) int {
	for i, q := range o.Props {
		if q == p {
			return i
		}
	}
	return -1
}

// ArrowFunc is an arrow function. Body is nil when the body is a block.
type ArrowFunc struct {
	exprBase
	Params []string
	Body   Expr
}

func (*ArrowFunc) Kind() ExprKind { return ExprArrow }

// OtherExpr is an expression the model does not represent.
type OtherExpr struct {
	exprBase
	Syntax string
	Raw    string
}

func (*OtherExpr) Kind() ExprKind { return ExprOther }

// NewStringLit constructs a StringLit.
func NewStringLit(span Span, value string) *StringLit {
	return &StringLit{exprBase: exprBase{span}, Value: value}
}

// NewNumberLit constructs a NumberLit.
func NewNumberLit(span Span, raw string) *NumberLit {
	return &NumberLit{exprBase: exprBase{span}, Raw: raw}
}

// NewBoolLit constructs a BoolLit.
func NewBoolLit(span Span, value bool) *BoolLit {
	return &BoolLit{exprBase: exprBase{span}, Value: value}
}

// NewNullLit constructs a NullLit.
func NewNullLit(span Span) *NullLit {
	return &NullLit{exprBase: exprBase{span}}
}

// NewIdent constructs an Ident.
func NewIdent(span Span, name string) *Ident {
	return &Ident{exprBase: exprBase{span}, Name: name}
}

// NewObjectLit constructs an ObjectLit.
func NewObjectLit(span Span, props ...*Prop) *ObjectLit {
	return &ObjectLit{exprBase: exprBase{span}, Props: props}
}

// NewArrowFunc constructs an ArrowFunc.
func NewArrowFunc(span Span, params []string, body Expr) *ArrowFunc {
	return &ArrowFunc{exprBase: exprBase{span}, Params: params, Body: body}
}

// NewOtherExpr constructs an OtherExpr.
func NewOtherExpr(span Span, syntax, raw string) *OtherExpr {
	return &OtherExpr{exprBase: exprBase{span}, Syntax: syntax, Raw: raw}
}
