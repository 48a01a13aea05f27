package tsast

import "github.com/goccy/go-json"

// JSON serialization support for syntax nodes.
// All nodes include a "kind" field for type discrimination.

// MarshalJSON implements json.Marshaler for Keyword.
func (n *Keyword) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind string `json:"kind"`
		Name string `json:"name"`
		Span Span   `json:"span"`
	}{"keyword", n.Name, n.Pos})
}

// MarshalJSON implements json.Marshaler for Reference.
func (n *Reference) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind     string     `json:"kind"`
		Name     string     `json:"name"`
		TypeArgs []TypeNode `json:"typeArgs,omitempty"`
		Span     Span       `json:"span"`
	}{"reference", n.Name, n.TypeArgs, n.Pos})
}

// MarshalJSON implements json.Marshaler for Array.
func (n *Array) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind    string   `json:"kind"`
		Element TypeNode `json:"element"`
		Span    Span     `json:"span"`
	}{"array", n.Element, n.Pos})
}

// MarshalJSON implements json.Marshaler for Union.
func (n *Union) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind    string     `json:"kind"`
		Members []TypeNode `json:"members"`
		Span    Span       `json:"span"`
	}{"union", n.Members, n.Pos})
}

// MarshalJSON implements json.Marshaler for Literal.
func (n *Literal) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind        string `json:"kind"`
		LiteralKind string `json:"literalKind"`
		Raw         string `json:"raw"`
		Span        Span   `json:"span"`
	}{"literal", n.LitKind.String(), n.Raw, n.Pos})
}

// MarshalJSON implements json.Marshaler for TemplateLiteral.
func (n *TemplateLiteral) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind string `json:"kind"`
		Raw  string `json:"raw"`
		Span Span   `json:"span"`
	}{"templateLiteral", n.Raw, n.Pos})
}

// MarshalJSON implements json.Marshaler for Parenthesized.
func (n *Parenthesized) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind  string   `json:"kind"`
		Inner TypeNode `json:"inner"`
		Span  Span     `json:"span"`
	}{"parenthesized", n.Inner, n.Pos})
}

// MarshalJSON implements json.Marshaler for OtherType.
func (n *OtherType) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind   string `json:"kind"`
		Syntax string `json:"syntax"`
		Raw    string `json:"raw"`
		Span   Span   `json:"span"`
	}{"other", n.Syntax, n.Raw, n.Pos})
}

// MarshalJSON implements json.Marshaler for StringLit.
func (e *StringLit) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind  string `json:"kind"`
		Value string `json:"value"`
		Span  Span   `json:"span"`
	}{"string", e.Value, e.Pos})
}

// MarshalJSON implements json.Marshaler for NumberLit.
func (e *NumberLit) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind string `json:"kind"`
		Raw  string `json:"raw"`
		Span Span   `json:"span"`
	}{"number", e.Raw, e.Pos})
}

// MarshalJSON implements json.Marshaler for BoolLit.
func (e *BoolLit) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind  string `json:"kind"`
		Value bool   `json:"value"`
		Span  Span   `json:"span"`
	}{"bool", e.Value, e.Pos})
}

// MarshalJSON implements json.Marshaler for NullLit.
func (e *NullLit) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind string `json:"kind"`
		Span Span   `json:"span"`
	}{"null", e.Pos})
}

// MarshalJSON implements json.Marshaler for Ident.
func (e *Ident) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind string `json:"kind"`
		Name string `json:"name"`
		Span Span   `json:"span"`
	}{"ident", e.Name, e.Pos})
}

// MarshalJSON implements json.Marshaler for ObjectLit.
func (e *ObjectLit) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind  string  `json:"kind"`
		Props []*Prop `json:"props"`
		Span  Span    `json:"span"`
	}{"object", e.Props, e.Pos})
}

// MarshalJSON implements json.Marshaler for ArrowFunc.
func (e *ArrowFunc) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind   string   `json:"kind"`
		Params []string `json:"params,omitempty"`
		Body   Expr     `json:"body,omitempty"`
		Span   Span     `json:"span"`
	}{"arrow", e.Params, e.Body, e.Pos})
}

// MarshalJSON implements json.Marshaler for OtherExpr.
func (e *OtherExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind   string `json:"kind"`
		Syntax string `json:"syntax"`
		Raw    string `json:"raw"`
		Span   Span   `json:"span"`
	}{"other", e.Syntax, e.Raw, e.Pos})
}
