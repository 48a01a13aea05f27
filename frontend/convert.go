package frontend

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/broady/typeormlint/tsast"
)

// namedChildren returns n's named children, skipping comments.
func namedChildren(n *sitter.Node) []*sitter.Node {
	out := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c != nil && c.Type() != "comment" {
			out = append(out, c)
		}
	}
	return out
}

func (b *builder) expr(n *sitter.Node, depth int) tsast.Expr {
	sp := span(n)
	if depth > maxWalkDepth {
		return tsast.NewOtherExpr(sp, n.Type(), b.text(n))
	}
	switch n.Type() {
	case "string":
		return tsast.NewStringLit(sp, b.stringValue(n))
	case "number":
		return tsast.NewNumberLit(sp, b.text(n))
	case "true":
		return tsast.NewBoolLit(sp, true)
	case "false":
		return tsast.NewBoolLit(sp, false)
	case "null":
		return tsast.NewNullLit(sp)
	case "undefined", "identifier":
		return tsast.NewIdent(sp, b.text(n))
	case "parenthesized_expression":
		if kids := namedChildren(n); len(kids) == 1 {
			return b.expr(kids[0], depth+1)
		}
	case "object":
		return b.object(n, depth)
	case "arrow_function":
		return b.arrow(n, depth)
	}
	return tsast.NewOtherExpr(sp, n.Type(), b.text(n))
}

func (b *builder) object(n *sitter.Node, depth int) *tsast.ObjectLit {
	var props []*tsast.Prop
	for _, c := range namedChildren(n) {
		p := &tsast.Prop{Span: span(c)}
		switch c.Type() {
		case "pair":
			if key := c.ChildByFieldName("key"); key != nil {
				p.Key = b.propertyKey(key)
			}
			if val := c.ChildByFieldName("value"); val != nil {
				p.Value = b.expr(val, depth+1)
			}
		case "shorthand_property_identifier":
			p.Key = b.text(c)
			p.Value = tsast.NewIdent(span(c), p.Key)
		case "method_definition":
			if key := c.ChildByFieldName("name"); key != nil {
				p.Key = b.propertyKey(key)
			}
			p.Value = tsast.NewOtherExpr(span(c), c.Type(), b.text(c))
		default:
			p.Value = tsast.NewOtherExpr(span(c), c.Type(), b.text(c))
		}
		props = append(props, p)
	}
	return tsast.NewObjectLit(span(n), props...)
}

func (b *builder) propertyKey(n *sitter.Node) string {
	switch n.Type() {
	case "property_identifier", "number":
		return b.text(n)
	case "string":
		return b.stringValue(n)
	default:
		return ""
	}
}

func (b *builder) arrow(n *sitter.Node, depth int) *tsast.ArrowFunc {
	var params []string
	if p := n.ChildByFieldName("parameter"); p != nil {
		params = append(params, b.text(p))
	} else if ps := n.ChildByFieldName("parameters"); ps != nil {
		for _, c := range namedChildren(ps) {
			name := c
			if pat := c.ChildByFieldName("pattern"); pat != nil {
				name = pat
			}
			params = append(params, b.text(name))
		}
	}
	var body tsast.Expr
	if bn := n.ChildByFieldName("body"); bn != nil && bn.Type() != "statement_block" {
		body = b.expr(bn, depth+1)
	}
	return tsast.NewArrowFunc(span(n), params, body)
}

func (b *builder) typeNode(n *sitter.Node, depth int) tsast.TypeNode {
	sp := span(n)
	if depth > maxWalkDepth {
		return tsast.NewOtherType(sp, n.Type(), b.text(n))
	}
	switch n.Type() {
	case "type_annotation":
		if kids := namedChildren(n); len(kids) > 0 {
			return b.typeNode(kids[0], depth+1)
		}
	case "predefined_type":
		return tsast.NewKeyword(sp, b.text(n))
	case "type_identifier", "nested_type_identifier", "identifier":
		name := b.text(n)
		if tsast.IsKeyword(name) {
			return tsast.NewKeyword(sp, name)
		}
		return tsast.NewReference(sp, name)
	case "generic_type":
		name := n.ChildByFieldName("name")
		if name == nil {
			break
		}
		var args []tsast.TypeNode
		if ta := n.ChildByFieldName("type_arguments"); ta != nil {
			for _, c := range namedChildren(ta) {
				args = append(args, b.typeNode(c, depth+1))
			}
		} else {
			for _, c := range namedChildren(n) {
				if c.Type() == "type_arguments" {
					for _, a := range namedChildren(c) {
						args = append(args, b.typeNode(a, depth+1))
					}
				}
			}
		}
		return tsast.NewReference(sp, b.text(name), args...)
	case "array_type":
		if kids := namedChildren(n); len(kids) > 0 {
			return tsast.NewArray(sp, b.typeNode(kids[0], depth+1))
		}
	case "union_type":
		var members []tsast.TypeNode
		b.unionMembers(n, depth, &members)
		return tsast.NewUnion(sp, members...)
	case "literal_type":
		return b.literalType(n)
	case "template_literal_type", "template_string":
		return tsast.NewTemplateLiteral(sp, b.text(n))
	case "parenthesized_type":
		if kids := namedChildren(n); len(kids) == 1 {
			return tsast.NewParenthesized(sp, b.typeNode(kids[0], depth+1))
		}
	case "readonly_type":
		if kids := namedChildren(n); len(kids) == 1 {
			return b.typeNode(kids[0], depth+1)
		}
	}
	return tsast.NewOtherType(sp, n.Type(), b.text(n))
}

// unionMembers flattens the grammar's binary union nodes.
func (b *builder) unionMembers(n *sitter.Node, depth int, out *[]tsast.TypeNode) {
	for _, c := range namedChildren(n) {
		if c.Type() == "union_type" && depth < maxWalkDepth {
			b.unionMembers(c, depth+1, out)
			continue
		}
		*out = append(*out, b.typeNode(c, depth+1))
	}
}

func (b *builder) literalType(n *sitter.Node) tsast.TypeNode {
	sp := span(n)
	raw := b.text(n)
	kids := namedChildren(n)
	if len(kids) == 0 {
		switch raw {
		case "null", "undefined":
			return tsast.NewKeyword(sp, raw)
		}
		return tsast.NewLiteral(sp, tsast.LiteralOther, raw)
	}
	switch kids[0].Type() {
	case "null", "undefined":
		return tsast.NewKeyword(sp, kids[0].Type())
	case "string":
		return tsast.NewLiteral(sp, tsast.LiteralString, raw)
	case "number", "unary_expression":
		if strings.HasSuffix(raw, "n") {
			return tsast.NewLiteral(sp, tsast.LiteralBigInt, raw)
		}
		return tsast.NewLiteral(sp, tsast.LiteralNumber, raw)
	case "true", "false":
		return tsast.NewLiteral(sp, tsast.LiteralBoolean, raw)
	}
	return tsast.NewLiteral(sp, tsast.LiteralOther, raw)
}
