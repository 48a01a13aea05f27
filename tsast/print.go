package tsast

import "strings"

// Format renders a type node as TypeScript source. Spans are ignored,
// so the output is normalized: single spaces around "|" and no
// whitespace inside generics.
func Format(n TypeNode) string {
	var sb strings.Builder
	format(&sb, n)
	return sb.String()
}

func format(sb *strings.Builder, n TypeNode) {
	switch n := n.(type) {
	case nil:
		return
	case *Keyword:
		sb.WriteString(n.Name)
	case *Reference:
		sb.WriteString(n.Name)
		if len(n.TypeArgs) > 0 {
			sb.WriteByte('<')
			for i, arg := range n.TypeArgs {
				if i > 0 {
					sb.WriteString(", ")
				}
				format(sb, arg)
			}
			sb.WriteByte('>')
		}
	case *Array:
		if _, ok := n.Element.(*Union); ok {
			sb.WriteByte('(')
			format(sb, n.Element)
			sb.WriteByte(')')
		} else {
			format(sb, n.Element)
		}
		sb.WriteString("[]")
	case *Union:
		for i, m := range n.Members {
			if i > 0 {
				sb.WriteString(" | ")
			}
			format(sb, m)
		}
	case *Literal:
		sb.WriteString(n.Raw)
	case *TemplateLiteral:
		sb.WriteString(n.Raw)
	case *Parenthesized:
		sb.WriteByte('(')
		format(sb, n.Inner)
		sb.WriteByte(')')
	case *OtherType:
		sb.WriteString(n.Raw)
	}
}
