// Package typeexpr parses TypeScript type expressions, such as
// "Relation<Other> | null", into tsast type nodes.
//
// It covers the subset of the type grammar that appears in entity
// property annotations: keywords, references with type arguments,
// arrays, unions, intersections, parentheses, literal and template
// literal types. Object type literals are kept as opaque nodes.
package typeexpr

import (
	"errors"
	"fmt"

	"github.com/broady/typeormlint/tsast"
	"github.com/viant/parsly"
)

// ErrSyntax is returned for input that is not a type expression.
var ErrSyntax = errors.New("type expression syntax error")

// Parse parses src as a single type expression. Spans are offsets into src.
func Parse(src string) (tsast.TypeNode, error) {
	p := &parser{src: src, cursor: parsly.NewCursor("", []byte(src), 0)}
	node, err := p.union()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.cursor.Pos < p.cursor.InputSize {
		return nil, p.errorf("unexpected %q", src[p.cursor.Pos:])
	}
	return node, nil
}

// MustParse is like Parse but panics on error. For tests and fixed tables.
func MustParse(src string) tsast.TypeNode {
	n, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return n
}

type parser struct {
	src    string
	cursor *parsly.Cursor
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrSyntax, p.cursor.Pos, fmt.Sprintf(format, args...))
}

func (p *parser) skipSpace() {
	_ = p.cursor.MatchOne(whitespaceMatcher)
}

// accept consumes tok if it is next, ignoring leading whitespace.
func (p *parser) accept(tok *parsly.Token) (start int, ok bool) {
	pos := p.cursor.Pos
	p.skipSpace()
	start = p.cursor.Pos
	if m := p.cursor.MatchOne(tok); m.Code == tok.Code {
		return start, true
	}
	p.cursor.Pos = pos
	return 0, false
}

// union := ['|'] intersection ('|' intersection)*
func (p *parser) union() (tsast.TypeNode, error) {
	p.skipSpace()
	start := p.cursor.Pos
	if _, ok := p.accept(pipeMatcher); ok {
		p.skipSpace()
		start = p.cursor.Pos
	}
	first, err := p.intersection()
	if err != nil {
		return nil, err
	}
	members := []tsast.TypeNode{first}
	for {
		if _, ok := p.accept(pipeMatcher); !ok {
			break
		}
		next, err := p.intersection()
		if err != nil {
			return nil, err
		}
		members = append(members, next)
	}
	if len(members) == 1 {
		return first, nil
	}
	end := members[len(members)-1].Span().End
	return tsast.NewUnion(tsast.Span{Start: start, End: end}, members...), nil
}

// intersection := postfix ('&' postfix)*
func (p *parser) intersection() (tsast.TypeNode, error) {
	first, err := p.postfix()
	if err != nil {
		return nil, err
	}
	last := first
	n := 1
	for {
		if _, ok := p.accept(ampMatcher); !ok {
			break
		}
		if last, err = p.postfix(); err != nil {
			return nil, err
		}
		n++
	}
	if n == 1 {
		return first, nil
	}
	span := tsast.Span{Start: first.Span().Start, End: last.Span().End}
	return tsast.NewOtherType(span, "intersection_type", p.src[span.Start:span.End]), nil
}

// postfix := primary ('[]')*
func (p *parser) postfix() (tsast.TypeNode, error) {
	node, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.accept(arrayMatcher); !ok {
			return node, nil
		}
		node = tsast.NewArray(tsast.Span{Start: node.Span().Start, End: p.cursor.Pos}, node)
	}
}

func (p *parser) primary() (tsast.TypeNode, error) {
	p.skipSpace()
	if p.cursor.Pos >= p.cursor.InputSize {
		return nil, p.errorf("unexpected end of input")
	}
	start := p.cursor.Pos
	matched := p.cursor.MatchAny(lparenMatcher, singleQuotedMatcher, doubleQuotedMatcher,
		templateMatcher, minusMatcher, numberMatcher, objectBlockMatcher, identifierMatcher)
	span := tsast.Span{Start: start, End: p.cursor.Pos}
	switch matched.Code {
	case lparenToken:
		inner, err := p.union()
		if err != nil {
			return nil, err
		}
		if _, ok := p.accept(rparenMatcher); !ok {
			return nil, p.errorf("expected )")
		}
		return tsast.NewParenthesized(tsast.Span{Start: start, End: p.cursor.Pos}, inner), nil
	case singleQuotedToken, doubleQuotedToken:
		return tsast.NewLiteral(span, tsast.LiteralString, p.src[span.Start:span.End]), nil
	case templateToken:
		return tsast.NewTemplateLiteral(span, p.src[span.Start:span.End]), nil
	case minusToken:
		if m := p.cursor.MatchOne(numberMatcher); m.Code != numberToken {
			return nil, p.errorf("expected number after -")
		}
		span.End = p.cursor.Pos
		return p.number(span), nil
	case numberToken:
		return p.number(span), nil
	case objectBlockToken:
		return tsast.NewOtherType(span, "object_type", p.src[span.Start:span.End]), nil
	case identifierToken:
		return p.named(span)
	}
	return nil, fmt.Errorf("%w: %v", ErrSyntax, p.cursor.NewError(lparenMatcher, singleQuotedMatcher, numberMatcher, identifierMatcher))
}

func (p *parser) number(span tsast.Span) tsast.TypeNode {
	kind := tsast.LiteralNumber
	if p.cursor.Pos < p.cursor.InputSize && p.cursor.Input[p.cursor.Pos] == 'n' {
		p.cursor.Pos++
		span.End = p.cursor.Pos
		kind = tsast.LiteralBigInt
	}
	return tsast.NewLiteral(span, kind, p.src[span.Start:span.End])
}

// named := ident ('.' ident)* ['<' union (',' union)* '>']
func (p *parser) named(span tsast.Span) (tsast.TypeNode, error) {
	name := p.src[span.Start:span.End]
	switch name {
	case "true", "false":
		return tsast.NewLiteral(span, tsast.LiteralBoolean, name), nil
	}
	if tsast.IsKeyword(name) {
		return tsast.NewKeyword(span, name), nil
	}
	for {
		pos := p.cursor.Pos
		if m := p.cursor.MatchOne(dotMatcher); m.Code != dotToken {
			break
		}
		if m := p.cursor.MatchOne(identifierMatcher); m.Code != identifierToken {
			p.cursor.Pos = pos
			break
		}
		span.End = p.cursor.Pos
	}
	name = p.src[span.Start:span.End]
	if _, ok := p.accept(ltMatcher); !ok {
		return tsast.NewReference(span, name), nil
	}
	var args []tsast.TypeNode
	for {
		arg, err := p.union()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if _, ok := p.accept(commaMatcher); !ok {
			break
		}
	}
	if _, ok := p.accept(gtMatcher); !ok {
		return nil, p.errorf("expected > to close %s<", name)
	}
	span.End = p.cursor.Pos
	return tsast.NewReference(span, name, args...), nil
}
