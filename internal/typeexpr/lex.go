package typeexpr

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	whitespaceToken = iota
	pipeToken
	ampToken
	commaToken
	dotToken
	ltToken
	gtToken
	lparenToken
	rparenToken
	arrayToken
	singleQuotedToken
	doubleQuotedToken
	templateToken
	numberToken
	minusToken
	objectBlockToken
	identifierToken
)

var whitespaceMatcher = parsly.NewToken(whitespaceToken, "Whitespace", matcher.NewWhiteSpace())
var pipeMatcher = parsly.NewToken(pipeToken, "|", matcher.NewByte('|'))
var ampMatcher = parsly.NewToken(ampToken, "&", matcher.NewByte('&'))
var commaMatcher = parsly.NewToken(commaToken, ",", matcher.NewByte(','))
var dotMatcher = parsly.NewToken(dotToken, ".", matcher.NewByte('.'))
var ltMatcher = parsly.NewToken(ltToken, "<", matcher.NewByte('<'))
var gtMatcher = parsly.NewToken(gtToken, ">", matcher.NewByte('>'))
var lparenMatcher = parsly.NewToken(lparenToken, "(", matcher.NewByte('('))
var rparenMatcher = parsly.NewToken(rparenToken, ")", matcher.NewByte(')'))
var arrayMatcher = parsly.NewToken(arrayToken, "[]", matcher.NewFragment("[]"))
var singleQuotedMatcher = parsly.NewToken(singleQuotedToken, "SingleQuote", matcher.NewBlock('\'', '\'', '\\'))
var doubleQuotedMatcher = parsly.NewToken(doubleQuotedToken, "DoubleQuote", matcher.NewBlock('"', '"', '\\'))
var templateMatcher = parsly.NewToken(templateToken, "Template", &templateMatch{})
var numberMatcher = parsly.NewToken(numberToken, "Number", matcher.NewNumber())
var minusMatcher = parsly.NewToken(minusToken, "-", matcher.NewByte('-'))
var objectBlockMatcher = parsly.NewToken(objectBlockToken, "{ ... }", matcher.NewBlock('{', '}', '\\'))
var identifierMatcher = parsly.NewToken(identifierToken, "Identifier", &identifierMatch{})

type identifierMatch struct{}

func (i *identifierMatch) Match(cursor *parsly.Cursor) int {
	if cursor.Pos >= cursor.InputSize {
		return 0
	}
	if !isIdentifierStart(cursor.Input[cursor.Pos]) {
		return 0
	}
	pos := cursor.Pos + 1
	for pos < cursor.InputSize && isIdentifierPart(cursor.Input[pos]) {
		pos++
	}
	return pos - cursor.Pos
}

func isIdentifierStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' || b == '$'
}

func isIdentifierPart(b byte) bool {
	return isIdentifierStart(b) || (b >= '0' && b <= '9')
}

// templateMatch matches a template literal type. Backticks inside ${...}
// placeholders start nested literals.
type templateMatch struct{}

func (t *templateMatch) Match(cursor *parsly.Cursor) int {
	if cursor.Pos >= cursor.InputSize || cursor.Input[cursor.Pos] != '`' {
		return 0
	}
	end := matchTemplate(cursor.Input, cursor.Pos)
	if end < 0 {
		return 0
	}
	return end - cursor.Pos
}

// matchTemplate returns the offset just past the literal opening at
// input[start], or -1 if it is not closed.
func matchTemplate(input []byte, start int) int {
	depth := 0
	for i := start + 1; i < len(input); i++ {
		switch c := input[i]; {
		case c == '\\':
			i++
		case depth == 0 && c == '`':
			return i + 1
		case depth == 0 && c == '$' && i+1 < len(input) && input[i+1] == '{':
			depth++
			i++
		case depth > 0 && c == '{':
			depth++
		case depth > 0 && c == '}':
			depth--
		case depth > 0 && c == '`':
			end := matchTemplate(input, i)
			if end < 0 {
				return -1
			}
			i = end - 1
		}
	}
	return -1
}
