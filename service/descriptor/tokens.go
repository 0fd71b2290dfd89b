package descriptor

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes
const (
	whitespaceCode = iota
	identifierCode
	openSquareBracketCode
	closeSquareBracketCode
	openParenCode
	closeParenCode
	qualifiedTypeCode
	modeCode
)

// Token definitions
var (
	whitespaceToken         = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	identifierToken         = parsly.NewToken(identifierCode, "Identifier", &identifierMatcher{})
	openSquareBracketToken  = parsly.NewToken(openSquareBracketCode, "[", matcher.NewByte('['))
	closeSquareBracketToken = parsly.NewToken(closeSquareBracketCode, "]", matcher.NewByte(']'))
	openParenToken          = parsly.NewToken(openParenCode, "(", matcher.NewByte('('))
	closeParenToken         = parsly.NewToken(closeParenCode, ")", matcher.NewByte(')'))
	qualifiedTypeToken      = parsly.NewToken(qualifiedTypeCode, "QualifiedType", &qualifiedTypeMatcher{})
	modeToken               = parsly.NewToken(modeCode, "Mode", &modeMatcher{})
)

// identifierMatcher matches a resource entry name: a letter or underscore
// followed by letters, digits or underscores.
type identifierMatcher struct{}

func (m *identifierMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize
	if pos >= size {
		return 0
	}
	if !isLetter(input[pos]) && input[pos] != '_' {
		return 0
	}
	matched := 1
	for i := pos + 1; i < size; i++ {
		if !isLetter(input[i]) && !isDigit(input[i]) && input[i] != '_' {
			break
		}
		matched++
	}
	return matched
}

// qualifiedTypeMatcher matches a type reference, optionally alias-qualified
// (for example model.Counter), up to the closing square bracket.
type qualifiedTypeMatcher struct{}

func (m *qualifiedTypeMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	size := cursor.InputSize
	matched := 0
	for i := cursor.Pos; i < size; i++ {
		if input[i] == ']' {
			break
		}
		matched++
	}
	return matched
}

// modeMatcher matches the access mode up to the closing parenthesis.
type modeMatcher struct{}

func (m *modeMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	size := cursor.InputSize
	matched := 0
	for i := cursor.Pos; i < size; i++ {
		if input[i] == ')' {
			break
		}
		matched++
	}
	return matched
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
