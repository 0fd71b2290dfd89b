package descriptor

import (
	"fmt"
	"strings"

	"github.com/viant/parsly"
)

// ParseAccess parses a manifest access entry in the format
// name[fully qualified type name](mode).
func ParseAccess(input []byte) (*Access, error) {
	cursor := parsly.NewCursor("", input, 0)
	access := &Access{}

	matched := cursor.MatchAfterOptional(whitespaceToken, identifierToken)
	if matched.Code != identifierToken.Code {
		return nil, cursor.NewError(identifierToken)
	}
	access.Name = matched.Text(cursor)

	matched = cursor.MatchOne(openSquareBracketToken)
	if matched.Code != openSquareBracketToken.Code {
		return nil, cursor.NewError(openSquareBracketToken)
	}

	matched = cursor.MatchOne(qualifiedTypeToken)
	if matched.Code != qualifiedTypeToken.Code {
		return nil, cursor.NewError(qualifiedTypeToken)
	}
	access.DataType = matched.Text(cursor)

	matched = cursor.MatchOne(closeSquareBracketToken)
	if matched.Code != closeSquareBracketToken.Code {
		return nil, cursor.NewError(closeSquareBracketToken)
	}

	matched = cursor.MatchAfterOptional(whitespaceToken, openParenToken)
	if matched.Code != openParenToken.Code {
		return nil, cursor.NewError(openParenToken)
	}

	matched = cursor.MatchAny(modeToken, closeParenToken)
	switch matched.Code {
	case modeToken.Code:
	case closeParenToken.Code:
		access.Mode = ModeRead
		return access, nil
	default:
		return nil, cursor.NewError(modeToken)
	}
	mode := strings.TrimSpace(matched.Text(cursor))
	switch mode {
	case ModeRead, ModeWrite:
		access.Mode = mode
	default:
		return nil, fmt.Errorf("invalid access mode %q in %q, expected %v or %v", mode, input, ModeRead, ModeWrite)
	}

	matched = cursor.MatchOne(closeParenToken)
	if matched.Code != closeParenToken.Code {
		return nil, cursor.NewError(closeParenToken)
	}
	return access, nil
}
