package tags

import (
	"bytes"
	"strings"

	"github.com/viant/parsly"
)

// matchPair matches key[=value] followed by an optional coma; {..} and '..' values may contain comas
func matchPair(cursor *parsly.Cursor) (string, string) {
	key := ""
	value := ""
	var tokens = []*parsly.Token{scopeBlockMatcher}

	input := cursor.Input[cursor.Pos:]
	eqIndex := bytes.IndexByte(input, '=')
	comaIndex := bytes.IndexByte(input, ',')
	if eqIndex != -1 && (comaIndex == -1 || eqIndex < comaIndex) {
		tokens = append(tokens, eqTerminatorMatcher)
	} else {
		tokens = append(tokens, comaTerminatorMatcher)
	}

	match := cursor.MatchAny(tokens...)
	switch match.Code {
	case scopeBlockToken:
		value = unwrap(match.Text(cursor))
		cursor.MatchAny(comaTerminatorMatcher)
	case comaTerminatorToken:
		value = match.Text(cursor)
		value = value[:len(value)-1]
	case eqTerminatorToken:
		key = match.Text(cursor)
		key = key[:len(key)-1]
		match = cursor.MatchAny(scopeBlockMatcher, quotedMatcher, comaTerminatorMatcher)
		switch match.Code {
		case scopeBlockToken, quotedToken:
			value = unwrap(match.Text(cursor))
			cursor.MatchAny(comaTerminatorMatcher)
		case comaTerminatorToken:
			value = match.Text(cursor)
			value = value[:len(value)-1]
		default:
			value = remaining(cursor)
		}
		return strings.TrimSpace(key), value
	default:
		value = remaining(cursor)
	}

	if index := strings.Index(value, "="); index != -1 {
		return strings.TrimSpace(value[:index]), value[index+1:]
	}
	return strings.TrimSpace(value), ""
}

func remaining(cursor *parsly.Cursor) string {
	if cursor.Pos >= len(cursor.Input) {
		return ""
	}
	value := string(cursor.Input[cursor.Pos:])
	cursor.Pos = len(cursor.Input)
	return value
}

func unwrap(text string) string {
	if len(text) < 2 {
		return text
	}
	switch {
	case text[0] == '{' && text[len(text)-1] == '}', text[0] == '\'' && text[len(text)-1] == '\'':
		return text[1 : len(text)-1]
	}
	return text
}
