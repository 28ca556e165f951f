package action

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseArgs turns prompted argument text into a list of literal values. The
// grammar is deliberately small: comma-separated numbers, booleans, nulls,
// and quoted strings, with blank entries and a trailing comma tolerated.
// Anything else is a parse error; malformed text never reaches an action.
func ParseArgs(text string) ([]interface{}, error) {
	tokens, err := splitArgs(text)
	if err != nil {
		return nil, err
	}
	args := make([]interface{}, 0, len(tokens))
	for _, tok := range tokens {
		value, err := parseLiteral(tok)
		if err != nil {
			return nil, err
		}
		args = append(args, value)
	}
	return args, nil
}

// splitArgs separates on top-level commas, honouring quotes.
func splitArgs(text string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	var quote rune
	for _, r := range text {
		switch {
		case quote != 0:
			cur.WriteRune(r)
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
			cur.WriteRune(r)
		case r == ',':
			tokens = append(tokens, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated string in arguments")
	}
	tokens = append(tokens, cur.String())

	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue // blank entry or trailing comma
		}
		out = append(out, tok)
	}
	return out, nil
}

func parseLiteral(tok string) (interface{}, error) {
	if len(tok) >= 2 {
		if (tok[0] == '\'' && tok[len(tok)-1] == '\'') || (tok[0] == '"' && tok[len(tok)-1] == '"') {
			return tok[1 : len(tok)-1], nil
		}
	}
	switch strings.ToLower(tok) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "none", "null", "nil":
		return nil, nil
	}
	if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return int(n), nil
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return f, nil
	}
	return nil, fmt.Errorf("cannot parse argument %q", tok)
}
