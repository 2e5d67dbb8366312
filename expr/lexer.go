package expr

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tkEOF tokenKind = iota
	tkIdent
	tkNumber
	tkString
	tkOperator
	tkPunct
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lex tokenizes an expression string. It fails on any character outside the
// grammar rather than skipping it.
func lex(input string) ([]token, error) {
	var tokens []token
	i := 0
	n := len(input)

	for i < n {
		c := input[i]

		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case isIdentStart(c):
			start := i
			for i < n && isIdentPart(input[i]) {
				i++
			}
			tokens = append(tokens, token{tkIdent, input[start:i], start})

		case unicode.IsDigit(rune(c)):
			start := i
			seenDot := false
			for i < n && (unicode.IsDigit(rune(input[i])) || (input[i] == '.' && !seenDot)) {
				if input[i] == '.' {
					// a trailing dot is member access, not a decimal point
					if i+1 >= n || !unicode.IsDigit(rune(input[i+1])) {
						break
					}
					seenDot = true
				}
				i++
			}
			tokens = append(tokens, token{tkNumber, input[start:i], start})

		case c == '\'' || c == '"':
			text, next, err := lexString(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{tkString, text, i})
			i = next

		case strings.ContainsRune("()[].,", rune(c)):
			tokens = append(tokens, token{tkPunct, string(c), i})
			i++

		default:
			op, width := lexOperator(input[i:])
			if width == 0 {
				return nil, fmt.Errorf("expr: unexpected character %q at position %d", c, i)
			}
			tokens = append(tokens, token{tkOperator, op, i})
			i += width
		}
	}

	tokens = append(tokens, token{tkEOF, "", n})
	return tokens, nil
}

func lexString(input string, start int) (string, int, error) {
	quote := input[start]
	var sb strings.Builder
	i := start + 1

	for i < len(input) {
		c := input[i]
		if c == quote {
			return sb.String(), i + 1, nil
		}
		if c == '\\' && i+1 < len(input) {
			i++
			switch input[i] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(input[i])
			}
			i++
			continue
		}
		sb.WriteByte(c)
		i++
	}
	return "", 0, fmt.Errorf("expr: unterminated string at position %d", start)
}

var operators = []string{
	"===", "!==", "==", "!=", "<=", ">=", "&&", "||",
	"<", ">", "+", "-", "*", "/", "%", "!",
}

func lexOperator(s string) (string, int) {
	for _, op := range operators {
		if strings.HasPrefix(s, op) {
			return op, len(op)
		}
	}
	return "", 0
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
