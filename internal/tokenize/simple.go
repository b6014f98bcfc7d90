package tokenize

import "unicode"

// Simple is a hand-rolled single-pass tokenizer for C-family source. It
// understands line comments, block comments and raw strings spanning lines,
// quoted strings with escapes, numbers, keywords, identifiers, and
// operator/punctuation runs. It is not a real lexer for any one language;
// it exists to produce plausible styling parts when no Lua tokenizer is
// configured.
type Simple struct {
	keywords map[string]bool
}

// NewSimple creates a tokenizer with the Go keyword set.
func NewSimple() *Simple {
	return NewSimpleKeywords(goKeywords)
}

// NewSimpleKeywords creates a tokenizer with a caller-supplied keyword set.
func NewSimpleKeywords(keywords []string) *Simple {
	kw := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		kw[k] = true
	}
	return &Simple{keywords: kw}
}

var goKeywords = []string{
	"break", "case", "chan", "const", "continue", "default", "defer",
	"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
	"interface", "map", "package", "range", "return", "select", "struct",
	"switch", "type", "var",
}

// TokenizeLine implements Tokenizer.
func (s *Simple) TokenizeLine(line string, prev State) ([]Token, State) {
	runes := []rune(line)
	tokens := make([]Token, 0, 8)
	state := prev
	i := 0

	// Continuation of a multi-line construct.
	switch state {
	case StateBlockComment:
		end, found := findClose(runes, 0, '*', '/')
		if !found {
			return append(tokens, Token{Type: TokenComment, StartCol: 0, EndCol: len(runes)}), state
		}
		tokens = append(tokens, Token{Type: TokenComment, StartCol: 0, EndCol: end})
		i = end
		state = StateNormal
	case StateRawString:
		end := indexRune(runes, 0, '`')
		if end < 0 {
			return append(tokens, Token{Type: TokenString, StartCol: 0, EndCol: len(runes)}), state
		}
		tokens = append(tokens, Token{Type: TokenString, StartCol: 0, EndCol: end + 1})
		i = end + 1
		state = StateNormal
	}

	for i < len(runes) {
		r := runes[i]
		switch {
		case r == ' ' || r == '\t':
			i++

		case r == '/' && i+1 < len(runes) && runes[i+1] == '/':
			tokens = append(tokens, Token{Type: TokenComment, StartCol: i, EndCol: len(runes)})
			return tokens, state

		case r == '/' && i+1 < len(runes) && runes[i+1] == '*':
			end, found := findClose(runes, i+2, '*', '/')
			if !found {
				tokens = append(tokens, Token{Type: TokenComment, StartCol: i, EndCol: len(runes)})
				return tokens, StateBlockComment
			}
			tokens = append(tokens, Token{Type: TokenComment, StartCol: i, EndCol: end})
			i = end

		case r == '`':
			end := indexRune(runes, i+1, '`')
			if end < 0 {
				tokens = append(tokens, Token{Type: TokenString, StartCol: i, EndCol: len(runes)})
				return tokens, StateRawString
			}
			tokens = append(tokens, Token{Type: TokenString, StartCol: i, EndCol: end + 1})
			i = end + 1

		case r == '"' || r == '\'':
			end := scanQuoted(runes, i)
			tokens = append(tokens, Token{Type: TokenString, StartCol: i, EndCol: end})
			i = end

		case unicode.IsDigit(r):
			start := i
			for i < len(runes) && isNumberRune(runes[i]) {
				i++
			}
			tokens = append(tokens, Token{Type: TokenNumber, StartCol: start, EndCol: i})

		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(runes) && isIdentRune(runes[i]) {
				i++
			}
			typ := TokenIdentifier
			if s.keywords[string(runes[start:i])] {
				typ = TokenKeyword
			}
			tokens = append(tokens, Token{Type: typ, StartCol: start, EndCol: i})

		case isOperatorRune(r):
			start := i
			for i < len(runes) && isOperatorRune(runes[i]) {
				i++
			}
			tokens = append(tokens, Token{Type: TokenOperator, StartCol: start, EndCol: i})

		case isPunctRune(r):
			tokens = append(tokens, Token{Type: TokenPunctuation, StartCol: i, EndCol: i + 1})
			i++

		default:
			i++
		}
	}

	return tokens, state
}

// scanQuoted scans a quoted string starting at the opening quote and
// returns the exclusive end column. Backslash escapes the next rune. An
// unterminated string runs to end of line.
func scanQuoted(runes []rune, start int) int {
	quote := runes[start]
	for i := start + 1; i < len(runes); i++ {
		switch runes[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		}
	}
	return len(runes)
}

// findClose returns the exclusive end of a two-rune closer starting the
// search at from.
func findClose(runes []rune, from int, a, b rune) (int, bool) {
	for i := from; i+1 < len(runes); i++ {
		if runes[i] == a && runes[i+1] == b {
			return i + 2, true
		}
	}
	return 0, false
}

func indexRune(runes []rune, from int, r rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == r {
			return i
		}
	}
	return -1
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func isNumberRune(r rune) bool {
	return unicode.IsDigit(r) || r == '.' || r == 'x' || r == 'X' ||
		(r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F') || r == '_'
}

func isOperatorRune(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '%', '=', '<', '>', '!', '&', '|', '^', '~', ':', '?':
		return true
	}
	return false
}

func isPunctRune(r rune) bool {
	switch r {
	case '(', ')', '[', ']', '{', '}', ',', ';', '.':
		return true
	}
	return false
}
