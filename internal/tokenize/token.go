// Package tokenize produces styling parts for the line renderer.
//
// A Tokenizer splits one line into typed tokens carried in rune columns.
// Parts converts a token stream into the ordered, gap-free part list the
// renderer requires, so any tokenizer output establishes the renderer's
// coverage precondition.
package tokenize

// TokenType is the semantic type of a token.
type TokenType uint8

// Token types. The set is deliberately coarse: it exists to pick CSS
// classes and preview colors, not to model a full grammar.
const (
	TokenText TokenType = iota
	TokenComment
	TokenString
	TokenNumber
	TokenKeyword
	TokenOperator
	TokenIdentifier
	TokenPunctuation
)

// String returns the token type name, which doubles as its CSS class.
func (t TokenType) String() string {
	switch t {
	case TokenComment:
		return "comment"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenKeyword:
		return "keyword"
	case TokenOperator:
		return "operator"
	case TokenIdentifier:
		return "identifier"
	case TokenPunctuation:
		return "punctuation"
	default:
		return "text"
	}
}

// TokenTypeFromString maps a type name back to its TokenType. Unknown
// names map to TokenText.
func TokenTypeFromString(s string) TokenType {
	switch s {
	case "comment":
		return TokenComment
	case "string":
		return TokenString
	case "number":
		return TokenNumber
	case "keyword":
		return TokenKeyword
	case "operator":
		return TokenOperator
	case "identifier":
		return TokenIdentifier
	case "punctuation":
		return TokenPunctuation
	default:
		return TokenText
	}
}

// Token is one typed span of a line. Columns are rune indexes, StartCol
// inclusive and EndCol exclusive.
type Token struct {
	Type     TokenType
	StartCol int
	EndCol   int
}

// Len returns the token length in runes.
func (t Token) Len() int {
	return t.EndCol - t.StartCol
}

// Contains reports whether the rune column falls inside the token.
func (t Token) Contains(col int) bool {
	return col >= t.StartCol && col < t.EndCol
}

// State carries lexer state across lines for multi-line constructs.
type State uint8

// Lexer states.
const (
	StateNormal State = iota
	StateBlockComment
	StateRawString
)

// Tokenizer splits lines into tokens. Implementations must return tokens
// sorted by StartCol without overlap; gaps are allowed and are filled by
// Parts.
type Tokenizer interface {
	// TokenizeLine tokenizes one line given the state left by the
	// previous line, returning the tokens and the state after the line.
	TokenizeLine(line string, prev State) ([]Token, State)
}
