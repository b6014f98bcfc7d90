package tokenize

import "github.com/dshills/linemark/internal/render"

// Parts converts a sorted token stream into the full-coverage part list the
// renderer requires. Gaps between tokens become parts of the default class.
// classFor maps a token type to its CSS class; when nil the token type name
// is used. The result satisfies the renderer's part invariants for any
// non-empty line: first part at 0, sorted, non-overlapping, gap-free.
func Parts(line string, toks []Token, classFor func(TokenType) string) []render.Part {
	if len(line) == 0 {
		return nil
	}
	if classFor == nil {
		classFor = func(t TokenType) string { return t.String() }
	}

	lineLen := len([]rune(line))
	parts := make([]render.Part, 0, len(toks)*2+1)
	pos := 0

	for _, tok := range toks {
		start, end := tok.StartCol, tok.EndCol
		if start < pos {
			start = pos
		}
		if end > lineLen {
			end = lineLen
		}
		if start >= end {
			continue
		}
		if start > pos {
			parts = append(parts, render.Part{StartIndex: pos, Class: classFor(TokenText)})
		}
		parts = append(parts, render.Part{StartIndex: start, Class: classFor(tok.Type)})
		pos = end
	}

	if pos < lineLen || len(parts) == 0 {
		parts = append(parts, render.Part{StartIndex: pos, Class: classFor(TokenText)})
	}

	return parts
}
