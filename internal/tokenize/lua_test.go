package tokenize

import (
	"errors"
	"reflect"
	"testing"
)

const keywordScript = `
function tokenize(line)
	local toks = {}
	if string.sub(line, 1, 4) == "func" then
		table.insert(toks, { start = 0, len = 4, type = "keyword" })
	end
	return toks
end
`

func TestNewLuaRejectsMissingFunction(t *testing.T) {
	_, err := NewLua(`x = 1`)
	if !errors.Is(err, ErrNoTokenizeFunc) {
		t.Fatalf("expected ErrNoTokenizeFunc, got %v", err)
	}
}

func TestNewLuaRejectsBrokenScript(t *testing.T) {
	_, err := NewLua(`function tokenize( -- syntax error`)
	if err == nil {
		t.Fatal("expected load error")
	}
}

func TestLuaTokenize(t *testing.T) {
	lt, err := NewLua(keywordScript)
	if err != nil {
		t.Fatalf("NewLua: %v", err)
	}
	defer lt.Close()

	toks, state := lt.TokenizeLine("func x()", StateNormal)
	if state != StateNormal {
		t.Errorf("state changed: %v", state)
	}
	want := []Token{{Type: TokenKeyword, StartCol: 0, EndCol: 4}}
	if !reflect.DeepEqual(toks, want) {
		t.Errorf("got %v, want %v", toks, want)
	}

	toks, _ = lt.TokenizeLine("plain line", StateNormal)
	if len(toks) != 0 {
		t.Errorf("expected no tokens, got %v", toks)
	}
}

func TestLuaClampsAndSorts(t *testing.T) {
	lt, err := NewLua(`
function tokenize(line)
	return {
		{ start = 6, len = 100, type = "string" },
		{ start = 0, len = 3, type = "keyword" },
		{ start = 2, len = 2, type = "number" },
		{ start = -1, len = 1, type = "operator" },
	}
end
`)
	if err != nil {
		t.Fatalf("NewLua: %v", err)
	}
	defer lt.Close()

	toks, _ := lt.TokenizeLine("0123456789", StateNormal)

	// Sorted by start, clamped to the line, overlaps trimmed in favor of
	// the earlier token; spans that clamp to nothing are dropped.
	want := []Token{
		{Type: TokenKeyword, StartCol: 0, EndCol: 3},
		{Type: TokenNumber, StartCol: 3, EndCol: 4},
		{Type: TokenString, StartCol: 6, EndCol: 10},
	}
	if !reflect.DeepEqual(toks, want) {
		t.Errorf("got %v, want %v", toks, want)
	}
}

func TestLuaIgnoresMalformedEntries(t *testing.T) {
	lt, err := NewLua(`
function tokenize(line)
	return {
		{ start = "zero", len = 3, type = "keyword" },
		{ start = 0, len = 0, type = "keyword" },
		{ start = 1, len = 2, type = "identifier" },
	}
end
`)
	if err != nil {
		t.Fatalf("NewLua: %v", err)
	}
	defer lt.Close()

	toks, _ := lt.TokenizeLine("abcdef", StateNormal)
	want := []Token{{Type: TokenIdentifier, StartCol: 1, EndCol: 3}}
	if !reflect.DeepEqual(toks, want) {
		t.Errorf("got %v, want %v", toks, want)
	}
}

func TestLuaRuntimeErrorFallsBack(t *testing.T) {
	lt, err := NewLua(`
function tokenize(line)
	error("boom")
end
`)
	if err != nil {
		t.Fatalf("NewLua: %v", err)
	}
	defer lt.Close()

	toks, _ := lt.TokenizeLine("abc", StateNormal)
	want := []Token{{Type: TokenText, StartCol: 0, EndCol: 3}}
	if !reflect.DeepEqual(toks, want) {
		t.Errorf("expected fallback text token, got %v", toks)
	}
}

func TestLuaUnknownTypeMapsToText(t *testing.T) {
	lt, err := NewLua(`
function tokenize(line)
	return { { start = 0, len = 3, type = "mystery" } }
end
`)
	if err != nil {
		t.Fatalf("NewLua: %v", err)
	}
	defer lt.Close()

	toks, _ := lt.TokenizeLine("abc", StateNormal)
	if len(toks) != 1 || toks[0].Type != TokenText {
		t.Errorf("got %v, want a single text token", toks)
	}
}
