package tokenize

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// Errors returned by the Lua tokenizer.
var (
	// ErrNoTokenizeFunc indicates the script does not define tokenize().
	ErrNoTokenizeFunc = errors.New("lua script does not define tokenize(line)")
)

// Lua runs a user script as a tokenizer. The script must define a global
// function
//
//	function tokenize(line)
//	  return { { start = 0, len = 3, type = "keyword" }, ... }
//	end
//
// with rune columns, 0-based. Spans are validated, clamped to the line, and
// sorted by the host; a script error yields a single text token so a broken
// script degrades to unstyled lines instead of failing the render.
//
// gopher-lua states are not goroutine safe, so every call is serialized on
// an internal mutex.
type Lua struct {
	mu sync.Mutex
	L  *lua.LState
}

// NewLuaFile loads a tokenizer script from a file.
func NewLuaFile(path string) (*Lua, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lua tokenizer %s: %w", path, err)
	}
	return NewLua(string(src))
}

// NewLua compiles a tokenizer script from source.
func NewLua(source string) (*Lua, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: false})
	if err := L.DoString(source); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading lua tokenizer: %w", err)
	}
	if L.GetGlobal("tokenize").Type() != lua.LTFunction {
		L.Close()
		return nil, ErrNoTokenizeFunc
	}
	return &Lua{L: L}, nil
}

// Close releases the Lua state.
func (t *Lua) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.L.Close()
}

// TokenizeLine implements Tokenizer. Lua tokenizers are stateless across
// lines; the prev state is returned unchanged.
func (t *Lua) TokenizeLine(line string, prev State) ([]Token, State) {
	toks, err := t.call(line)
	if err != nil {
		return []Token{{Type: TokenText, StartCol: 0, EndCol: len([]rune(line))}}, prev
	}
	return toks, prev
}

func (t *Lua) call(line string) ([]Token, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	L := t.L
	if err := L.CallByParam(lua.P{
		Fn:      L.GetGlobal("tokenize"),
		NRet:    1,
		Protect: true,
	}, lua.LString(line)); err != nil {
		return nil, fmt.Errorf("lua tokenize: %w", err)
	}

	ret := L.Get(-1)
	L.Pop(1)

	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("lua tokenize returned %s, want table", ret.Type())
	}

	lineLen := len([]rune(line))
	tokens := make([]Token, 0, tbl.Len())

	for i := 1; i <= tbl.Len(); i++ {
		entry, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			continue
		}
		start, ok1 := toInt(entry.RawGetString("start"))
		length, ok2 := toInt(entry.RawGetString("len"))
		typ := lua.LVAsString(entry.RawGetString("type"))
		if !ok1 || !ok2 || length <= 0 {
			continue
		}
		end := start + length
		if start < 0 {
			start = 0
		}
		if end > lineLen {
			end = lineLen
		}
		if start >= end {
			continue
		}
		tokens = append(tokens, Token{
			Type:     TokenTypeFromString(typ),
			StartCol: start,
			EndCol:   end,
		})
	}

	sort.SliceStable(tokens, func(a, b int) bool {
		if tokens[a].StartCol != tokens[b].StartCol {
			return tokens[a].StartCol < tokens[b].StartCol
		}
		return tokens[a].EndCol < tokens[b].EndCol
	})

	// Drop overlaps after sorting; the first token wins.
	kept := tokens[:0]
	pos := 0
	for _, tok := range tokens {
		if tok.StartCol < pos {
			if tok.EndCol <= pos {
				continue
			}
			tok.StartCol = pos
		}
		kept = append(kept, tok)
		pos = tok.EndCol
	}

	return kept, nil
}

func toInt(v lua.LValue) (int, bool) {
	n, ok := v.(lua.LNumber)
	if !ok {
		return 0, false
	}
	return int(n), true
}
