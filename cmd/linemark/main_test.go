package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/linemark/internal/config"
	"github.com/dshills/linemark/internal/tokenize"
)

func TestRenderLines(t *testing.T) {
	cfg := config.Default()
	cfg.Whitespace = "boundary"

	lines, err := renderLines(cfg, tokenize.NewSimple(), []string{
		"func main() {",
		"\treturn",
		"",
	})
	if err != nil {
		t.Fatalf("renderLines: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("got %d rendered lines, want 3", len(lines))
	}

	if !strings.Contains(lines[0], `class="keyword"`) {
		t.Errorf("line 1 missing keyword span: %q", lines[0])
	}
	// Leading tab is a visualized whitespace part in boundary mode.
	if !strings.Contains(lines[1], "&rarr;") || !strings.Contains(lines[1], "width:") {
		t.Errorf("line 2 missing whitespace glyphs: %q", lines[1])
	}
	if lines[2] != "<span><span>&nbsp;</span></span>" {
		t.Errorf("empty line markup = %q", lines[2])
	}
}

func TestRenderLinesCarriesState(t *testing.T) {
	cfg := config.Default()

	lines, err := renderLines(cfg, tokenize.NewSimple(), []string{
		"/* comment",
		"x = 1 */",
	})
	if err != nil {
		t.Fatalf("renderLines: %v", err)
	}

	// The second line opens inside the block comment.
	if !strings.Contains(lines[1], `class="comment"`) {
		t.Errorf("continuation line not styled as comment: %q", lines[1])
	}
}

func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\r\nthree"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	lines, err := readLines(path)
	if err != nil {
		t.Fatalf("readLines: %v", err)
	}
	want := []string{"one", "two", "three"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
