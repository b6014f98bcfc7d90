package whitespace

import (
	"reflect"
	"testing"

	"github.com/dshills/linemark/internal/render"
)

func singlePart(class string) []render.Part {
	return []render.Part{{StartIndex: 0, Class: class}}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"none", None, false},
		{"", None, false},
		{"Boundary", Boundary, false},
		{"ALL", All, false},
		{" all ", All, false},
		{"sometimes", None, true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMode(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMode(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestModeString(t *testing.T) {
	if None.String() != "none" || Boundary.String() != "boundary" || All.String() != "all" {
		t.Errorf("unexpected mode names: %v %v %v", None, Boundary, All)
	}
}

func TestAnnotateNone(t *testing.T) {
	parts := singlePart("text")
	got := Annotate("  a  ", parts, None)
	if !reflect.DeepEqual(got, parts) {
		t.Errorf("None mode must return parts unchanged, got %v", got)
	}
}

func TestAnnotateAll(t *testing.T) {
	got := Annotate("a b", singlePart("text"), All)
	want := []render.Part{
		{StartIndex: 0, Class: "text"},
		{StartIndex: 1, Class: "text whitespace", Whitespace: true},
		{StartIndex: 2, Class: "text"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAnnotateBoundary(t *testing.T) {
	// Only the leading and trailing runs are flagged; the interior space
	// stays in a plain part.
	got := Annotate("\ta b  ", singlePart("text"), Boundary)
	want := []render.Part{
		{StartIndex: 0, Class: "text whitespace", Whitespace: true},
		{StartIndex: 1, Class: "text"},
		{StartIndex: 4, Class: "text whitespace", Whitespace: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAnnotateBoundaryAllWhitespaceLine(t *testing.T) {
	got := Annotate(" \t ", singlePart("text"), Boundary)
	want := []render.Part{
		{StartIndex: 0, Class: "text whitespace", Whitespace: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAnnotatePreservesCoverage(t *testing.T) {
	line := "  func main()  "
	parts := []render.Part{
		{StartIndex: 0, Class: "text"},
		{StartIndex: 2, Class: "keyword"},
		{StartIndex: 6, Class: "text"},
	}

	for _, mode := range []Mode{Boundary, All} {
		got := Annotate(line, parts, mode)

		if got[0].StartIndex != 0 {
			t.Errorf("%v: first part starts at %d, want 0", mode, got[0].StartIndex)
		}
		for i := 1; i < len(got); i++ {
			if got[i].StartIndex < got[i-1].StartIndex {
				t.Errorf("%v: parts out of order at %d: %v", mode, i, got)
			}
		}
		if last := got[len(got)-1].StartIndex; last >= len([]rune(line)) {
			t.Errorf("%v: last part starts past line end: %d", mode, last)
		}
	}
}

func TestAnnotateMultiPartBoundary(t *testing.T) {
	// Leading whitespace inside the first part, trailing inside the last.
	line := "  ab  "
	parts := []render.Part{
		{StartIndex: 0, Class: "a"},
		{StartIndex: 3, Class: "b"},
	}

	got := Annotate(line, parts, Boundary)
	want := []render.Part{
		{StartIndex: 0, Class: "a whitespace", Whitespace: true},
		{StartIndex: 2, Class: "a"},
		{StartIndex: 3, Class: "b"},
		{StartIndex: 4, Class: "b whitespace", Whitespace: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAnnotateRendersEndToEnd(t *testing.T) {
	// The annotated parts feed straight into the renderer.
	line := " x "
	parts := Annotate(line, singlePart("t"), All)

	out, err := render.Render(render.Input{
		Line:               line,
		TabSize:            4,
		SpaceWidth:         3,
		StopRenderingAfter: -1,
		RenderWhitespace:   true,
		Parts:              parts,
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := `<span><span class="t whitespace" style="width:3px">&middot;</span>` +
		`<span class="t">x</span>` +
		`<span class="t whitespace" style="width:3px">&middot;</span></span>`
	if out.HTML != want {
		t.Errorf("got %q, want %q", out.HTML, want)
	}
}
