// Package termview shows tokenized lines in the terminal.
//
// The preview is a second rendering surface over the same pipeline the
// HTML output uses: lines are tokenized, whitespace runs are selected by
// the configured mode, and tabs expand against visual tab stops with the
// same arithmetic as the markup renderer. It exists to eyeball a theme or
// a tokenizer script without a browser.
package termview

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/linemark/internal/config"
	"github.com/dshills/linemark/internal/render"
	"github.com/dshills/linemark/internal/theme"
	"github.com/dshills/linemark/internal/tokenize"
	"github.com/dshills/linemark/internal/whitespace"
)

// View is an interactive read-only preview of a file's lines.
type View struct {
	screen tcell.Screen

	title string
	lines []string
	// Lexer state entering each line, computed once at startup.
	states []tokenize.State

	tok  tokenize.Tokenizer
	th   *theme.Theme
	cfg  config.Config
	mode whitespace.Mode

	top     int // first visible line
	curLine int
	curCol  int // rune column within the current line
}

// New builds a preview over the given lines.
func New(title string, lines []string, tok tokenize.Tokenizer, th *theme.Theme, cfg config.Config) *View {
	v := &View{
		title: title,
		lines: lines,
		tok:   tok,
		th:    th,
		cfg:   cfg,
		mode:  cfg.WhitespaceMode(),
	}
	v.states = make([]tokenize.State, len(lines)+1)
	state := tokenize.StateNormal
	for i, line := range lines {
		v.states[i] = state
		_, state = tok.TokenizeLine(line, state)
	}
	v.states[len(lines)] = state
	return v
}

// Run opens the terminal screen and blocks until the user quits with q or
// Escape.
func (v *View) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	v.screen = screen
	v.draw()

	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
			v.draw()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return nil
			}
			v.draw()
		}
	}
}

// handleKey updates the cursor and reports whether the view should close.
func (v *View) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		v.moveCursor(-1, 0)
	case tcell.KeyDown:
		v.moveCursor(1, 0)
	case tcell.KeyLeft:
		v.moveCursor(0, -1)
	case tcell.KeyRight:
		v.moveCursor(0, 1)
	case tcell.KeyHome:
		v.curCol = 0
	case tcell.KeyEnd:
		v.curCol = len([]rune(v.currentLine()))
	case tcell.KeyPgUp:
		_, h := v.screen.Size()
		v.moveCursor(-(h - 1), 0)
	case tcell.KeyPgDn:
		_, h := v.screen.Size()
		v.moveCursor(h-1, 0)
	case tcell.KeyRune:
		if ev.Rune() == 'q' {
			return true
		}
	}
	return false
}

func (v *View) currentLine() string {
	if v.curLine >= 0 && v.curLine < len(v.lines) {
		return v.lines[v.curLine]
	}
	return ""
}

func (v *View) moveCursor(dLine, dCol int) {
	v.curLine += dLine
	if v.curLine < 0 {
		v.curLine = 0
	}
	if v.curLine >= len(v.lines) {
		v.curLine = len(v.lines) - 1
	}
	if v.curLine < 0 {
		v.curLine = 0
	}

	v.curCol += dCol
	if v.curCol < 0 {
		v.curCol = 0
	}
	if max := len([]rune(v.currentLine())); v.curCol > max {
		v.curCol = max
	}

	_, h := v.screen.Size()
	if h > 1 {
		h-- // status line
	}
	if v.curLine < v.top {
		v.top = v.curLine
	}
	if v.curLine >= v.top+h {
		v.top = v.curLine - h + 1
	}
}

func (v *View) draw() {
	w, h := v.screen.Size()
	bg := toTcell(v.th.Background)
	defStyle := tcell.StyleDefault.Background(bg).Foreground(toTcell(v.th.Foreground))
	v.screen.Fill(' ', defStyle)

	contentRows := h - 1
	for row := 0; row < contentRows; row++ {
		idx := v.top + row
		if idx >= len(v.lines) {
			break
		}
		v.drawLine(row, idx, w, defStyle)
	}

	v.drawStatus(w, h-1)
	v.screen.Show()
}

// drawLine paints one buffer line, expanding tabs and substituting
// whitespace glyphs the way the markup renderer does.
func (v *View) drawLine(row, idx, width int, defStyle tcell.Style) {
	line := v.lines[idx]
	runes := []rune(line)
	toks, _ := v.tok.TokenizeLine(line, v.states[idx])
	wsParts := whitespace.Annotate(line, tokenize.Parts(line, toks, nil), v.mode)

	tabSize := v.cfg.TabSize
	dimStyle := defStyle.Foreground(dimColor(v.th))

	x := 0
	cursorX := -1
	for i, r := range runes {
		if idx == v.curLine && i == v.curCol {
			cursorX = x
		}
		style := defStyle
		if tt, ok := tokenAt(toks, i); ok {
			style = styleFor(v.th, tt, defStyle)
		}
		visualized := v.mode != whitespace.None && partIsWhitespace(wsParts, i)

		if r == '\t' {
			run := tabSize - x%tabSize
			if visualized {
				v.screen.SetContent(x, row, '→', nil, dimStyle)
			} else {
				v.screen.SetContent(x, row, ' ', nil, style)
			}
			for j := 1; j < run; j++ {
				v.screen.SetContent(x+j, row, ' ', nil, style)
			}
			x += run
		} else if r == ' ' && visualized {
			v.screen.SetContent(x, row, '·', nil, dimStyle)
			x++
		} else {
			v.screen.SetContent(x, row, r, nil, style)
			x += runewidth.RuneWidth(r)
		}
		if x >= width {
			break
		}
	}
	if idx == v.curLine {
		if cursorX < 0 {
			cursorX = x
		}
		v.screen.ShowCursor(cursorX, row)
	}
}

func (v *View) drawStatus(width, row int) {
	if row < 0 {
		return
	}
	style := tcell.StyleDefault.
		Background(toTcell(v.th.Foreground)).
		Foreground(toTcell(v.th.Background))

	status := []rune(v.title + "  " + v.th.Name)
	for x := 0; x < width; x++ {
		r := ' '
		if x < len(status) {
			r = status[x]
		}
		v.screen.SetContent(x, row, r, nil, style)
	}
}

// tokenAt returns the type of the token covering the rune column.
func tokenAt(toks []tokenize.Token, col int) (tokenize.TokenType, bool) {
	for _, t := range toks {
		if t.Contains(col) {
			return t.Type, true
		}
		if t.StartCol > col {
			break
		}
	}
	return tokenize.TokenText, false
}

// partIsWhitespace reports whether the rune column falls in a whitespace
// part of the annotated list.
func partIsWhitespace(parts []render.Part, col int) bool {
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i].StartIndex <= col {
			return parts[i].Whitespace
		}
	}
	return false
}

func styleFor(th *theme.Theme, tt tokenize.TokenType, base tcell.Style) tcell.Style {
	s := th.StyleFor(tt)
	style := base.Foreground(toTcell(s.Foreground))
	if s.Bold {
		style = style.Bold(true)
	}
	if s.Italic {
		style = style.Italic(true)
	}
	if s.Underline {
		style = style.Underline(true)
	}
	return style
}

func toTcell(c theme.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func dimColor(th *theme.Theme) tcell.Color {
	return tcell.NewRGBColor(
		(int32(th.Foreground.R)+int32(th.Background.R))/2,
		(int32(th.Foreground.G)+int32(th.Background.G))/2,
		(int32(th.Foreground.B)+int32(th.Background.B))/2,
	)
}
