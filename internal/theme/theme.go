// Package theme maps token types to CSS classes and colors.
//
// A theme drives both output surfaces: the CSS block emitted alongside the
// HTML markup, and the colors used by the terminal preview.
package theme

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/linemark/internal/tokenize"
)

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// ColorFromHex parses "#rgb" or "#rrggbb".
func ColorFromHex(hex string) (Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	switch len(hex) {
	case 3:
		var c Color
		for i, dst := range []*uint8{&c.R, &c.G, &c.B} {
			v, err := strconv.ParseUint(hex[i:i+1], 16, 8)
			if err != nil {
				return Color{}, fmt.Errorf("invalid hex color: #%s", hex)
			}
			*dst = uint8(v * 17)
		}
		return c, nil
	case 6:
		var c Color
		for i, dst := range []*uint8{&c.R, &c.G, &c.B} {
			v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
			if err != nil {
				return Color{}, fmt.Errorf("invalid hex color: #%s", hex)
			}
			*dst = uint8(v)
		}
		return c, nil
	default:
		return Color{}, fmt.Errorf("invalid hex color length: #%s", hex)
	}
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Style is the visual treatment of one token type.
type Style struct {
	Foreground Color
	Bold       bool
	Italic     bool
	Underline  bool
}

// Theme defines colors for rendered lines.
type Theme struct {
	// Name is the display name of the theme.
	Name string

	// Foreground is the default text color.
	Foreground Color

	// Background is the page or screen background.
	Background Color

	// Styles maps token types to their styles.
	Styles map[tokenize.TokenType]Style
}

// StyleFor returns the style for a token type, falling back to the default
// foreground when the theme does not define one.
func (t *Theme) StyleFor(tok tokenize.TokenType) Style {
	if s, ok := t.Styles[tok]; ok {
		return s
	}
	return Style{Foreground: t.Foreground}
}

// CSS renders the theme as a stylesheet block. Class names match the token
// type names used when building parts, plus the whitespace class used by
// visualized whitespace runs.
func (t *Theme) CSS() string {
	var b strings.Builder
	fmt.Fprintf(&b, "body { background: %s; color: %s; }\n", t.Background.Hex(), t.Foreground.Hex())
	b.WriteString(".line { font-family: monospace; white-space: pre; }\n")
	fmt.Fprintf(&b, ".whitespace { color: %s; }\n", dim(t.Foreground, t.Background).Hex())

	types := make([]tokenize.TokenType, 0, len(t.Styles))
	for tok := range t.Styles {
		types = append(types, tok)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	for _, tok := range types {
		s := t.Styles[tok]
		fmt.Fprintf(&b, ".%s { color: %s;", tok, s.Foreground.Hex())
		if s.Bold {
			b.WriteString(" font-weight: bold;")
		}
		if s.Italic {
			b.WriteString(" font-style: italic;")
		}
		if s.Underline {
			b.WriteString(" text-decoration: underline;")
		}
		b.WriteString(" }\n")
	}
	return b.String()
}

// dim blends the foreground halfway toward the background, used for
// whitespace glyphs so they read quieter than text.
func dim(fg, bg Color) Color {
	return Color{
		R: uint8((int(fg.R) + int(bg.R)) / 2),
		G: uint8((int(fg.G) + int(bg.G)) / 2),
		B: uint8((int(fg.B) + int(bg.B)) / 2),
	}
}

// Default returns the built-in dark theme.
func Default() *Theme {
	return &Theme{
		Name:       "Default Dark",
		Foreground: Color{212, 212, 212},
		Background: Color{30, 30, 30},
		Styles: map[tokenize.TokenType]Style{
			tokenize.TokenComment:     {Foreground: Color{106, 153, 85}, Italic: true},
			tokenize.TokenString:      {Foreground: Color{206, 145, 120}},
			tokenize.TokenNumber:      {Foreground: Color{181, 206, 168}},
			tokenize.TokenKeyword:     {Foreground: Color{86, 156, 214}, Bold: true},
			tokenize.TokenOperator:    {Foreground: Color{212, 212, 212}},
			tokenize.TokenIdentifier:  {Foreground: Color{156, 220, 254}},
			tokenize.TokenPunctuation: {Foreground: Color{212, 212, 212}},
		},
	}
}

// yamlTheme is the on-disk theme format.
type yamlTheme struct {
	Name       string               `yaml:"name"`
	Foreground string               `yaml:"foreground"`
	Background string               `yaml:"background"`
	Tokens     map[string]yamlStyle `yaml:"tokens"`
}

type yamlStyle struct {
	Color     string `yaml:"color"`
	Bold      bool   `yaml:"bold"`
	Italic    bool   `yaml:"italic"`
	Underline bool   `yaml:"underline"`
}

// Load reads a YAML theme file. Settings missing from the file keep the
// default dark theme's values.
func Load(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML theme document.
func Parse(data []byte) (*Theme, error) {
	var raw yamlTheme
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing theme: %w", err)
	}

	t := Default()
	if raw.Name != "" {
		t.Name = raw.Name
	}
	if raw.Foreground != "" {
		c, err := ColorFromHex(raw.Foreground)
		if err != nil {
			return nil, err
		}
		t.Foreground = c
	}
	if raw.Background != "" {
		c, err := ColorFromHex(raw.Background)
		if err != nil {
			return nil, err
		}
		t.Background = c
	}

	for name, s := range raw.Tokens {
		tok := tokenize.TokenTypeFromString(name)
		if tok == tokenize.TokenText && name != "text" {
			return nil, fmt.Errorf("unknown token type %q in theme", name)
		}
		style := Style{Bold: s.Bold, Italic: s.Italic, Underline: s.Underline, Foreground: t.Foreground}
		if s.Color != "" {
			c, err := ColorFromHex(s.Color)
			if err != nil {
				return nil, err
			}
			style.Foreground = c
		}
		t.Styles[tok] = style
	}

	return t, nil
}
