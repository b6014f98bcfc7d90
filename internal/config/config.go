// Package config loads and watches linemark settings.
//
// Settings live in a TOML file. A missing file is not an error: the
// defaults apply. Components subscribe to the Notifier to pick up live
// reloads from the Watcher.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/linemark/internal/render"
	"github.com/dshills/linemark/internal/whitespace"
)

// Config holds resolved rendering settings.
type Config struct {
	// TabSize is the number of columns per tab stop.
	TabSize int `toml:"tab_size"`

	// SpaceWidth is the pixel width of one whitespace glyph.
	SpaceWidth int `toml:"space_width"`

	// TruncateAfter is the 1-based column after which lines are cut with
	// an ellipsis. Negative disables truncation.
	TruncateAfter int `toml:"truncate_after"`

	// Whitespace selects whitespace visualization: none, boundary, all.
	Whitespace string `toml:"whitespace"`

	// RenderHardSpaces shows no-break spaces as middle dots.
	RenderHardSpaces bool `toml:"render_hard_spaces"`

	// RenderControlChars shows control characters as control pictures.
	RenderControlChars bool `toml:"render_control_chars"`

	// Theme is the path of a YAML theme file; empty selects the built-in
	// dark theme.
	Theme string `toml:"theme"`

	// LuaTokenizer is the path of a Lua tokenizer script; empty selects
	// the built-in tokenizer.
	LuaTokenizer string `toml:"lua_tokenizer"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		TabSize:       4,
		SpaceWidth:    8,
		TruncateAfter: -1,
		Whitespace:    "none",
	}
}

// Load reads settings from a TOML file, applying defaults for anything the
// file leaves out. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), &ParseError{Path: path, Message: err.Error(), Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks field ranges and enum values.
func (c *Config) Validate() error {
	if c.TabSize < 1 {
		return fmt.Errorf("%w: tab_size must be >= 1, got %d", ErrInvalidValue, c.TabSize)
	}
	if c.SpaceWidth < 0 {
		return fmt.Errorf("%w: space_width must be >= 0, got %d", ErrInvalidValue, c.SpaceWidth)
	}
	if _, err := whitespace.ParseMode(c.Whitespace); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return nil
}

// WhitespaceMode returns the parsed whitespace mode. Validate must have
// accepted the config first.
func (c *Config) WhitespaceMode() whitespace.Mode {
	mode, _ := whitespace.ParseMode(c.Whitespace)
	return mode
}

// Input assembles the render request for one line from these settings and
// its styling parts.
func (c *Config) Input(line string, parts []render.Part) render.Input {
	return render.Input{
		Line:               line,
		TabSize:            c.TabSize,
		SpaceWidth:         c.SpaceWidth,
		StopRenderingAfter: c.TruncateAfter,
		RenderWhitespace:   c.WhitespaceMode() != whitespace.None,
		RenderHardSpaces:   c.RenderHardSpaces,
		RenderControlChars: c.RenderControlChars,
		Parts:              parts,
	}
}
