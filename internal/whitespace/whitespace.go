// Package whitespace decides which runs of a line become whitespace parts.
//
// The renderer only distinguishes "whitespace part" from "plain part"; the
// policy of which spaces and tabs are shown as glyphs (none, only at line
// boundaries, or everywhere) belongs to the caller building the parts. This
// package implements that policy by splitting an existing part list so the
// selected runs carry the whitespace flag.
package whitespace

import (
	"fmt"
	"strings"

	"github.com/dshills/linemark/internal/render"
)

// Mode selects which whitespace runs are visualized.
type Mode int

const (
	// None disables whitespace visualization.
	None Mode = iota

	// Boundary visualizes leading and trailing whitespace only.
	Boundary

	// All visualizes every whitespace run.
	All
)

// String returns the mode name as used in configuration files.
func (m Mode) String() string {
	switch m {
	case None:
		return "none"
	case Boundary:
		return "boundary"
	case All:
		return "all"
	default:
		return "unknown"
	}
}

// ParseMode parses a configuration value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "boundary":
		return Boundary, nil
	case "all":
		return All, nil
	default:
		return None, fmt.Errorf("invalid whitespace mode %q", s)
	}
}

// whitespaceClass is appended to the original class of a split-off run so
// themes can style visualized whitespace separately.
const whitespaceClass = "whitespace"

// Annotate splits parts so that the whitespace runs selected by mode become
// dedicated parts flagged Whitespace. The returned list keeps the input's
// ordering, non-overlap, and full coverage of the line. With mode None the
// input is returned unchanged.
func Annotate(line string, parts []render.Part, mode Mode) []render.Part {
	if mode == None || len(parts) == 0 || len(line) == 0 {
		return parts
	}

	runes := []rune(line)

	// Boundary mode selects the complement of [firstNonSpace, lastNonSpace+1);
	// All mode selects everything.
	selStart, selEnd := len(runes), 0
	if mode == All {
		selStart, selEnd = 0, 0
	} else {
		for i, r := range runes {
			if !isSpace(r) {
				selStart = i
				break
			}
		}
		for i := len(runes) - 1; i >= 0; i-- {
			if !isSpace(runes[i]) {
				selEnd = i + 1
				break
			}
		}
	}

	visualized := func(i int) bool {
		return isSpace(runes[i]) && (i < selStart || i >= selEnd)
	}

	out := make([]render.Part, 0, len(parts)+4)

	for i, part := range parts {
		end := len(runes)
		if i+1 < len(parts) {
			end = parts[i+1].StartIndex
		}
		if end > len(runes) {
			end = len(runes)
		}

		if part.StartIndex >= end {
			// Zero-length part: pass through untouched.
			out = append(out, part)
			continue
		}

		pos := part.StartIndex
		for pos < end {
			ws := visualized(pos)
			run := pos + 1
			for run < end && visualized(run) == ws {
				run++
			}
			if ws {
				out = append(out, render.Part{
					StartIndex: pos,
					Class:      part.Class + " " + whitespaceClass,
					Whitespace: true,
				})
			} else {
				out = append(out, render.Part{StartIndex: pos, Class: part.Class})
			}
			pos = run
		}
	}

	return out
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}
