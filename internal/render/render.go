package render

import (
	"strconv"
	"strings"
)

// Glyph sequences emitted into the markup. These are entity escapes so the
// produced string stays plain ASCII wherever a substitution happens.
const (
	glyphSpace     = "&nbsp;"
	glyphMiddleDot = "&middot;"
	glyphTabArrow  = "&rarr;"
	glyphEllipsis  = "&hellip;"
	glyphNull      = "&#00;"
	glyphCR        = "&#8203;" // zero-width space, keeps CR from breaking host markup
)

// controlPictureBase is the distance from a control code point to its
// Unicode control-picture stand-in (U+2400 block). Valid only for code
// points in [0, 32).
const controlPictureBase = 0x2400

// emptyLineHTML is the fixed markup for an empty line. The inner non-break
// space keeps empty lines hit-testable and selectable in the host surface.
const emptyLineHTML = "<span><span>&nbsp;</span></span>"

// Render transforms one line into markup and its character offset table.
// It is a pure function of its input; identical inputs produce byte
// identical outputs. The only error condition is an empty part list for a
// non-empty line.
func Render(in Input) (*Output, error) {
	if len(in.Line) == 0 {
		return &Output{
			CharOffsets:   []int{},
			LastPartIndex: 0,
			HTML:          emptyLineHTML,
		}, nil
	}
	if len(in.Parts) == 0 {
		return nil, ErrMissingParts
	}

	tabSize := in.TabSize
	if tabSize < 1 {
		tabSize = 1
	}

	line := []rune(in.Line)

	// 0-based index at which rendering stops and the ellipsis is emitted.
	breakIndex := len(line)
	if in.StopRenderingAfter >= 0 {
		breakIndex = in.StopRenderingAfter - 1
	}

	offsets := make([]int, 0, len(line)+1)

	var out strings.Builder
	out.Grow(len(in.Line) + len(in.Line)/2 + 64)
	out.WriteString("<span>")

	// Cumulative extra columns inserted by tab expansion. Tab stops are
	// computed against the visual column charIndex+tabsCharDelta, not the
	// raw character index, so tabs after tabs still land on stop
	// boundaries.
	tabsCharDelta := 0
	charIndex := 0
	charOffsetInPart := 0

	for partIndex := range in.Parts {
		part := &in.Parts[partIndex]

		toCharIndex := len(line)
		if partIndex+1 < len(in.Parts) {
			toCharIndex = in.Parts[partIndex+1].StartIndex
			if toCharIndex > len(line) {
				toCharIndex = len(line)
			}
		}
		charOffsetInPart = 0

		if part.Whitespace && in.RenderWhitespace {
			// The span's width attribute depends on the glyph count,
			// which is only known once the part is fully scanned, so the
			// content is buffered and the tag written at part close.
			var buf strings.Builder
			glyphCount := 0

			for ; charIndex < toCharIndex; charIndex++ {
				offsets = append(offsets, charOffsetInPart)

				if line[charIndex] == '\t' {
					insertSpacesCount := tabSize - (charIndex+tabsCharDelta)%tabSize
					tabsCharDelta += insertSpacesCount - 1
					charOffsetInPart += insertSpacesCount - 1
					buf.WriteString(glyphTabArrow)
					glyphCount++
					for i := 1; i < insertSpacesCount; i++ {
						buf.WriteString(glyphSpace)
						glyphCount++
					}
				} else {
					buf.WriteString(glyphMiddleDot)
					glyphCount++
				}
				charOffsetInPart++

				if charIndex >= breakIndex {
					openWhitespaceSpan(&out, part.Class, in.SpaceWidth*glyphCount)
					out.WriteString(buf.String())
					out.WriteString(glyphEllipsis)
					out.WriteString("</span></span>")
					return &Output{
						CharOffsets:   offsets,
						LastPartIndex: partIndex,
						HTML:          out.String(),
					}, nil
				}
			}

			openWhitespaceSpan(&out, part.Class, in.SpaceWidth*glyphCount)
			out.WriteString(buf.String())
			out.WriteString("</span>")
		} else {
			out.WriteString(`<span class="`)
			out.WriteString(part.Class)
			out.WriteString(`">`)

			for ; charIndex < toCharIndex; charIndex++ {
				offsets = append(offsets, charOffsetInPart)

				switch r := line[charIndex]; r {
				case '\t':
					insertSpacesCount := tabSize - (charIndex+tabsCharDelta)%tabSize
					tabsCharDelta += insertSpacesCount - 1
					charOffsetInPart += insertSpacesCount - 1
					for i := 0; i < insertSpacesCount; i++ {
						out.WriteString(glyphSpace)
					}
				case ' ':
					out.WriteString(glyphSpace)
				case '<':
					out.WriteString("&lt;")
				case '>':
					out.WriteString("&gt;")
				case '&':
					out.WriteString("&amp;")
				case 0:
					out.WriteString(glyphNull)
				case '\uFEFF', '\u2028':
					out.WriteRune('�')
				case ' ':
					if in.RenderHardSpaces {
						out.WriteString(glyphMiddleDot)
					} else {
						out.WriteRune(r)
					}
				case '\r':
					out.WriteString(glyphCR)
				default:
					if r < 32 && in.RenderControlChars {
						out.WriteRune(r + controlPictureBase)
					} else {
						out.WriteRune(r)
					}
				}
				charOffsetInPart++

				if charIndex >= breakIndex {
					out.WriteString(glyphEllipsis)
					out.WriteString("</span></span>")
					return &Output{
						CharOffsets:   offsets,
						LastPartIndex: partIndex,
						HTML:          out.String(),
					}, nil
				}
			}

			out.WriteString("</span>")
		}
	}

	out.WriteString("</span>")

	// Trailing entry for the position just past the last character, so
	// callers can measure end-of-line without special-casing.
	offsets = append(offsets, charOffsetInPart)

	return &Output{
		CharOffsets:   offsets,
		LastPartIndex: len(in.Parts) - 1,
		HTML:          out.String(),
	}, nil
}

func openWhitespaceSpan(out *strings.Builder, class string, widthPx int) {
	out.WriteString(`<span class="`)
	out.WriteString(class)
	out.WriteString(`" style="width:`)
	out.WriteString(strconv.Itoa(widthPx))
	out.WriteString(`px">`)
}
