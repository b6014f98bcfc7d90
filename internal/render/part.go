package render

// Part is a styling segment of a line. Parts supplied to Render must be
// sorted by StartIndex, non-overlapping, and together cover the whole line:
// the first part starts at 0 and each part ends where the next begins (the
// last part ends at the line length).
type Part struct {
	// StartIndex is the rune index into the line where this part begins.
	StartIndex int

	// Class is the CSS class emitted on the part's span. It is opaque to
	// the renderer and written into the markup verbatim.
	Class string

	// Whitespace marks the part as a whitespace run. When whitespace
	// rendering is enabled these parts take the glyph-substitution path
	// and their span carries a computed pixel width.
	Whitespace bool
}

// Input is an immutable render request for one line.
type Input struct {
	// Line is the full line content without its terminating newline.
	Line string

	// TabSize is the number of columns per tab stop. Values below 1 are
	// treated as 1.
	TabSize int

	// SpaceWidth is the pixel width of one whitespace glyph, used only to
	// size the spans of whitespace parts.
	SpaceWidth int

	// StopRenderingAfter is the 1-based column after which the line is
	// truncated with an ellipsis. A negative value disables truncation.
	StopRenderingAfter int

	// RenderWhitespace enables glyph substitution for whitespace parts.
	// Which runs of the line are whitespace parts is the caller's policy;
	// see the whitespace package.
	RenderWhitespace bool

	// RenderHardSpaces renders no-break spaces (U+00A0) as a visible
	// middle dot instead of passing them through.
	RenderHardSpaces bool

	// RenderControlChars renders control characters below U+0020 as
	// Unicode control-picture glyphs.
	RenderControlChars bool

	// Parts is the ordered styling segmentation of Line.
	Parts []Part
}

// Output is the immutable result of rendering one line.
type Output struct {
	// CharOffsets maps each rune index of the line to its horizontal
	// offset within its own part. The offset resets to 0 at every part
	// boundary and a tab advances it by the tab's full run length. When
	// the line renders completely the table carries one trailing entry
	// for the position just past the last character; when truncation
	// fires the table ends at the last rendered index.
	CharOffsets []int

	// LastPartIndex is the index into Input.Parts of the last part that
	// produced output. It equals len(Parts)-1 unless truncation fired.
	LastPartIndex int

	// HTML is the rendered markup for the line.
	HTML string
}
