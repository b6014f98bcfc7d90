// Package render converts a single buffer line into measurable HTML markup.
//
// The renderer is a pure function: given a line, its styling parts, and
// resolved display options it produces the escaped markup for the line and a
// per-character offset table used for cursor placement and hit-testing.
//
// Responsibilities:
//   - Tab expansion against visual tab stops
//   - HTML entity escaping and control-character substitution
//   - Whitespace visualization glyphs with measured part widths
//   - Truncation with an ellipsis after a configured column
//   - Character index to part-local offset mapping
//
// The renderer holds no state between calls and is safe to invoke
// concurrently from any number of goroutines.
package render
