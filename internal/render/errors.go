package render

import "errors"

// Errors returned by the renderer.
var (
	// ErrMissingParts indicates a non-empty line was rendered with an
	// empty part list. The part list must cover the whole line; rendering
	// without it would leave every offset computation undefined.
	ErrMissingParts = errors.New("render: non-empty line has no styling parts")
)
