// Package htmldoc assembles rendered lines into a standalone HTML page.
package htmldoc

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/dshills/linemark/internal/theme"
)

// Write emits a complete HTML document: the theme's stylesheet followed by
// one div per rendered line. Each entry of lines is the markup produced by
// the renderer for that line and is written verbatim.
func Write(w io.Writer, th *theme.Theme, title string, lines []string) error {
	var b strings.Builder
	b.Grow(len(lines)*80 + 512)

	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("<style>\n")
	b.WriteString(th.CSS())
	b.WriteString("</style>\n</head>\n<body>\n")

	for _, line := range lines {
		b.WriteString(`<div class="line">`)
		b.WriteString(line)
		b.WriteString("</div>\n")
	}

	b.WriteString("</body>\n</html>\n")

	_, err := io.WriteString(w, b.String())
	return err
}
