package scribe

import (
	"bytes"
	"context"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// docShell wraps page divs in a complete HTML5 document. The service
// composes one shell per screenshot and a combined shell for the PDF print.
const docShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Notes</title>
</head>
<body>
%s
</body>
</html>`

// htmlConverter abstracts page-text to HTML conversion. ToHTML returns a
// body fragment; the service wraps it in the page div and document shell.
type htmlConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// goldmarkConverter renders a page's text using goldmark (pure Go). The GFM
// extension parses the same pipe tables, headings, and thematic breaks the
// paginator's grammar emits; the two must agree or page content shifts
// visually.
type goldmarkConverter struct {
	md goldmark.Markdown
}

// newGoldmarkConverter creates a goldmarkConverter with GFM extensions.
func newGoldmarkConverter() *goldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,         // Tables, strikethrough, autolinks, task lists
			&highlightExtension{}, // ==text== renders as <mark>
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // style code via the page stylesheet
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // every pagination line is a visual line
			html.WithXHTML(),     // Self-closing tags
		),
	)
	return &goldmarkConverter{md: md}
}

// ToHTML converts one page's text to an HTML body fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *goldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
