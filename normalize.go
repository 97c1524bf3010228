package scribe

import (
	"context"
	"regexp"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// textNormalizer defines the contract for pre-pagination cleanup.
type textNormalizer interface {
	Normalize(ctx context.Context, content string) string
}

// noteNormalizer prepares raw text for pagination. It only rewrites
// whitespace; inline syntax such as ==highlights== stays as written, so the
// paginator and the renderer both see the characters the user typed.
type noteNormalizer struct{}

// Normalize applies line-ending normalization, then blank-line compression.
func (n *noteNormalizer) Normalize(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	content = NormalizeLineEndings(content)
	content = CompressBlankLines(content)
	return content
}

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// CompressBlankLines limits consecutive blank lines to 2 maximum.
func CompressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}
