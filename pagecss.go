package scribe

import (
	"context"
	"fmt"
	"strings"
)

// marginLineColor is the classic red vertical margin rule.
const marginLineColor = "#e8a0a0"

// ruledLineColor is the horizontal guide line color.
const ruledLineColor = "#c8d8e8"

// marginLineOffsetPx is how far the vertical margin line sits from the left
// page edge.
const marginLineOffsetPx = 60.0

// BuildPageCSS generates the stylesheet for one rendered page. The page
// geometry, padding, and line height are derived from the same Metrics the
// Paginator used, which is what keeps the estimated page breaks honest: the
// browser lays the text out inside exactly the box the estimate assumed.
func BuildPageCSS(m Metrics, style *PageStyle, fontSizePx, lineHeight float64) string {
	if fontSizePx < m.MinFontSizePx {
		fontSizePx = m.MinFontSizePx
	}
	if lineHeight < m.MinLineHeight {
		lineHeight = m.MinLineHeight
	}
	st := style.merged()
	pxPerLine := fontSizePx * lineHeight

	var buf strings.Builder

	fmt.Fprintf(&buf, `
html, body {
  margin: 0;
  padding: 0;
  background: %s;
}
.page {
  box-sizing: border-box;
  width: %.0fpx;
  height: %.0fpx;
  padding: %.0fpx %.0fpx;
  overflow: hidden;
  position: relative;
  background: %s;
  font-family: %s;
  font-size: %.1fpx;
  line-height: %.2f;
  color: %s;
  word-break: keep-all;
}
`, st.PaperColor,
		m.PageWidthPx, m.PageHeightPx,
		m.PaddingYPx/2, m.PaddingXPx/2,
		st.PaperColor, st.FontFamily, fontSizePx, lineHeight, st.InkColor)

	if st.RuledLines {
		fmt.Fprintf(&buf, `
.page {
  background-image: repeating-linear-gradient(
    transparent,
    transparent %.2fpx,
    %s %.2fpx,
    %s %.2fpx
  );
  background-position: 0 %.0fpx;
}
`, pxPerLine-1, ruledLineColor, pxPerLine-1, ruledLineColor, pxPerLine, m.PaddingYPx/2)
	}

	if st.MarginLine {
		fmt.Fprintf(&buf, `
.page::before {
  content: "";
  position: absolute;
  top: 0;
  bottom: 0;
  left: %.0fpx;
  width: 1px;
  background: %s;
}
`, marginLineOffsetPx, marginLineColor)
	}

	// Element heights mirror the paginator's factors: flat table rows, a
	// half-line rule, a heading at one and a half lines.
	fmt.Fprintf(&buf, `
h1, h2, h3, h4, h5, h6 {
  margin: 0;
  font-size: %.1fpx;
  line-height: %.2f;
  font-weight: normal;
  text-decoration: underline;
}
p {
  margin: 0;
}
ul, ol {
  margin: 0;
  padding-left: 1.2em;
}
li {
  margin: 0;
}
hr {
  border: none;
  border-top: 1px solid %s;
  margin: %.2fpx 0;
}
table {
  border-collapse: collapse;
  width: 100%%;
}
th, td {
  border: 1px solid %s;
  padding: 0 6px;
  height: %.2fpx;
  text-align: left;
  font-weight: normal;
}
mark {
  background: #fff3a0;
  color: inherit;
}
`, fontSizePx*1.2, lineHeight*1.25,
		marginLineColor, pxPerLine*0.25-0.5,
		st.InkColor, pxPerLine)

	return buf.String()
}

// buildPrintCSS extends the page stylesheet for the multi-page PDF print:
// each page div becomes one printed sheet.
func buildPrintCSS() string {
	return `
.page {
  page-break-after: always;
  break-after: page;
}
.page:last-child {
  page-break-after: auto;
  break-after: auto;
}
`
}

// cssInjector defines the contract for CSS injection into HTML.
type cssInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// cssInjection injects CSS as a <style> block into HTML content.
type cssInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
// CSS content is sanitized to prevent injection attacks.
func (s *cssInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	// Check for cancellation
	if ctx.Err() != nil {
		return htmlContent
	}

	sanitizedCSS := sanitizeCSS(cssContent)
	styleBlock := "<style>" + sanitizedCSS + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	// Try inserting before </head>
	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	// Try inserting after <body>
	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		closeIdx := strings.Index(htmlContent[idx:], ">")
		if closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	// Fallback: prepend
	return styleBlock + htmlContent
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
