package importer

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// FromHTML converts rich text (pasted HTML or an .html file) into the note
// grammar: headings become #-lines, tables become pipe rows with a GFM
// separator after the first row, hr becomes ---, list items get a dash.
// Everything else degrades to plain paragraph lines.
func FromHTML(r io.Reader) (string, error) {
	root, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	var c htmlCollector
	c.walk(root)
	text := strings.TrimSpace(strings.Join(c.lines, "\n"))
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

// htmlCollector accumulates note-grammar lines while walking the DOM.
type htmlCollector struct {
	lines []string
}

// headingLevels maps heading tags to their ATX marker depth.
var headingLevels = map[string]int{
	"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6,
}

func (c *htmlCollector) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "head", "noscript":
			return
		case "hr":
			c.emit("---")
			return
		case "table":
			c.emitTable(n)
			return
		case "li":
			if text := collapsedText(n); text != "" {
				c.emit("- " + text)
			}
			return
		case "p", "div", "blockquote", "pre":
			// Paragraph-level containers flush their text as one line each,
			// then recurse for nested structure (tables inside divs).
			if text := directText(n); text != "" {
				c.emit(text)
			}
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				if child.Type == html.ElementNode {
					c.walk(child)
				}
			}
			return
		}
		if level, ok := headingLevels[n.Data]; ok {
			if text := collapsedText(n); text != "" {
				c.emit(strings.Repeat("#", level) + " " + text)
			}
			return
		}
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.walk(child)
	}

	// Bare text directly under body (no paragraph wrapper).
	if n.Type == html.TextNode && n.Parent != nil && n.Parent.Data == "body" {
		if text := collapseWhitespace(n.Data); text != "" {
			c.emit(text)
		}
	}
}

// emitTable renders a <table> as pipe rows, inserting the GFM alignment row
// after the first row so the result parses as a table downstream.
func (c *htmlCollector) emitTable(table *html.Node) {
	var rows [][]string
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var cells []string
			for cell := n.FirstChild; cell != nil; cell = cell.NextSibling {
				if cell.Type == html.ElementNode && (cell.Data == "td" || cell.Data == "th") {
					cells = append(cells, collapsedText(cell))
				}
			}
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			visit(child)
		}
	}
	visit(table)

	if len(rows) == 0 {
		return
	}
	c.emit("| " + strings.Join(rows[0], " | ") + " |")
	separator := make([]string, len(rows[0]))
	for i := range separator {
		separator[i] = ":---"
	}
	c.emit("| " + strings.Join(separator, " | ") + " |")
	for _, row := range rows[1:] {
		c.emit("| " + strings.Join(row, " | ") + " |")
	}
}

func (c *htmlCollector) emit(line string) {
	c.lines = append(c.lines, line)
}

// collapsedText returns all text beneath n with whitespace runs collapsed.
func collapsedText(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			visit(child)
		}
	}
	visit(n)
	return collapseWhitespace(b.String())
}

// directText returns the inline text of n itself, skipping nested
// block-level children that walk() will visit on its own.
func directText(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "table", "div", "p", "ul", "ol", "blockquote", "hr":
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			visit(child)
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		visit(child)
	}
	return collapseWhitespace(b.String())
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
