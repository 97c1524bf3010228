package scribe

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Metrics holds the typographic heuristics the paginator uses to estimate
// how much text fits on one rendered page. The values approximate the
// browser layout of the handwriting stylesheet; they are calibration knobs,
// not exact font metrics. Changing them never changes the pagination
// algorithm itself, only where pages break.
type Metrics struct {
	// Page geometry in CSS pixels (A4 at 96 DPI by default).
	PageWidthPx  float64
	PageHeightPx float64

	// Total padding subtracted from the page geometry before any content
	// is placed (left+right, top+bottom).
	PaddingXPx float64
	PaddingYPx float64

	// CharWidthRatio estimates the average glyph advance as a fraction of
	// the font size. Tuned for the handwriting font stack, which runs
	// noticeably wider than typical serif text.
	CharWidthRatio float64

	// Per-element height factors, applied to pxPerLine
	// (fontSizePx x lineHeight).
	TableRowFactor float64
	RuleFactor     float64
	HeadingFactor  float64

	// Clamps for caller-supplied typography. Zero or negative inputs are
	// raised to these minimums so the estimate never divides by zero.
	MinFontSizePx float64
	MinLineHeight float64
}

// DefaultMetrics returns the calibration used by the built-in page styles.
func DefaultMetrics() Metrics {
	return Metrics{
		PageWidthPx:    794,
		PageHeightPx:   1123,
		PaddingXPx:     100,
		PaddingYPx:     110,
		CharWidthRatio: 0.6,
		TableRowFactor: 1.0,
		RuleFactor:     0.5,
		HeadingFactor:  1.5,
		MinFontSizePx:  8,
		MinLineHeight:  1.0,
	}
}

// Paginator splits a document into page-sized chunks of text without access
// to a real layout engine. It estimates wrapping and vertical metrics from
// character counts and per-element height factors, so its output must be
// rendered with the same geometry it assumed (see BuildPageCSS).
//
// A Paginator is a pure value: it holds no mutable state, performs no I/O,
// and is safe for concurrent use.
type Paginator struct {
	m Metrics
}

// PaginatorOption configures a Paginator.
type PaginatorOption func(*Paginator)

// WithMetrics overrides the default layout calibration.
func WithMetrics(m Metrics) PaginatorOption {
	return func(p *Paginator) {
		p.m = m
	}
}

// NewPaginator creates a Paginator with default metrics.
func NewPaginator(opts ...PaginatorOption) *Paginator {
	p := &Paginator{m: DefaultMetrics()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Paginate splits the document using the default metrics.
func Paginate(doc string, fontSizePx, lineHeight float64) []string {
	return NewPaginator().Paginate(doc, fontSizePx, lineHeight)
}

// Structural grammar shared with the renderer: ATX headings, pipe table
// rows, and ---/___/*** horizontal rules. Everything else is paragraph text.
var (
	headingPattern = regexp.MustCompile(`^#{1,6}\s`)
	rulePattern    = regexp.MustCompile(`^(-{3,}|_{3,}|\*{3,})$`)
)

// blockKind classifies a run of contiguous document lines.
type blockKind int

const (
	blockText  blockKind = iota // single line: paragraph, heading, or blank
	blockTable                  // consecutive lines whose trimmed form starts with |
	blockRule                   // one line matching rulePattern
)

// block is a maximal run of lines of one kind. Blocks partition the document
// with no gaps or overlaps; line content is stored verbatim, trimming is
// applied only during classification.
type block struct {
	kind  blockKind
	lines []string
}

// segmentBlocks scans lines in order and groups them into blocks. An empty
// line is its own one-line text block; there is no merging across block
// boundaries.
func segmentBlocks(lines []string) []block {
	var blocks []block
	for i := 0; i < len(lines); {
		trimmed := strings.TrimSpace(lines[i])
		switch {
		case strings.HasPrefix(trimmed, "|"):
			j := i
			for j < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[j]), "|") {
				j++
			}
			blocks = append(blocks, block{kind: blockTable, lines: lines[i:j]})
			i = j
		case rulePattern.MatchString(trimmed):
			blocks = append(blocks, block{kind: blockRule, lines: lines[i : i+1]})
			i++
		default:
			blocks = append(blocks, block{kind: blockText, lines: lines[i : i+1]})
			i++
		}
	}
	return blocks
}

// wrapLine performs a greedy word-boundary wrap. Lines at or under maxChars
// pass through byte-for-byte. A single word longer than maxChars is placed
// whole and allowed to overflow, matching soft-wrap behavior rather than
// hard character breaking.
func wrapLine(line string, maxChars int) []string {
	if utf8.RuneCountInString(line) <= maxChars {
		return []string{line}
	}

	words := strings.Split(line, " ")
	wrapped := make([]string, 0, 2)
	current := words[0]
	currentLen := utf8.RuneCountInString(current)
	for _, word := range words[1:] {
		wordLen := utf8.RuneCountInString(word)
		if currentLen+1+wordLen <= maxChars {
			current += " " + word
			currentLen += 1 + wordLen
			continue
		}
		wrapped = append(wrapped, current)
		current = word
		currentLen = wordLen
	}
	return append(wrapped, current)
}

// isHeading reports whether a text line renders as an ATX heading.
func isHeading(line string) bool {
	return headingPattern.MatchString(strings.TrimSpace(line))
}

// pageBuilder accumulates lines and estimated height for the page under
// construction, sealing it into the output when the next unit would exceed
// the budget.
type pageBuilder struct {
	pages  []string
	lines  []string
	height float64
	budget float64
}

// seal pushes the current page to the output and resets the accumulator.
// Sealing an empty page is a no-op: the paginator never emits an empty page
// mid-sequence.
func (b *pageBuilder) seal() {
	if len(b.lines) == 0 {
		return
	}
	b.pages = append(b.pages, strings.Join(b.lines, "\n"))
	b.lines = nil
	b.height = 0
}

// fits reports whether a unit of the given height fits on the current page.
// Landing exactly on the budget counts as fitting.
func (b *pageBuilder) fits(h float64) bool {
	return b.height+h <= b.budget
}

// place appends one atomic unit, sealing first on overflow. A unit taller
// than the whole budget still goes onto its own page so the paginator always
// makes progress and never drops content.
func (b *pageBuilder) place(line string, h float64) {
	if !b.fits(h) {
		b.seal()
	}
	b.lines = append(b.lines, line)
	b.height += h
}

// lastLineBlank reports whether the page under construction ends with a
// blank line (or is empty).
func (b *pageBuilder) lastLineBlank() bool {
	if len(b.lines) == 0 {
		return true
	}
	return strings.TrimSpace(b.lines[len(b.lines)-1]) == ""
}

// Paginate partitions the document into page-sized strings. Each returned
// string is the newline-joined content of one page, ready to hand to the
// renderer, which re-parses the same structural grammar.
//
// The call is deterministic for fixed inputs and never returns an empty
// slice: an empty document yields one page containing the empty string.
// Non-positive fontSizePx or lineHeight are clamped to the Metrics minimums.
func (p *Paginator) Paginate(doc string, fontSizePx, lineHeight float64) []string {
	m := p.m
	if fontSizePx < m.MinFontSizePx {
		fontSizePx = m.MinFontSizePx
	}
	if lineHeight < m.MinLineHeight {
		lineHeight = m.MinLineHeight
	}

	pxPerLine := fontSizePx * lineHeight
	maxChars := int((m.PageWidthPx - m.PaddingXPx) / (fontSizePx * m.CharWidthRatio))
	if maxChars < 1 {
		maxChars = 1
	}

	b := &pageBuilder{budget: m.PageHeightPx - m.PaddingYPx}

	for _, blk := range segmentBlocks(strings.Split(doc, "\n")) {
		switch blk.kind {
		case blockRule:
			b.place(blk.lines[0], pxPerLine*m.RuleFactor)

		case blockTable:
			p.placeTable(b, blk.lines, pxPerLine*m.TableRowFactor, pxPerLine)

		default:
			line := blk.lines[0]
			if isHeading(line) {
				// Headings are assumed short: one visual unit, no wrap.
				b.place(line, pxPerLine*m.HeadingFactor)
				continue
			}
			for _, visual := range wrapLine(line, maxChars) {
				b.place(visual, pxPerLine)
			}
		}
	}

	b.seal()
	if len(b.pages) == 0 {
		return []string{""}
	}
	return b.pages
}

// headerRowCount is the number of leading table lines treated as the header:
// the label row and the GFM alignment row.
const headerRowCount = 2

// placeTable appends a table block, repeating the captured header lines at
// the top of every page the table spills onto.
func (p *Paginator) placeTable(b *pageBuilder, rows []string, rowHeight, spacerHeight float64) {
	// Visually separate the table from preceding content. Skipped when the
	// page already ends blank, which keeps single-page output stable under
	// re-pagination. A spacer that does not fit seals the page instead of
	// opening the next one with a blank line.
	if !b.lastLineBlank() {
		if b.fits(spacerHeight) {
			b.lines = append(b.lines, "")
			b.height += spacerHeight
		} else {
			b.seal()
		}
	}

	tableHeight := float64(len(rows)) * rowHeight
	if b.fits(tableHeight) {
		for _, row := range rows {
			b.lines = append(b.lines, row)
		}
		b.height += tableHeight
		return
	}

	header := rows
	if len(header) > headerRowCount {
		header = rows[:headerRowCount]
	}

	for i, row := range rows {
		if !b.fits(rowHeight) && len(b.lines) > 0 {
			b.seal()
			// A continuation page starting with a data row gets the header
			// re-emitted verbatim first. The original header rows themselves
			// are never duplicated.
			if i >= headerRowCount {
				for _, h := range header {
					b.lines = append(b.lines, h)
					b.height += rowHeight
				}
			}
		}
		b.lines = append(b.lines, row)
		b.height += rowHeight
	}
}
