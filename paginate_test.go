package scribe

import (
	"reflect"
	"strings"
	"testing"
)

// smallMetrics gives tests a page that holds six plain lines, so page-break
// behavior is observable with tiny documents. With fontSize=10, lineHeight=1
// each plain line costs 10px against a 60px budget.
func smallMetrics() Metrics {
	m := DefaultMetrics()
	m.PageHeightPx = 60
	m.PaddingYPx = 0
	return m
}

func TestSegmentBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want []block
	}{
		{
			name: "single paragraph",
			doc:  "hello world",
			want: []block{
				{kind: blockText, lines: []string{"hello world"}},
			},
		},
		{
			name: "empty line is its own text block",
			doc:  "a\n\nb",
			want: []block{
				{kind: blockText, lines: []string{"a"}},
				{kind: blockText, lines: []string{""}},
				{kind: blockText, lines: []string{"b"}},
			},
		},
		{
			name: "consecutive pipe rows form one table block",
			doc:  "| A | B |\n| :--- | :--- |\n| 1 | 2 |\nafter",
			want: []block{
				{kind: blockTable, lines: []string{"| A | B |", "| :--- | :--- |", "| 1 | 2 |"}},
				{kind: blockText, lines: []string{"after"}},
			},
		},
		{
			name: "indented pipe row still counts as table",
			doc:  "  | A |",
			want: []block{
				{kind: blockTable, lines: []string{"  | A |"}},
			},
		},
		{
			name: "horizontal rules",
			doc:  "---\n___\n***",
			want: []block{
				{kind: blockRule, lines: []string{"---"}},
				{kind: blockRule, lines: []string{"___"}},
				{kind: blockRule, lines: []string{"***"}},
			},
		},
		{
			name: "two dashes is not a rule",
			doc:  "--",
			want: []block{
				{kind: blockText, lines: []string{"--"}},
			},
		},
		{
			name: "mixed rule characters are plain text",
			doc:  "-_-",
			want: []block{
				{kind: blockText, lines: []string{"-_-"}},
			},
		},
		{
			name: "heading stays a text block at this stage",
			doc:  "## Section",
			want: []block{
				{kind: blockText, lines: []string{"## Section"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := segmentBlocks(strings.Split(tt.doc, "\n"))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("segmentBlocks() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWrapLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		line     string
		maxChars int
		want     []string
	}{
		{
			name:     "short line passes through unchanged",
			line:     "hello world",
			maxChars: 40,
			want:     []string{"hello world"},
		},
		{
			name:     "exact fit is not wrapped",
			line:     "abcde",
			maxChars: 5,
			want:     []string{"abcde"},
		},
		{
			name:     "greedy wrap on word boundaries",
			line:     "one two three four",
			maxChars: 9,
			want:     []string{"one two", "three", "four"},
		},
		{
			name:     "word filling the line exactly",
			line:     "aaa bbb ccc",
			maxChars: 7,
			want:     []string{"aaa bbb", "ccc"},
		},
		{
			name:     "single over-long word is never split",
			line:     "tiny extraordinarily-long-word end",
			maxChars: 10,
			want:     []string{"tiny", "extraordinarily-long-word", "end"},
		},
		{
			name:     "leading spaces preserved on short line",
			line:     "  indented",
			maxChars: 20,
			want:     []string{"  indented"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := wrapLine(tt.line, tt.maxChars)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("wrapLine(%q, %d) = %q, want %q", tt.line, tt.maxChars, got, tt.want)
			}
		})
	}
}

func TestPaginate_EmptyDocument(t *testing.T) {
	t.Parallel()

	pages := Paginate("", 22, 1.6)
	if len(pages) != 1 {
		t.Fatalf("Paginate(\"\") returned %d pages, want 1", len(pages))
	}
	if pages[0] != "" {
		t.Errorf("empty document page = %q, want empty string", pages[0])
	}
}

func TestPaginate_SinglePageScenario(t *testing.T) {
	t.Parallel()

	doc := "# Title\n\nSome short paragraph."
	pages := Paginate(doc, 22, 1.6)

	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1: %q", len(pages), pages)
	}
	if pages[0] != doc {
		t.Errorf("page = %q, want document unchanged %q", pages[0], doc)
	}
}

func TestPaginate_ParameterClamping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		fontSize   float64
		lineHeight float64
	}{
		{name: "zero font size", fontSize: 0, lineHeight: 1.5},
		{name: "negative font size", fontSize: -10, lineHeight: 1.5},
		{name: "zero line height", fontSize: 20, lineHeight: 0},
		{name: "both invalid", fontSize: -1, lineHeight: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pages := Paginate("some text", tt.fontSize, tt.lineHeight)
			if len(pages) < 1 {
				t.Fatal("expected at least one page")
			}
			if !strings.Contains(pages[0], "some text") {
				t.Errorf("content lost: %q", pages[0])
			}
		})
	}
}

func TestPaginate_ContentPreservation(t *testing.T) {
	t.Parallel()

	// Short lines never wrap, and no table spans a page boundary, so joining
	// the pages back together must reproduce the document exactly.
	lines := []string{"# Notes", "", "first point", "second point", "---", "closing remark"}
	doc := strings.Join(lines, "\n")

	for _, fontSize := range []float64{12, 22, 48} {
		pages := Paginate(doc, fontSize, 1.6)
		joined := strings.Join(pages, "\n")
		if joined != doc {
			t.Errorf("fontSize=%v: joined pages = %q, want %q", fontSize, joined, doc)
		}
	}
}

func TestPaginate_MultiPagePreservesOrder(t *testing.T) {
	t.Parallel()

	var lines []string
	for i := 0; i < 25; i++ {
		lines = append(lines, strings.Repeat("x", i%9+1))
	}
	doc := strings.Join(lines, "\n")

	p := NewPaginator(WithMetrics(smallMetrics()))
	pages := p.Paginate(doc, 10, 1)

	if len(pages) < 2 {
		t.Fatalf("expected multiple pages, got %d", len(pages))
	}
	if got := strings.Join(pages, "\n"); got != doc {
		t.Errorf("concatenated pages differ from document:\ngot  %q\nwant %q", got, doc)
	}
}

func TestPaginate_WrapReconstructsParagraph(t *testing.T) {
	t.Parallel()

	paragraph := strings.TrimSpace(strings.Repeat("lorem ipsum dolor ", 300))
	pages := Paginate(paragraph, 20, 2)

	if len(pages) < 2 {
		t.Fatalf("expected the long paragraph to span pages, got %d", len(pages))
	}

	var segments []string
	for _, page := range pages {
		segments = append(segments, strings.Split(page, "\n")...)
	}
	if rejoined := strings.Join(segments, " "); rejoined != paragraph {
		t.Error("rejoining wrapped lines with spaces did not reconstruct the paragraph")
	}
}

func TestPaginate_TableFitsWithSpacer(t *testing.T) {
	t.Parallel()

	doc := "intro line\n| A | B |\n| :--- | :--- |\n| 1 | 2 |"
	pages := Paginate(doc, 22, 1.6)

	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	want := "intro line\n\n| A | B |\n| :--- | :--- |\n| 1 | 2 |"
	if pages[0] != want {
		t.Errorf("page = %q, want spacer before table: %q", pages[0], want)
	}
}

func TestPaginate_NoSpacerAfterBlankLine(t *testing.T) {
	t.Parallel()

	doc := "intro line\n\n| A | B |\n| :--- | :--- |"
	pages := Paginate(doc, 22, 1.6)

	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	if pages[0] != doc {
		t.Errorf("page = %q, want no extra spacer: %q", pages[0], doc)
	}
}

func TestPaginate_TableHeaderContinuity(t *testing.T) {
	t.Parallel()

	rows := []string{"| Name | Qty |", "| :--- | :--- |",
		"| a | 1 |", "| b | 2 |", "| c | 3 |", "| d | 4 |", "| e | 5 |"}
	doc := strings.Join(rows, "\n")

	p := NewPaginator(WithMetrics(smallMetrics()))
	pages := p.Paginate(doc, 10, 1) // 6 rows per page, 7 total rows

	if len(pages) < 2 {
		t.Fatalf("expected the table to split, got %d pages", len(pages))
	}
	for i, page := range pages[1:] {
		lines := strings.Split(page, "\n")
		if len(lines) < 2 || lines[0] != rows[0] || lines[1] != rows[1] {
			t.Errorf("continuation page %d does not start with the header rows: %q", i+2, page)
		}
	}

	// Stripping re-emitted header pairs from continuation pages must give
	// back the original rows in order.
	reconstructed := strings.Split(pages[0], "\n")
	for _, page := range pages[1:] {
		lines := strings.Split(page, "\n")
		reconstructed = append(reconstructed, lines[2:]...)
	}
	if got := strings.Join(reconstructed, "\n"); got != doc {
		t.Errorf("data rows not preserved across the split:\ngot  %q\nwant %q", got, doc)
	}
}

func TestPaginate_HeaderRowsAtPageBoundary(t *testing.T) {
	t.Parallel()

	// Three paragraph lines plus the spacer leave room for exactly the two
	// header rows; the data row must open page two behind a repeated header.
	doc := strings.Join([]string{
		"para one",
		"para two",
		"para three",
		"| A | B |",
		"| :--- | :--- |",
		"| 1 | 2 |",
	}, "\n")

	p := NewPaginator(WithMetrics(smallMetrics()))
	pages := p.Paginate(doc, 10, 1)

	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2: %q", len(pages), pages)
	}
	wantSecond := "| A | B |\n| :--- | :--- |\n| 1 | 2 |"
	if pages[1] != wantSecond {
		t.Errorf("page 2 = %q, want %q", pages[1], wantSecond)
	}
	if !strings.HasSuffix(pages[0], "| A | B |\n| :--- | :--- |") {
		t.Errorf("page 1 should end with the original header rows: %q", pages[0])
	}
}

func TestPaginate_SingleRowTableNeverGainsHeader(t *testing.T) {
	t.Parallel()

	doc := "| lonely |"
	pages := Paginate(doc, 22, 1.6)

	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	if pages[0] != doc {
		t.Errorf("page = %q, want %q", pages[0], doc)
	}
}

func TestPaginate_OversizedUnitPlacedAlone(t *testing.T) {
	t.Parallel()

	m := smallMetrics()
	m.HeadingFactor = 20 // heading costs 200px against a 60px budget
	p := NewPaginator(WithMetrics(m))

	pages := p.Paginate("before\n# Giant Heading\nafter", 10, 1)
	if len(pages) != 3 {
		t.Fatalf("got %d pages, want 3: %q", len(pages), pages)
	}
	if pages[1] != "# Giant Heading" {
		t.Errorf("oversized heading should sit alone on its page, got %q", pages[1])
	}
}

func TestPaginate_SinglePageOutputIsFixedPoint(t *testing.T) {
	t.Parallel()

	docs := []string{
		"# Title\n\nSome short paragraph.",
		"plain\nlines\nonly",
		"intro\n| A | B |\n| :--- | :--- |\n| 1 | 2 |",
		"---\ntext after rule",
		strings.TrimSpace(strings.Repeat("wrap me often ", 200)),
	}

	// Re-paginating any single produced page with the same parameters must
	// yield that page unchanged: no drift at steady state.
	for _, doc := range docs {
		p := NewPaginator()
		for _, page := range p.Paginate(doc, 22, 1.6) {
			got := p.Paginate(page, 22, 1.6)
			if len(got) != 1 || got[0] != page {
				t.Errorf("page is not a fixed point:\npage %q\ngot  %q", page, got)
			}
		}
	}
}

func TestPaginate_MonotonicPageCount(t *testing.T) {
	t.Parallel()

	var lines []string
	for i := 0; i < 120; i++ {
		lines = append(lines, "note line")
	}
	doc := strings.Join(lines, "\n")

	prev := 0
	for _, fontSize := range []float64{10, 16, 22, 30, 44} {
		n := len(Paginate(doc, fontSize, 1.5))
		if n < prev {
			t.Errorf("page count decreased from %d to %d at fontSize=%v", prev, n, fontSize)
		}
		prev = n
	}
}

func TestPaginate_LongLineSpansPages(t *testing.T) {
	t.Parallel()

	line := strings.TrimSpace(strings.Repeat("word ", 1000)) // 4999 chars
	pages := Paginate(line, 20, 2)

	if len(pages) < 2 {
		t.Fatalf("expected a 5000-char line to span multiple pages, got %d", len(pages))
	}

	// Every visual line stays within the estimated character capacity.
	m := DefaultMetrics()
	maxChars := int((m.PageWidthPx - m.PaddingXPx) / (20 * m.CharWidthRatio))
	for _, page := range pages {
		for _, l := range strings.Split(page, "\n") {
			if len(l) > maxChars {
				t.Fatalf("visual line exceeds capacity %d: %q", maxChars, l)
			}
		}
	}
}

func TestPaginate_Deterministic(t *testing.T) {
	t.Parallel()

	doc := "# A\n\ntext\n| x |\n| - |\n---"
	first := Paginate(doc, 18, 1.4)
	for i := 0; i < 5; i++ {
		if got := Paginate(doc, 18, 1.4); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differed: %q vs %q", i, got, first)
		}
	}
}
