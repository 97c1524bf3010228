// Package scribe turns plain or lightly structured text into simulated
// handwritten note pages and exports them as images, a PDF, or a ZIP archive.
//
// # Quick Start
//
// Create a service, convert text, and close when done:
//
//	svc := scribe.New()
//	defer svc.Close()
//
//	result, err := svc.Convert(ctx, scribe.Input{
//	    Text:       "# Shopping\n\nmilk and eggs",
//	    FontSizePx: 22,
//	    LineHeight: 1.6,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("notes.pdf", result.PDF, 0644)
//
// The result carries the page split (result.Pages), the rendered PNG for
// each page (result.Images), and the combined PDF (result.PDF).
//
// # Pipeline
//
//  1. Text normalization (line endings, blank-line compression)
//  2. Pagination: the document is partitioned into page-sized chunks using
//     heuristic layout estimation (see Paginator)
//  3. Per-page HTML via Goldmark (GFM tables, syntax highlighting) styled
//     as ruled handwriting paper
//  4. Rasterization via headless Chrome (go-rod): PNG per page, one PDF
//     for the whole note
//
// # Pagination
//
// The Paginator is the core of the package and is usable on its own:
//
//	pages := scribe.Paginate(text, 22, 1.6)
//
// It is a pure function over its inputs: deterministic, side-effect free,
// and safe for concurrent use. The renderer interprets the same structural
// grammar (# headings, | table rows, --- rules) with the same geometry the
// Paginator assumed, so the estimated page breaks hold up visually.
//
// # Browser Requirements
//
// Rasterization requires Chrome/Chromium. The go-rod library downloads a
// managed Chromium on first run. Set ROD_BROWSER_BIN to use a pre-installed
// binary and ROD_NO_SANDBOX=1 in containers.
package scribe
