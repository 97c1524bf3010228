package main

import (
	"fmt"
	"io"
)

// usageText is the top-level help message.
const usageText = `scribe - render text as simulated handwritten notes

Usage:
  scribe [flags] <input>...

Inputs may be .txt, .md, .markdown, .html, or image files (OCR). A directory
argument converts every supported file directly inside it.

Flags:
  -o, --output path       output file or directory
  -f, --format string     export format: png, pdf, zip (default pdf)
  -s, --font-size px      handwriting size in pixels
  -l, --line-height n     line-height multiplier
      --font-family css   handwriting font stack
      --ink-color hex     ink color
      --paper-color hex   paper color
      --no-rules          plain paper (no ruled lines)
      --no-margin         no vertical margin line
      --ai                rewrite text into structured notes (SCRIBE_API_KEY)
      --ai-model name     generative model name
  -w, --workers n         parallel workers (0 = auto)
  -t, --timeout dur       render timeout (e.g. 30s)
  -c, --config name       config file name or path
  -q, --quiet             only show errors
  -v, --verbose           show detailed timing
      --version           print version and exit

Examples:
  scribe notes.md
  scribe -f png -o out/ lecture.txt
  scribe --ai --ink-color "#222266" essay.txt
`

// printUsage writes the help message.
func printUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}
