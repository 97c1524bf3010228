package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across modes.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// typographyFlags holds handwriting size flags.
type typographyFlags struct {
	fontSize   float64
	lineHeight float64
}

// styleFlags holds paper-appearance flags.
type styleFlags struct {
	fontFamily string
	inkColor   string
	paperColor string
	noRules    bool
	noMargin   bool
}

// aiFlags holds note-rewrite flags.
type aiFlags struct {
	enabled bool
	model   string
}

// convertFlags holds all flags for the scribe command.
type convertFlags struct {
	common     commonFlags
	output     string
	format     string
	workers    int
	timeout    string
	version    bool
	typography typographyFlags
	style      styleFlags
	ai         aiFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addTypographyFlags adds handwriting size flags to a FlagSet.
func addTypographyFlags(fs *flag.FlagSet, f *typographyFlags) {
	fs.Float64VarP(&f.fontSize, "font-size", "s", 0, "handwriting size in px (0 = default)")
	fs.Float64VarP(&f.lineHeight, "line-height", "l", 0, "line-height multiplier (0 = default)")
}

// addStyleFlags adds paper-appearance flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.fontFamily, "font-family", "", "CSS font stack for the handwriting")
	fs.StringVar(&f.inkColor, "ink-color", "", "ink color (hex)")
	fs.StringVar(&f.paperColor, "paper-color", "", "paper color (hex)")
	fs.BoolVar(&f.noRules, "no-rules", false, "disable ruled lines")
	fs.BoolVar(&f.noMargin, "no-margin", false, "disable the margin line")
}

// addAIFlags adds note-rewrite flags to a FlagSet.
func addAIFlags(fs *flag.FlagSet, f *aiFlags) {
	fs.BoolVar(&f.enabled, "ai", false, "rewrite the text into structured notes first (needs SCRIBE_API_KEY)")
	fs.StringVar(&f.model, "ai-model", "", "generative model name")
}

// parseFlags parses command flags and returns positional args.
func parseFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("scribe", flag.ContinueOnError)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.format, "format", "f", "", "export format: png, pdf, zip")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "render timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addTypographyFlags(fs, &f.typography)
	addStyleFlags(fs, &f.style)
	addAIFlags(fs, &f.ai)

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
