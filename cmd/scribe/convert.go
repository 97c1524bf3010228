package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	scribe "github.com/S123MR/Scribe-AI"
	"github.com/S123MR/Scribe-AI/internal/aiwriter"
	"github.com/S123MR/Scribe-AI/internal/config"
	"github.com/S123MR/Scribe-AI/internal/importer"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadInput          = errors.New("failed to read input file")
	ErrWriteOutput        = errors.New("failed to write output file")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrPoolClosed         = errors.New("service pool is closed")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// apiKeyEnv names the environment variable holding the AI key.
const apiKeyEnv = "SCRIBE_API_KEY"

// maxWorkers caps the worker flag to keep Chrome memory use sane.
const maxWorkers = 16

// Converter is the interface for the conversion service.
type Converter interface {
	Convert(ctx context.Context, input scribe.Input) (*scribe.Result, error)
}

// Compile-time interface implementation check.
var _ Converter = (*scribe.Service)(nil)

// Pool abstracts service pool operations for testability.
type Pool interface {
	Acquire() Converter
	Release(Converter)
	Size() int
}

// noteJob represents a single file to process.
type noteJob struct {
	inputPath  string
	outputBase string // output path without extension
}

// jobResult holds the outcome of a single conversion.
type jobResult struct {
	inputPath string
	written   []string
	err       error
	duration  time.Duration
}

// rewriter abstracts the optional AI step for testability.
type rewriter interface {
	Rewrite(ctx context.Context, text string) (string, error)
}

// run orchestrates the conversion process.
func run(args []string, pool Pool, deps *Dependencies) error {
	flags, positionals, err := parseFlags(args)
	if err != nil {
		return err
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	if flags.common.config != "" {
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return err
		}
	}

	format := resolveFormat(flags, cfg)
	if !scribe.ValidFormat(format) {
		return fmt.Errorf("%w: %q", scribe.ErrInvalidFormat, format)
	}

	jobs, err := discoverJobs(positionals, flags.output, cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var rw rewriter
	if flags.ai.enabled || cfg.AI.Enabled {
		model := flags.ai.model
		if model == "" {
			model = cfg.AI.Model
		}
		rw, err = aiwriter.New(ctx, os.Getenv(apiKeyEnv), model)
		if err != nil {
			return err
		}
	}

	results := convertAll(ctx, jobs, flags, cfg, format, pool, rw)

	var failed int
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %v\n", r.inputPath, r.err)
			continue
		}
		if !flags.common.quiet {
			fmt.Fprintf(deps.Stdout, "%s -> %s", r.inputPath, strings.Join(r.written, ", "))
			if flags.common.verbose {
				fmt.Fprintf(deps.Stdout, " (%s)", r.duration.Round(time.Millisecond))
			}
			fmt.Fprintln(deps.Stdout)
		}
	}
	if failed > 0 {
		// Surface the first failure's class for the exit code.
		for _, r := range results {
			if r.err != nil {
				return fmt.Errorf("%d of %d conversions failed: %w", failed, len(results), r.err)
			}
		}
	}
	return nil
}

// validateWorkers rejects nonsensical worker counts.
func validateWorkers(n int) error {
	if n < 0 || n > maxWorkers {
		return fmt.Errorf("%w: %d (must be 0-%d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}

// resolveFormat picks the export format: flag > config > pdf.
func resolveFormat(flags *convertFlags, cfg *config.Config) string {
	if flags.format != "" {
		return strings.ToLower(flags.format)
	}
	if cfg.Output.Format != "" {
		return strings.ToLower(cfg.Output.Format)
	}
	return scribe.FormatPDF
}

// discoverJobs expands positional arguments into conversion jobs. A
// directory argument contributes every supported file directly inside it.
func discoverJobs(positionals []string, output string, cfg *config.Config) ([]noteJob, error) {
	inputs := positionals
	if len(inputs) == 0 && cfg.Input.DefaultDir != "" {
		inputs = []string{cfg.Input.DefaultDir}
	}
	if len(inputs) == 0 {
		return nil, ErrNoInput
	}

	var paths []string
	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrReadInput, in)
		}
		if !info.IsDir() {
			paths = append(paths, in)
			continue
		}
		entries, err := os.ReadDir(in)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrReadInput, in)
		}
		for _, e := range entries {
			if !e.IsDir() && importer.Supported(e.Name()) {
				paths = append(paths, filepath.Join(in, e.Name()))
			}
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no supported files found", ErrNoInput)
	}

	outDir := output
	explicitFile := false
	if len(paths) == 1 && output != "" && filepath.Ext(output) != "" {
		explicitFile = true
	}
	if outDir == "" {
		outDir = cfg.Output.DefaultDir
	}

	jobs := make([]noteJob, 0, len(paths))
	for _, p := range paths {
		base := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		var outputBase string
		switch {
		case explicitFile:
			outputBase = strings.TrimSuffix(output, filepath.Ext(output))
		case outDir != "":
			outputBase = filepath.Join(outDir, base)
		default:
			outputBase = filepath.Join(filepath.Dir(p), base)
		}
		jobs = append(jobs, noteJob{inputPath: p, outputBase: outputBase})
	}
	return jobs, nil
}

// convertAll fans jobs out over the pool and collects results in job order.
func convertAll(ctx context.Context, jobs []noteJob, flags *convertFlags, cfg *config.Config, format string, pool Pool, rw rewriter) []jobResult {
	results := make([]jobResult, len(jobs))
	sem := make(chan struct{}, pool.Size())

	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(i int, job noteJob) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			start := time.Now()
			written, err := convertOne(ctx, job, flags, cfg, format, pool, rw)
			results[i] = jobResult{
				inputPath: job.inputPath,
				written:   written,
				err:       err,
				duration:  time.Since(start),
			}
		}(i, job)
	}
	wg.Wait()
	return results
}

// convertOne imports, optionally rewrites, converts, and writes one note.
func convertOne(ctx context.Context, job noteJob, flags *convertFlags, cfg *config.Config, format string, pool Pool, rw rewriter) ([]string, error) {
	text, err := importer.FromFile(job.inputPath)
	if err != nil {
		return nil, err
	}

	if rw != nil {
		text, err = rw.Rewrite(ctx, text)
		if err != nil {
			return nil, err
		}
	}

	svc := pool.Acquire()
	if svc == nil {
		return nil, ErrPoolClosed
	}
	defer pool.Release(svc)

	result, err := svc.Convert(ctx, scribe.Input{
		Text:       text,
		FontSizePx: resolveFontSize(flags, cfg),
		LineHeight: resolveLineHeight(flags, cfg),
		Style:      buildStyle(flags, cfg),
	})
	if err != nil {
		return nil, err
	}

	return writeOutputs(job.outputBase, format, result)
}

func resolveFontSize(flags *convertFlags, cfg *config.Config) float64 {
	if flags.typography.fontSize != 0 {
		return flags.typography.fontSize
	}
	return cfg.Typography.FontSizePx
}

func resolveLineHeight(flags *convertFlags, cfg *config.Config) float64 {
	if flags.typography.lineHeight != 0 {
		return flags.typography.lineHeight
	}
	return cfg.Typography.LineHeight
}

// buildStyle merges style flags over config. Zero values fall through to
// the library defaults.
func buildStyle(flags *convertFlags, cfg *config.Config) *scribe.PageStyle {
	style := scribe.DefaultPageStyle()
	if cfg.Style.FontFamily != "" {
		style.FontFamily = cfg.Style.FontFamily
	}
	if cfg.Style.InkColor != "" {
		style.InkColor = cfg.Style.InkColor
	}
	if cfg.Style.PaperColor != "" {
		style.PaperColor = cfg.Style.PaperColor
	}
	style.RuledLines = !cfg.Style.NoRules
	style.MarginLine = !cfg.Style.NoMargin

	if flags.style.fontFamily != "" {
		style.FontFamily = flags.style.fontFamily
	}
	if flags.style.inkColor != "" {
		style.InkColor = flags.style.inkColor
	}
	if flags.style.paperColor != "" {
		style.PaperColor = flags.style.paperColor
	}
	if flags.style.noRules {
		style.RuledLines = false
	}
	if flags.style.noMargin {
		style.MarginLine = false
	}
	return style
}

// writeOutputs writes the converted note in the chosen format and returns
// the paths written.
func writeOutputs(outputBase, format string, result *scribe.Result) ([]string, error) {
	if dir := filepath.Dir(outputBase); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}

	switch format {
	case scribe.FormatPDF:
		path := outputBase + ".pdf"
		if err := os.WriteFile(path, result.PDF, filePermissions); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return []string{path}, nil

	case scribe.FormatZIP:
		archive, err := scribe.ArchiveImages(result.Images)
		if err != nil {
			return nil, err
		}
		path := outputBase + ".zip"
		if err := os.WriteFile(path, archive, filePermissions); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return []string{path}, nil

	case scribe.FormatPNG:
		var written []string
		for i, img := range result.Images {
			path := fmt.Sprintf("%s-page-%02d.png", outputBase, i+1)
			if err := os.WriteFile(path, img, filePermissions); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
			}
			written = append(written, path)
		}
		return written, nil
	}

	return nil, fmt.Errorf("%w: %q", scribe.ErrInvalidFormat, format)
}
