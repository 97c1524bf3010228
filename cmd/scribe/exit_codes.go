package main

import (
	"errors"
	"os"

	scribe "github.com/S123MR/Scribe-AI"
	"github.com/S123MR/Scribe-AI/internal/aiwriter"
	"github.com/S123MR/Scribe-AI/internal/config"
	"github.com/S123MR/Scribe-AI/internal/importer"
)

// Exit codes for the scribe CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, scribe.ErrBrowserConnect) ||
		errors.Is(err, scribe.ErrPageCreate) ||
		errors.Is(err, scribe.ErrPageLoad) ||
		errors.Is(err, scribe.ErrRender) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, scribe.ErrEmptyText) ||
		errors.Is(err, scribe.ErrInvalidFontSize) ||
		errors.Is(err, scribe.ErrInvalidLineHeight) ||
		errors.Is(err, scribe.ErrInvalidFormat) ||
		errors.Is(err, scribe.ErrUnknownStyle) ||
		errors.Is(err, importer.ErrUnsupportedFormat) ||
		errors.Is(err, aiwriter.ErrMissingAPIKey) ||
		errors.Is(err, ErrInvalidWorkerCount) {
		return ExitUsage
	}

	return ExitGeneral
}
