// Package importer extracts plain text in the note grammar (# headings,
// | table rows, --- rules) from files supplied by the user.
package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for import operations.
var (
	ErrUnsupportedFormat = errors.New("unsupported input format")
	ErrEmptyDocument     = errors.New("document contains no text")
)

// maxInputSize caps imported files at 8MB to keep pagination cheap.
const maxInputSize = 8 << 20

// FromFile reads a document and converts it to note text based on its
// extension: .txt/.md/.markdown verbatim, .html/.htm via the DOM walker,
// and common image formats through OCR.
func FromFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".markdown":
		return fromPlainFile(path)
	case ".html", ".htm":
		data, err := readLimited(path)
		if err != nil {
			return "", err
		}
		return FromHTML(strings.NewReader(string(data)))
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff":
		return FromImage(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Supported reports whether FromFile can handle the path's extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".markdown", ".html", ".htm", ".png", ".jpg", ".jpeg", ".tif", ".tiff":
		return true
	}
	return false
}

func fromPlainFile(path string) (string, error) {
	data, err := readLimited(path)
	if err != nil {
		return "", err
	}
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyDocument, path)
	}
	return text, nil
}

func readLimited(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading input file: %w", err)
	}
	if info.Size() > maxInputSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrUnsupportedFormat, path, maxInputSize)
	}
	data, err := os.ReadFile(path) // #nosec G304 -- input path is user-provided
	if err != nil {
		return nil, fmt.Errorf("reading input file: %w", err)
	}
	return data, nil
}
