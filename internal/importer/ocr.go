package importer

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// FromImage extracts text from a scanned page via Tesseract OCR.
// Requires the tesseract library to be installed on the host.
func FromImage(path string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImage(path); err != nil {
		return "", fmt.Errorf("loading image for OCR: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("running OCR: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyDocument, path)
	}
	return text, nil
}
