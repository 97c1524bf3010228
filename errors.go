package scribe

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyText      = errors.New("text content cannot be empty")
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrRender         = errors.New("page rendering failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrExportEncode   = errors.New("export encoding failed")

	// Input validation errors.
	ErrInvalidFontSize   = errors.New("invalid font size")
	ErrInvalidLineHeight = errors.New("invalid line height")
	ErrInvalidFormat     = errors.New("invalid export format")
	ErrUnknownStyle      = errors.New("unknown page style")
)
