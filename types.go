package scribe

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Default typography applied when Input leaves the fields zero.
const (
	DefaultFontSizePx = 22.0
	DefaultLineHeight = 1.6
)

// Export format constants.
const (
	FormatPNG = "png" // one image per page
	FormatPDF = "pdf" // all pages in one document
	FormatZIP = "zip" // ZIP archive of the page images
)

// ValidFormat reports whether format names a supported export format
// (case-insensitive).
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatPNG, FormatPDF, FormatZIP:
		return true
	}
	return false
}

// Input contains conversion parameters.
type Input struct {
	Text       string     // document text (required)
	FontSizePx float64    // handwriting size in pixels (0 = DefaultFontSizePx)
	LineHeight float64    // line-height multiplier (0 = DefaultLineHeight)
	Style      *PageStyle // visual style (nil = defaults)
	PagesOnly  bool       // skip rendering, return only the page split
}

// Result holds the output of one conversion.
type Result struct {
	Pages  []string // the pagination split, one string per page
	HTML   []string // styled HTML for each page (for debugging)
	Images [][]byte // PNG bytes per page, nil when PagesOnly
	PDF    []byte   // combined PDF, nil when PagesOnly
}

// hexColorPattern matches #RGB and #RRGGBB colors.
var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// PageStyle configures the visual appearance of the rendered paper.
type PageStyle struct {
	FontFamily string // CSS font stack for the handwriting
	InkColor   string // hex color of the text
	PaperColor string // hex color of the page background
	RuledLines bool   // draw horizontal ruled lines
	MarginLine bool   // draw the red vertical margin line
}

// DefaultPageStyle returns the classic ruled-notebook look.
func DefaultPageStyle() *PageStyle {
	return &PageStyle{
		FontFamily: `'Homemade Apple', 'Caveat', cursive`,
		InkColor:   "#1a1aa8",
		PaperColor: "#fdfdf8",
		RuledLines: true,
		MarginLine: true,
	}
}

// Validate checks that style settings are valid.
// Returns nil if s is nil (nil means use defaults).
func (s *PageStyle) Validate() error {
	if s == nil {
		return nil
	}
	if s.InkColor != "" && !hexColorPattern.MatchString(s.InkColor) {
		return fmt.Errorf("%w: ink color %q", ErrUnknownStyle, s.InkColor)
	}
	if s.PaperColor != "" && !hexColorPattern.MatchString(s.PaperColor) {
		return fmt.Errorf("%w: paper color %q", ErrUnknownStyle, s.PaperColor)
	}
	return nil
}

// merged returns s with zero fields filled in from the defaults.
func (s *PageStyle) merged() *PageStyle {
	d := DefaultPageStyle()
	if s == nil {
		return d
	}
	out := *s
	if out.FontFamily == "" {
		out.FontFamily = d.FontFamily
	}
	if out.InkColor == "" {
		out.InkColor = d.InkColor
	}
	if out.PaperColor == "" {
		out.PaperColor = d.PaperColor
	}
	return &out
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout time.Duration
	metrics Metrics
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("scribe: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithLayoutMetrics overrides the pagination calibration. The renderer
// derives its page geometry from the same metrics, so the two stay in
// agreement.
func WithLayoutMetrics(m Metrics) Option {
	return func(s *Service) {
		s.cfg.metrics = m
	}
}
