package scribe

import (
	"context"
	"fmt"
	"strings"
)

// Service orchestrates the text-to-handwriting pipeline.
type Service struct {
	cfg           serviceConfig
	normalizer    textNormalizer
	paginator     *Paginator
	htmlConverter htmlConverter
	cssInjector   cssInjector
	renderer      pageRenderer
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithLayoutMetrics).
func New(opts ...Option) *Service {
	s := &Service{
		cfg:           serviceConfig{timeout: defaultTimeout, metrics: DefaultMetrics()},
		normalizer:    &noteNormalizer{},
		htmlConverter: newGoldmarkConverter(),
		cssInjector:   &cssInjection{},
	}

	for _, opt := range opts {
		opt(s)
	}

	s.paginator = NewPaginator(WithMetrics(s.cfg.metrics))

	// Create renderer if not injected (e.g., by tests)
	if s.renderer == nil {
		s.renderer = newRodRenderer(s.cfg.timeout)
	}

	return s
}

// Convert runs the full pipeline: normalize, paginate, style, rasterize.
// The context is used for cancellation and timeout.
func (s *Service) Convert(ctx context.Context, input Input) (*Result, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	fontSize := input.FontSizePx
	if fontSize == 0 {
		fontSize = DefaultFontSizePx
	}
	lineHeight := input.LineHeight
	if lineHeight == 0 {
		lineHeight = DefaultLineHeight
	}

	text := s.normalizer.Normalize(ctx, input.Text)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	result := &Result{Pages: s.paginator.Paginate(text, fontSize, lineHeight)}

	css := BuildPageCSS(s.cfg.metrics, input.Style, fontSize, lineHeight)

	// Per-page documents, kept for debugging and used for the screenshots.
	fragments := make([]string, len(result.Pages))
	for i, page := range result.Pages {
		fragment, err := s.htmlConverter.ToHTML(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("converting page %d to HTML: %w", i+1, err)
		}
		fragments[i] = wrapPageDiv(fragment)
		doc := fmt.Sprintf(docShell, fragments[i])
		result.HTML = append(result.HTML, s.cssInjector.InjectCSS(ctx, doc, css))
	}

	if input.PagesOnly {
		return result, nil
	}

	widthPx := int(s.cfg.metrics.PageWidthPx)
	heightPx := int(s.cfg.metrics.PageHeightPx)
	for i, doc := range result.HTML {
		img, err := s.renderer.RenderPNG(ctx, doc, widthPx, heightPx)
		if err != nil {
			return nil, fmt.Errorf("rendering page %d: %w", i+1, err)
		}
		result.Images = append(result.Images, img)
	}

	// One combined document for the PDF: every page div prints as one sheet.
	combined := fmt.Sprintf(docShell, strings.Join(fragments, "\n"))
	combined = s.cssInjector.InjectCSS(ctx, combined, css+buildPrintCSS())
	pdf, err := s.renderer.RenderPDF(ctx, combined,
		s.cfg.metrics.PageWidthPx/cssPixelsPerInch,
		s.cfg.metrics.PageHeightPx/cssPixelsPerInch)
	if err != nil {
		return nil, fmt.Errorf("printing PDF: %w", err)
	}
	result.PDF = pdf

	return result, nil
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.renderer != nil {
		return s.renderer.Close()
	}
	return nil
}

// validateInput checks that required fields are present and valid.
func (s *Service) validateInput(input Input) error {
	if input.Text == "" {
		return ErrEmptyText
	}
	if input.FontSizePx < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidFontSize, input.FontSizePx)
	}
	if input.LineHeight < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidLineHeight, input.LineHeight)
	}
	return input.Style.Validate()
}

// wrapPageDiv wraps one converted page fragment in the div the stylesheet
// sizes as a sheet of paper.
func wrapPageDiv(fragment string) string {
	return "<div class=\"page\">\n" + fragment + "</div>"
}
