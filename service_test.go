package scribe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// fakeRenderer records render calls without a browser.
type fakeRenderer struct {
	pngCalls int
	pdfCalls int
	pngErr   error
	pdfErr   error
	lastPDF  string
}

func (f *fakeRenderer) RenderPNG(ctx context.Context, htmlContent string, widthPx, heightPx int) ([]byte, error) {
	f.pngCalls++
	if f.pngErr != nil {
		return nil, f.pngErr
	}
	return []byte(fmt.Sprintf("png-%d", f.pngCalls)), nil
}

func (f *fakeRenderer) RenderPDF(ctx context.Context, htmlContent string, paperWidthIn, paperHeightIn float64) ([]byte, error) {
	f.pdfCalls++
	f.lastPDF = htmlContent
	if f.pdfErr != nil {
		return nil, f.pdfErr
	}
	return []byte("%PDF-fake"), nil
}

func (f *fakeRenderer) Close() error { return nil }

// newTestService builds a Service with the fake renderer injected.
func newTestService(fake *fakeRenderer, opts ...Option) *Service {
	s := New(opts...)
	s.renderer = fake
	return s
}

func TestService_Convert_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   Input
		wantErr error
	}{
		{
			name:    "empty text",
			input:   Input{Text: ""},
			wantErr: ErrEmptyText,
		},
		{
			name:    "negative font size",
			input:   Input{Text: "x", FontSizePx: -1},
			wantErr: ErrInvalidFontSize,
		},
		{
			name:    "negative line height",
			input:   Input{Text: "x", LineHeight: -2},
			wantErr: ErrInvalidLineHeight,
		},
		{
			name:    "bad ink color",
			input:   Input{Text: "x", Style: &PageStyle{InkColor: "blue-ish"}},
			wantErr: ErrUnknownStyle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newTestService(&fakeRenderer{})
			defer svc.Close()

			_, err := svc.Convert(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Convert() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestService_Convert_PagesOnly(t *testing.T) {
	t.Parallel()

	fake := &fakeRenderer{}
	svc := newTestService(fake)
	defer svc.Close()

	result, err := svc.Convert(context.Background(), Input{
		Text:      "# Title\n\nSome short paragraph.",
		PagesOnly: true,
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if len(result.Pages) != 1 {
		t.Errorf("got %d pages, want 1", len(result.Pages))
	}
	if len(result.HTML) != 1 {
		t.Errorf("got %d HTML documents, want 1", len(result.HTML))
	}
	if result.Images != nil || result.PDF != nil {
		t.Error("PagesOnly should skip rendering")
	}
	if fake.pngCalls != 0 || fake.pdfCalls != 0 {
		t.Errorf("renderer called %d/%d times, want 0/0", fake.pngCalls, fake.pdfCalls)
	}
}

func TestService_Convert_RendersEachPage(t *testing.T) {
	t.Parallel()

	// Force multiple pages with a tiny layout budget.
	m := DefaultMetrics()
	m.PageHeightPx = 60
	m.PaddingYPx = 0

	fake := &fakeRenderer{}
	svc := newTestService(fake, WithLayoutMetrics(m))
	defer svc.Close()

	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, "line")
	}

	result, err := svc.Convert(context.Background(), Input{
		Text:       strings.Join(lines, "\n"),
		FontSizePx: 10,
		LineHeight: 1,
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if len(result.Pages) < 2 {
		t.Fatalf("expected multiple pages, got %d", len(result.Pages))
	}
	if fake.pngCalls != len(result.Pages) {
		t.Errorf("RenderPNG called %d times, want %d", fake.pngCalls, len(result.Pages))
	}
	if len(result.Images) != len(result.Pages) {
		t.Errorf("got %d images, want %d", len(result.Images), len(result.Pages))
	}
	if fake.pdfCalls != 1 {
		t.Errorf("RenderPDF called %d times, want 1", fake.pdfCalls)
	}
	if string(result.PDF) != "%PDF-fake" {
		t.Errorf("unexpected PDF bytes: %q", result.PDF)
	}

	// Combined print document carries one page div per page.
	if got := strings.Count(fake.lastPDF, `<div class="page">`); got != len(result.Pages) {
		t.Errorf("combined document has %d page divs, want %d", got, len(result.Pages))
	}
}

func TestService_Convert_HTMLCarriesStyleAndContent(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeRenderer{})
	defer svc.Close()

	result, err := svc.Convert(context.Background(), Input{
		Text:      "# Chemistry\n\nNote ==the anomaly== here.\n\n| El | Z |\n| :--- | :--- |\n| H | 1 |",
		PagesOnly: true,
		Style:     &PageStyle{InkColor: "#123456"},
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	doc := result.HTML[0]
	for _, want := range []string{
		"<!DOCTYPE html>",
		`<div class="page">`,
		"<style>",
		"#123456",
		"<h1",
		"Chemistry",
		"<mark>the anomaly</mark>",
		"<table>",
		"<td",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}

func TestService_Convert_RenderErrorPropagates(t *testing.T) {
	t.Parallel()

	fake := &fakeRenderer{pngErr: ErrRender}
	svc := newTestService(fake)
	defer svc.Close()

	_, err := svc.Convert(context.Background(), Input{Text: "hello"})
	if !errors.Is(err, ErrRender) {
		t.Errorf("Convert() error = %v, want ErrRender", err)
	}
}

func TestService_Convert_CanceledContext(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeRenderer{})
	defer svc.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Convert(ctx, Input{Text: "hello"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
}

func TestService_Convert_NormalizesBeforePagination(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeRenderer{})
	defer svc.Close()

	result, err := svc.Convert(context.Background(), Input{
		Text:      "a\r\nb\r\n\r\n\r\n\r\nc",
		PagesOnly: true,
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if got, want := result.Pages[0], "a\nb\n\nc"; got != want {
		t.Errorf("normalized page = %q, want %q", got, want)
	}
}
