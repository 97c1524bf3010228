// Package aiwriter rewrites raw text into structured notes using a
// generative model. The rest of the pipeline never depends on it; callers
// opt in explicitly and plain text flows through unchanged otherwise.
package aiwriter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Sentinel errors for AI rewrite operations.
var (
	ErrMissingAPIKey = errors.New("missing API key for AI rewrite")
	ErrEmptyResponse = errors.New("model returned no text")
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// notePrompt instructs the model to emit only the structural grammar the
// paginator understands.
const notePrompt = `Rewrite the following text as concise study notes.
Use only this structure: lines starting with # to ###### for headings,
pipe-delimited tables with a |:---| separator row for tabular facts,
--- on its own line to separate topics, and short plain sentences.
Do not use any other markup. Output only the notes.

Text:
%s`

// Writer rewrites text through the Gemini API.
type Writer struct {
	client *genai.Client
	model  string
}

// New creates a Writer. The API key is required; model may be empty to use
// DefaultModel.
func New(ctx context.Context, apiKey, model string) (*Writer, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &Writer{client: client, model: model}, nil
}

// Rewrite asks the model to restructure text into the note grammar.
func (w *Writer) Rewrite(ctx context.Context, text string) (string, error) {
	resp, err := w.client.Models.GenerateContent(ctx, w.model,
		genai.Text(fmt.Sprintf(notePrompt, text)), nil)
	if err != nil {
		return "", fmt.Errorf("generating notes: %w", err)
	}

	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}
