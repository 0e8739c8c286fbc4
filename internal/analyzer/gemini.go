package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GenerateRequest is one call to the model API.
type GenerateRequest struct {
	Model  string
	Schema *genai.Schema
	Parts  []genai.Part
}

// Generator issues a single JSON-constrained generation and returns the reply text.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// GeminiOptions tunes the sampling parameters applied to every call.
type GeminiOptions struct {
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
}

// GeminiClient implements Generator over the Gemini SDK.
type GeminiClient struct {
	client *genai.Client
	opts   GeminiOptions
}

func NewGeminiClient(ctx context.Context, apiKey string, opts GeminiOptions) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		opts:   opts,
	}, nil
}

func (g *GeminiClient) Close() {
	g.client.Close()
}

// Generate builds a fresh model handle per call so concurrent requests never
// share mutable generation settings.
func (g *GeminiClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	model := g.client.GenerativeModel(req.Model)
	model.SetTemperature(g.opts.Temperature)
	model.SetTopP(g.opts.TopP)
	if g.opts.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(g.opts.MaxOutputTokens)
	}
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = req.Schema

	resp, err := model.GenerateContent(ctx, req.Parts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("no text in generated content")
	}
	return text.String(), nil
}
