// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiGenerator completes prompts with the Gemini API through the genai
// SDK. The underlying client is created once and reused.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates the genai client. baseURL is optional and
// mainly useful for proxies and tests.
func NewGeminiGenerator(ctx context.Context, apiKey, model, baseURL string, hc *http.Client) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini backend requires an API key")
	}
	cfg := &genai.ClientConfig{
		Backend:    genai.BackendGeminiAPI,
		APIKey:     apiKey,
		HTTPClient: hc,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// Complete requests opts.NumSequences candidates in a single call.
func (g *GeminiGenerator) Complete(ctx context.Context, prompt string, opts Options) ([]Completion, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), generateConfig(opts))
	if err != nil {
		return nil, fmt.Errorf("calling Gemini API: %w", err)
	}
	return completionsFromResponse(resp), nil
}

func generateConfig(opts Options) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(opts.MaxLength),
		CandidateCount:  int32(max(opts.NumSequences, 1)),
	}
	if opts.PadToken != "" {
		cfg.StopSequences = []string{opts.PadToken}
	}
	return cfg
}

// completionsFromResponse turns each candidate's text parts into one
// Completion. Thought parts are skipped; empty candidates are dropped.
func completionsFromResponse(resp *genai.GenerateContentResponse) []Completion {
	if resp == nil {
		return nil
	}
	var out []Completion
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		var sb strings.Builder
		for _, part := range cand.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			sb.WriteString(part.Text)
		}
		if sb.Len() == 0 {
			continue
		}
		out = append(out, Completion{GeneratedText: sb.String()})
	}
	return out
}
