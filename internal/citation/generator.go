// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdiddy/verifai/pkg/types"
)

// NewGenerator builds the configured backend. It is called once per
// process; the returned Generator is safe to reuse across runs.
func NewGenerator(ctx context.Context, cfg types.GenerationConfig, hc *http.Client) (Generator, error) {
	switch cfg.Backend {
	case types.GeneratorGemini, "":
		return NewGeminiGenerator(ctx, cfg.APIKey, cfg.Model, cfg.BaseURL, hc)
	case types.GeneratorClaude:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("claude backend requires an API key")
		}
		return &ClaudeGenerator{
			APIKey: cfg.APIKey,
			Model:  cfg.Model,
			Client: hc,
			URL:    cfg.BaseURL,
		}, nil
	case types.GeneratorOllama:
		return &OllamaGenerator{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Client:  hc,
		}, nil
	default:
		return nil, fmt.Errorf("unknown generation backend %q", cfg.Backend)
	}
}
