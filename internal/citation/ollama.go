// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	// DefaultOllamaURL is the default Ollama API endpoint.
	DefaultOllamaURL = "http://localhost:11434"

	// DefaultOllamaModel is used when no model is configured.
	DefaultOllamaModel = "llama3.2"

	apiPathGenerate = "/api/generate"
)

// OllamaGenerator completes prompts with a locally served model. It is the
// closest fit for a fine-tuned citation model kept on disk.
type OllamaGenerator struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	NumPredict int      `json:"num_predict,omitempty"`
	Stop       []string `json:"stop,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Complete requests opts.NumSequences non-streamed generations.
func (o *OllamaGenerator) Complete(ctx context.Context, prompt string, opts Options) ([]Completion, error) {
	n := opts.NumSequences
	if n <= 0 {
		n = 1
	}
	out := make([]Completion, 0, n)
	for range n {
		text, err := o.generate(ctx, prompt, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, Completion{GeneratedText: text})
	}
	return out, nil
}

func (o *OllamaGenerator) generate(ctx context.Context, prompt string, opts Options) (string, error) {
	model := o.Model
	if model == "" {
		model = DefaultOllamaModel
	}
	reqBody := ollamaGenerateRequest{
		Model:  model,
		Prompt: prompt,
		Options: ollamaOptions{
			NumPredict: opts.MaxLength,
		},
	}
	if opts.PadToken != "" {
		reqBody.Options.Stop = []string{opts.PadToken}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	baseURL := o.BaseURL
	if baseURL == "" {
		baseURL = DefaultOllamaURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(baseURL, "/")+apiPathGenerate, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := o.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling Ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Ollama returned %d: %s", resp.StatusCode, string(b))
	}

	var gr ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", fmt.Errorf("decoding Ollama response: %w", err)
	}
	return gr.Response, nil
}
