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

// claudeAPIURL is the Claude API endpoint. Package-level var for test substitution.
var claudeAPIURL = "https://api.anthropic.com/v1/messages"

// DefaultClaudeModel is used when no model is configured.
const DefaultClaudeModel = "claude-3-5-haiku-latest"

// ClaudeGenerator completes prompts with the Claude Messages API.
type ClaudeGenerator struct {
	APIKey string
	Model  string
	Client *http.Client

	// URL overrides claudeAPIURL when set.
	URL string
}

// claudeRequest is the request body for the Claude Messages API.
type claudeRequest struct {
	Model         string          `json:"model"`
	MaxTokens     int             `json:"max_tokens"`
	StopSequences []string        `json:"stop_sequences,omitempty"`
	Messages      []claudeMessage `json:"messages"`
}

// claudeMessage is a single message in the Claude API conversation.
type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// claudeResponse is the response body from the Claude Messages API.
type claudeResponse struct {
	Content []claudeContent `json:"content"`
}

// claudeContent is a content block in the Claude API response.
type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Complete sends one request per requested sequence; the Messages API has
// no multi-sample parameter.
func (c *ClaudeGenerator) Complete(ctx context.Context, prompt string, opts Options) ([]Completion, error) {
	n := opts.NumSequences
	if n <= 0 {
		n = 1
	}
	out := make([]Completion, 0, n)
	for range n {
		text, err := c.complete(ctx, prompt, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, Completion{GeneratedText: text})
	}
	return out, nil
}

func (c *ClaudeGenerator) complete(ctx context.Context, prompt string, opts Options) (string, error) {
	model := c.Model
	if model == "" {
		model = DefaultClaudeModel
	}
	reqBody := claudeRequest{
		Model:     model,
		MaxTokens: opts.MaxLength,
		Messages: []claudeMessage{
			{Role: "user", Content: prompt},
		},
	}
	if opts.PadToken != "" {
		reqBody.StopSequences = []string{opts.PadToken}
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	apiURL := claudeAPIURL
	if c.URL != "" {
		apiURL = c.URL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling Claude API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Claude API returned %d: %s", resp.StatusCode, string(body))
	}

	var cResp claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("decoding Claude response: %w", err)
	}

	var sb strings.Builder
	for _, block := range cResp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text content in Claude API response")
	}
	return sb.String(), nil
}
