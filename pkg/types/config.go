// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for the registry adapters.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with registry requests
	// (e.g. "VerifAI/1.0").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SourcesConfig holds settings for the metadata and retraction registries.
type SourcesConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Mailto is sent to CrossRef as the polite-pool contact address. Optional.
	Mailto string `json:"mailto,omitempty" yaml:"mailto,omitempty" mapstructure:"mailto"`

	// CrossRefURL overrides the CrossRef API base (default https://api.crossref.org).
	CrossRefURL string `json:"crossref_url,omitempty" yaml:"crossref_url,omitempty" mapstructure:"crossref_url"`

	// SemanticScholarURL overrides the Semantic Scholar graph API base.
	SemanticScholarURL string `json:"semantic_scholar_url,omitempty" yaml:"semantic_scholar_url,omitempty" mapstructure:"semantic_scholar_url"`
}

// GeneratorBackend identifies the text-completion backend.
type GeneratorBackend string

const (
	GeneratorGemini GeneratorBackend = "gemini"
	GeneratorClaude GeneratorBackend = "claude"
	GeneratorOllama GeneratorBackend = "ollama"
)

// GenerationConfig holds settings for the citation synthesizer and the
// text-completion backend behind it.
type GenerationConfig struct {
	// Backend selects the completion backend: gemini, claude, or ollama.
	Backend GeneratorBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Model is the backend model identifier.
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey authenticates against hosted backends. Ollama ignores it.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// BaseURL overrides the backend endpoint.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// MaxLength bounds the generated output length in tokens (default 128).
	MaxLength int `json:"max_length" yaml:"max_length" mapstructure:"max_length"`

	// PadToken is the end-of-sequence token, reused for padding.
	PadToken string `json:"pad_token" yaml:"pad_token" mapstructure:"pad_token"`
}

// OutputFormat selects how the envelope is written.
type OutputFormat string

const (
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
	OutputCSL  OutputFormat = "csl"
)

// Config groups all settings for one run.
type Config struct {
	Sources    SourcesConfig    `json:"sources" yaml:"sources" mapstructure:"sources"`
	Generation GenerationConfig `json:"generation" yaml:"generation" mapstructure:"generation"`
	Format     OutputFormat     `json:"format" yaml:"format" mapstructure:"format"`
}
