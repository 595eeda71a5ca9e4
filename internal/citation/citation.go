// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citation synthesizes an IEEE-style citation string for a
// reconciled paper by prompting a text-completion model.
//
// The output is best-effort text completion, not a guaranteed-correct IEEE
// citation: the first completion is trimmed and returned verbatim, with no
// grammar or format validation. Its quality is entirely the model's.
package citation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/verifai/internal/logging"
	"github.com/pdiddy/verifai/pkg/types"
)

const (
	// DefaultMaxLength bounds generated output, in tokens.
	DefaultMaxLength = 128

	// DefaultPadToken is the GPT-style end-of-sequence token, reused as the
	// padding token.
	DefaultPadToken = "<|endoftext|>"
)

// ErrNoCompletion is returned when a generator answers with zero sequences.
var ErrNoCompletion = errors.New("text generation returned no completions")

// Options configures one completion request.
type Options struct {
	// MaxLength bounds the generated output length in tokens.
	MaxLength int

	// NumSequences is the number of completions requested.
	NumSequences int

	// PadToken is the end-of-sequence token, also used for padding so that
	// trailing padding is indistinguishable from end of text.
	PadToken string
}

// Completion is one generated sequence.
type Completion struct {
	GeneratedText string
}

// Generator is an opaque text-completion capability. Implementations are
// constructed once per process and injected into the Synthesizer.
type Generator interface {
	Complete(ctx context.Context, prompt string, opts Options) ([]Completion, error)
}

// Synthesizer renders the citation prompt and calls the Generator.
type Synthesizer struct {
	gen       Generator
	maxLength int
	padToken  string
}

// NewSynthesizer wraps gen with the configured length bound and pad token.
func NewSynthesizer(gen Generator, cfg types.GenerationConfig) *Synthesizer {
	s := &Synthesizer{
		gen:       gen,
		maxLength: cfg.MaxLength,
		padToken:  cfg.PadToken,
	}
	if s.maxLength <= 0 {
		s.maxLength = DefaultMaxLength
	}
	if s.padToken == "" {
		s.padToken = DefaultPadToken
	}
	return s
}

// Synthesize returns the generated citation for p. Generator failures are
// returned to the caller unchanged in kind; they are not recovered here.
func (s *Synthesizer) Synthesize(ctx context.Context, p types.PaperRecord) (string, error) {
	prompt, err := renderPrompt(p)
	if err != nil {
		return "", fmt.Errorf("rendering citation prompt: %w", err)
	}

	out, err := s.gen.Complete(ctx, prompt, Options{
		MaxLength:    s.maxLength,
		NumSequences: 1,
		PadToken:     s.padToken,
	})
	if err != nil {
		return "", fmt.Errorf("generating citation: %w", err)
	}
	if len(out) == 0 {
		return "", ErrNoCompletion
	}

	citation := stripPadding(out[0].GeneratedText, s.padToken)
	logging.FromContext(ctx).Debug().Int("chars", len(citation)).Msg("citation generated")
	return citation, nil
}

// stripPadding trims whitespace and any trailing pad tokens.
func stripPadding(text, pad string) string {
	text = strings.TrimSpace(text)
	if pad == "" {
		return text
	}
	for strings.HasSuffix(text, pad) {
		text = strings.TrimSpace(strings.TrimSuffix(text, pad))
	}
	return text
}
