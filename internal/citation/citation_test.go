// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/verifai/pkg/types"
)

// --- fake generator ---

type fakeGenerator struct {
	out     []Completion
	err     error
	prompts []string
	opts    []Options
}

func (f *fakeGenerator) Complete(_ context.Context, prompt string, opts Options) ([]Completion, error) {
	f.prompts = append(f.prompts, prompt)
	f.opts = append(f.opts, opts)
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

func samplePaper() types.PaperRecord {
	return types.PaperRecord{
		Title:   "Deep Learning",
		Authors: []string{"Yann LeCun", "Yoshua Bengio", "Geoffrey Hinton"},
		Year:    "2015",
		DOI:     "10.1038/nature14539",
	}
}

// --- renderPrompt ---

func TestRenderPrompt(t *testing.T) {
	prompt, err := renderPrompt(samplePaper())
	require.NoError(t, err)

	want := "Generate an IEEE citation for a paper with the following details:\n" +
		"Title: Deep Learning\n" +
		"Authors: Yann LeCun, Yoshua Bengio, Geoffrey Hinton\n" +
		"Year: 2015\n" +
		"DOI: 10.1038/nature14539\n"
	assert.Equal(t, want, prompt)
}

func TestRenderPromptEmptyFields(t *testing.T) {
	prompt, err := renderPrompt(types.PaperRecord{DOI: "10.1/x"})
	require.NoError(t, err)

	assert.Contains(t, prompt, "Title: \n")
	assert.Contains(t, prompt, "Authors: \n")
	assert.Contains(t, prompt, "Year: \n")
	assert.Contains(t, prompt, "DOI: 10.1/x\n")
}

func TestRenderPromptNoEscaping(t *testing.T) {
	p := samplePaper()
	p.Title = `Cats & Dogs: "<b>A</b>" study`
	prompt, err := renderPrompt(p)
	require.NoError(t, err)
	assert.Contains(t, prompt, `Title: Cats & Dogs: "<b>A</b>" study`)
}

// --- Synthesize ---

func TestSynthesize(t *testing.T) {
	gen := &fakeGenerator{out: []Completion{
		{GeneratedText: "  Y. LeCun, Y. Bengio, and G. Hinton, \"Deep learning,\" 2015.\n"},
		{GeneratedText: "ignored"},
	}}
	s := NewSynthesizer(gen, types.GenerationConfig{})

	got, err := s.Synthesize(context.Background(), samplePaper())
	require.NoError(t, err)
	assert.Equal(t, `Y. LeCun, Y. Bengio, and G. Hinton, "Deep learning," 2015.`, got)

	require.Len(t, gen.opts, 1)
	assert.Equal(t, Options{MaxLength: DefaultMaxLength, NumSequences: 1, PadToken: DefaultPadToken}, gen.opts[0])
	assert.Contains(t, gen.prompts[0], "Title: Deep Learning")
}

func TestSynthesizeConfiguredOptions(t *testing.T) {
	gen := &fakeGenerator{out: []Completion{{GeneratedText: "citation</s>"}}}
	s := NewSynthesizer(gen, types.GenerationConfig{MaxLength: 64, PadToken: "</s>"})

	got, err := s.Synthesize(context.Background(), samplePaper())
	require.NoError(t, err)
	assert.Equal(t, "citation", got)
	assert.Equal(t, 64, gen.opts[0].MaxLength)
	assert.Equal(t, "</s>", gen.opts[0].PadToken)
}

func TestSynthesizeErrors(t *testing.T) {
	backendErr := errors.New("model unavailable")

	t.Run("backend error propagates", func(t *testing.T) {
		s := NewSynthesizer(&fakeGenerator{err: backendErr}, types.GenerationConfig{})
		_, err := s.Synthesize(context.Background(), samplePaper())
		require.Error(t, err)
		assert.ErrorIs(t, err, backendErr)
	})

	t.Run("zero completions", func(t *testing.T) {
		s := NewSynthesizer(&fakeGenerator{}, types.GenerationConfig{})
		_, err := s.Synthesize(context.Background(), samplePaper())
		assert.ErrorIs(t, err, ErrNoCompletion)
	})
}

// --- stripPadding ---

func TestStripPadding(t *testing.T) {
	tests := []struct {
		name string
		in   string
		pad  string
		want string
	}{
		{"plain", "text", DefaultPadToken, "text"},
		{"surrounding whitespace", "  text \n", DefaultPadToken, "text"},
		{"single pad", "text<|endoftext|>", DefaultPadToken, "text"},
		{"repeated pad", "text<|endoftext|><|endoftext|> <|endoftext|>", DefaultPadToken, "text"},
		{"pad in middle kept", "a<|endoftext|>b", DefaultPadToken, "a<|endoftext|>b"},
		{"empty pad", "text ", "", "text"},
		{"only padding", "<|endoftext|>", DefaultPadToken, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripPadding(tt.in, tt.pad))
		})
	}
}

// --- NewGenerator ---

func TestNewGenerator(t *testing.T) {
	ctx := context.Background()

	gen, err := NewGenerator(ctx, types.GenerationConfig{Backend: types.GeneratorClaude, APIKey: "k", Model: "m"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &ClaudeGenerator{}, gen)

	gen, err = NewGenerator(ctx, types.GenerationConfig{Backend: types.GeneratorOllama}, nil)
	require.NoError(t, err)
	assert.IsType(t, &OllamaGenerator{}, gen)

	gen, err = NewGenerator(ctx, types.GenerationConfig{Backend: types.GeneratorGemini, APIKey: "k"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &GeminiGenerator{}, gen)

	_, err = NewGenerator(ctx, types.GenerationConfig{Backend: types.GeneratorClaude}, nil)
	assert.Error(t, err, "claude without key")

	_, err = NewGenerator(ctx, types.GenerationConfig{Backend: types.GeneratorGemini}, nil)
	assert.Error(t, err, "gemini without key")

	_, err = NewGenerator(ctx, types.GenerationConfig{Backend: "gpt2"}, nil)
	assert.ErrorContains(t, err, `unknown generation backend "gpt2"`)
}
