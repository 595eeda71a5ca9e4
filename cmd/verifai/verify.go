// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/verifai/internal/citation"
	"github.com/pdiddy/verifai/internal/doi"
	"github.com/pdiddy/verifai/internal/export"
	"github.com/pdiddy/verifai/internal/logging"
	"github.com/pdiddy/verifai/internal/pipeline"
	"github.com/pdiddy/verifai/internal/secrets"
	"github.com/pdiddy/verifai/internal/sources"
	"github.com/pdiddy/verifai/pkg/types"
)

func runVerify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	log := logging.Default()
	out := cmd.OutOrStdout()

	if d := doi.Normalize(args[0]); !doi.Valid(d) {
		log.Warn().Str("doi", d).Msg("input does not look like a DOI; querying anyway")
	}

	// Setup failures still produce an envelope: every accepted DOI gets one.
	cfg, p, err := setup(ctx)
	if err != nil {
		log.Error().Err(err).Msg("setup failed")
		return writeEnvelope(out, cfg.Format, types.Failure(err.Error()))
	}

	env := p.Run(logging.WithLogger(ctx, log), args[0])
	return writeEnvelope(out, cfg.Format, env)
}

// setup loads secrets and configuration and builds the pipeline. On error
// the returned Config still carries a usable output format.
func setup(ctx context.Context) (types.Config, *pipeline.Pipeline, error) {
	fallback := types.Config{Format: types.OutputJSON}

	s, err := secrets.Load(secrets.DefaultDir)
	if err != nil {
		return fallback, nil, err
	}
	if len(s) > 0 {
		keys := make([]string, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		logging.Default().Debug().Strs("keys", keys).Msg("loaded secrets")
	}

	cfg, err := loadConfig(viper.GetViper(), s)
	if err != nil {
		return fallback, nil, err
	}

	// The generator is built once per process and injected.
	gen, err := citation.NewGenerator(ctx, cfg.Generation, http.DefaultClient)
	if err != nil {
		return cfg, nil, fmt.Errorf("initializing citation model: %w", err)
	}
	return cfg, newPipeline(cfg, gen), nil
}

// newPipeline wires the registries and the synthesizer from cfg.
func newPipeline(cfg types.Config, gen citation.Generator) *pipeline.Pipeline {
	client := &http.Client{Timeout: cfg.Sources.Timeout}
	return &pipeline.Pipeline{
		Primary:     &sources.CrossRefSource{Client: client, Config: cfg.Sources},
		Secondary:   &sources.SemanticScholarSource{Client: client, Config: cfg.Sources},
		Synthesizer: citation.NewSynthesizer(gen, cfg.Generation),
		Retractions: &sources.RetractionRegistry{Client: client, Config: cfg.Sources},
	}
}

// writeEnvelope prints env and maps success=false to errUnsuccessful.
func writeEnvelope(w io.Writer, format types.OutputFormat, env types.ResultEnvelope) error {
	if err := export.Write(w, format, env); err != nil {
		return err
	}
	if !env.Success {
		return errUnsuccessful
	}
	return nil
}
