// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes result envelopes to an io.Writer as JSON, YAML, or
// a CSL-YAML bibliography entry.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/verifai/pkg/types"
)

// Write renders env in the requested format. The CSL format only applies to
// successful envelopes; failures fall back to JSON so the error is visible.
func Write(w io.Writer, format types.OutputFormat, env types.ResultEnvelope) error {
	switch format {
	case types.OutputJSON, "":
		return WriteJSON(w, env)
	case types.OutputYAML:
		return WriteYAML(w, env)
	case types.OutputCSL:
		if !env.Success || env.Paper == nil {
			return WriteJSON(w, env)
		}
		return WriteCSL(w, env.Paper)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteJSON writes env as JSON indented by four spaces.
func WriteJSON(w io.Writer, env types.ResultEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// WriteYAML writes env as a YAML document.
func WriteYAML(w io.Writer, env types.ResultEnvelope) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}
