// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/verifai/pkg/types"
)

// isolate runs the command from an empty directory with no config, .env,
// or key files in reach.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
}

func TestRootWritesEnvelopeWhenModelUnavailable(t *testing.T) {
	isolate(t)
	t.Setenv("VERIFAI_GENERATION_BACKEND", "gemini")
	t.Setenv("VERIFAI_GENERATION_API_KEY", "")

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"10.1/abc"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	assert.ErrorIs(t, err, errUnsuccessful)

	var env types.ResultEnvelope
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &env), "stdout: %q", stdout.String())
	assert.False(t, env.Success)
	assert.Nil(t, env.Paper)
	assert.Contains(t, env.Error, "API key")
}

func TestRootWritesEnvelopeForBadConfig(t *testing.T) {
	isolate(t)
	t.Setenv("VERIFAI_FORMAT", "bibtex")

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"10.1/abc"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	assert.ErrorIs(t, rootCmd.Execute(), errUnsuccessful)

	var env types.ResultEnvelope
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, `unknown output format "bibtex"`)
}
