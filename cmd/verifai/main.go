// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the verifai CLI. It resolves one DOI
// into a citation-bearing metadata record and prints a single result
// envelope to stdout.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/verifai/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// errUnsuccessful signals that the envelope was written with success=false.
// The envelope already carries the message, so nothing else is printed.
var errUnsuccessful = errors.New("verification unsuccessful")

// rootCmd is the base command for the verifai CLI.
var rootCmd = &cobra.Command{
	Use:   "verifai [flags] <doi>",
	Short: "Resolve a DOI, synthesize an IEEE citation, and check for retractions",
	Long: `verifai looks a paper up by DOI in CrossRef and Semantic Scholar, merges
the two records, asks a text-generation model for an IEEE citation, and checks
CrossRef for retraction notices matching the paper's title.

Exactly one JSON document (or YAML / CSL-YAML with --format) is written to
stdout. The exit status is 1 when the document reports success=false.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		jsonLogs, _ := cmd.Flags().GetBool("log-json")
		return logging.Setup(logging.Options{Level: level, JSON: jsonLogs})
	},
	RunE: runVerify,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./verifai.yaml or ~/.config/verifai/verifai.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default from LOG_LEVEL, else info)")
	rootCmd.PersistentFlags().Bool("log-json", false, "write logs as JSON even on a terminal")

	rootCmd.Flags().StringP("format", "f", "", "output format: json, yaml, or csl (default json)")
	rootCmd.Flags().String("backend", "", "text generation backend: gemini, claude, or ollama")
	rootCmd.Flags().String("model", "", "text generation model")
	rootCmd.Flags().Int("max-length", 0, "maximum generated citation length in tokens")
	rootCmd.Flags().String("mailto", "", "contact address sent to CrossRef")
	rootCmd.Flags().Duration("timeout", 0, "HTTP request timeout for registry lookups")
	bindFlags(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errUnsuccessful) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
