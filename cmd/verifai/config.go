// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/verifai/internal/citation"
	"github.com/pdiddy/verifai/internal/logging"
	"github.com/pdiddy/verifai/internal/secrets"
	"github.com/pdiddy/verifai/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "VerifAI/1.0"
)

// envKeyReplacer maps nested keys to VERIFAI_SECTION_KEY variables.
var envKeyReplacer = strings.NewReplacer(".", "_")

// flagKeys maps CLI flags to config keys.
var flagKeys = map[string]string{
	"format":     "format",
	"backend":    "generation.backend",
	"model":      "generation.model",
	"max-length": "generation.max_length",
	"mailto":     "sources.mailto",
	"timeout":    "sources.timeout",
}

func bindFlags(cmd *cobra.Command) {
	for flag, key := range flagKeys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("sources.timeout", defaultTimeout)
	v.SetDefault("sources.user_agent", defaultUserAgent)
	v.SetDefault("sources.mailto", "")
	v.SetDefault("sources.crossref_url", "")
	v.SetDefault("sources.semantic_scholar_url", "")

	v.SetDefault("generation.backend", string(types.GeneratorGemini))
	v.SetDefault("generation.model", "")
	v.SetDefault("generation.api_key", "")
	v.SetDefault("generation.base_url", "")
	v.SetDefault("generation.max_length", citation.DefaultMaxLength)
	v.SetDefault("generation.pad_token", citation.DefaultPadToken)

	v.SetDefault("format", string(types.OutputJSON))
}

func initConfig() {
	// A .env file is optional; its values only seed the environment.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("verifai")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "verifai"))
		}
	}

	setDefaults(viper.GetViper())
	viper.SetEnvPrefix("VERIFAI")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logging.Default().Debug().Str("file", viper.ConfigFileUsed()).Msg("using config file")
	}
}

// loadConfig decodes v into a Config and fills credentials that are not
// configured explicitly from the secrets map.
func loadConfig(v *viper.Viper, s map[string]string) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Generation.APIKey == "" {
		cfg.Generation.APIKey = secrets.APIKeyFor(s, cfg.Generation.Backend)
	}
	if cfg.Sources.Mailto == "" {
		cfg.Sources.Mailto = s[secrets.CrossRefMailto]
	}
	if cfg.Sources.Timeout <= 0 {
		cfg.Sources.Timeout = defaultTimeout
	}

	switch cfg.Format {
	case types.OutputJSON, types.OutputYAML, types.OutputCSL:
	default:
		return types.Config{}, fmt.Errorf("unknown output format %q (want json, yaml, or csl)", cfg.Format)
	}
	return cfg, nil
}
