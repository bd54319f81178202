// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the deepresearch CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/deepresearch/internal/backend"
	"github.com/pdiddy/deepresearch/internal/pipeline"
	"github.com/pdiddy/deepresearch/internal/research"
	"github.com/pdiddy/deepresearch/internal/secrets"
	"github.com/pdiddy/deepresearch/internal/write"
	"github.com/pdiddy/deepresearch/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the deepresearch CLI.
var rootCmd = &cobra.Command{
	Use:   "deepresearch",
	Short: "Local-first research assistant with web, academic, and model retrieval",
	Long: `deepresearch answers research questions through a plan, search, and
write pipeline. A topic is expanded into sub-questions, each question is
answered by an interchangeable retrieval strategy (web search, academic
sources, top papers, model knowledge, or a hybrid), and the answers are
synthesized into a structured document.

Generation prefers a local LM Studio server and falls back to the hosted
OpenAI API when one is configured.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./deepresearch.yaml or ~/.config/deepresearch/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("deepresearch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "deepresearch"))
		}
	}

	viper.SetEnvPrefix("DEEPRESEARCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadPipelineConfig assembles the stage configuration from the config
// file, environment, and secret files. Secrets win over nothing: empty
// keys simply select the fallback path for that stage.
func loadPipelineConfig() types.PipelineConfig {
	cfg := types.PipelineConfig{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("search.timeout"),
				UserAgent: "deepresearch/" + version,
			},
			TavilyAPIKey: secrets.Value(loadedSecrets, "tavily-api-key", "TAVILY_API_KEY"),
			MaxResults:   viper.GetInt("search.max_results"),
			Workers:      viper.GetInt("search.workers"),
		},
		Local: types.BackendConfig{
			BaseURL:      secrets.Value(loadedSecrets, "lm-studio-url", "LM_STUDIO_URL"),
			Model:        viper.GetString("local.model"),
			Timeout:      viper.GetDuration("local.timeout"),
			ProbeTimeout: viper.GetDuration("local.probe_timeout"),
		},
		Hosted: types.BackendConfig{
			BaseURL: viper.GetString("hosted.base_url"),
			Model:   viper.GetString("hosted.model"),
			APIKey:  secrets.Value(loadedSecrets, "openai-api-key", "OPENAI_API_KEY"),
			Timeout: viper.GetDuration("hosted.timeout"),
		},
		Writer: types.WriterConfig{
			Polish: viper.GetBool("writer.polish"),
		},
		Session: types.SessionConfig{
			Dir: viper.GetString("session.dir"),
		},
	}
	if cfg.Search.Timeout == 0 {
		cfg.Search.Timeout = 20 * time.Second
	}
	return cfg
}

// buildPipeline wires the retrieval client and writer from configuration.
func buildPipeline(cfg types.PipelineConfig) *pipeline.Pipeline {
	client := &research.Client{
		Selector:   backend.NewChainSelector(cfg.Local, cfg.Hosted, true),
		MaxResults: cfg.Search.MaxResults,
	}
	if tavily := research.NewTavily(cfg.Search); tavily != nil {
		client.Provider = tavily
	}

	writer := &write.Writer{
		Selector: backend.NewChainSelector(cfg.Local, cfg.Hosted, true),
	}
	if polisher := backend.NewOpenAI(cfg.Hosted); polisher != nil {
		writer.Polisher = polisher
	}

	return &pipeline.Pipeline{
		Client:  client,
		Writer:  writer,
		Workers: cfg.Search.Workers,
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
