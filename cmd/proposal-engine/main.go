// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the proposal-engine CLI.
// Each pipeline stage is a subcommand: generate, structure, literature,
// review, and improve operate on archived sessions; pipeline runs the full
// sequence in one shot.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/proposal-engine/internal/pipeline"
	"github.com/pdiddy/proposal-engine/internal/secrets"
	"github.com/pdiddy/proposal-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when non-empty, else the loaded secret
// value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the proposal-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "proposal-engine",
	Short: "LLM-driven astronomy research proposal pipeline",
	Long: `proposal-engine turns a loosely specified research interest into a
structured research proposal. It generates an initial proposal from a
researcher profile (or formalizes free-text ideas), checks its novelty
against the recent literature, subjects it to a simulated expert review,
and improves it against the collected feedback.

Each stage is a subcommand operating on an archived session, so a proposal
can be developed across invocations. The pipeline subcommand runs every
stage in one shot.`,
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

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./proposal-engine.yaml or ~/.config/proposal-engine/config.yaml)")
	rootCmd.PersistentFlags().String("provider", "", "completion backend: claude, openai, or gemini")
	rootCmd.PersistentFlags().String("model", "", "model identifier (each backend has its own default)")
	rootCmd.PersistentFlags().Float64("temperature", 0, "sampling temperature for completion calls")
	rootCmd.PersistentFlags().String("sessions-dir", "", "directory holding the session archive")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("proposal-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "proposal-engine"))
		}
	}

	viper.SetEnvPrefix("PROPOSAL_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig assembles the effective configuration: struct defaults,
// then the config file and environment, then command-line flags, with
// credentials filled from .secrets/.
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	cfg := types.DefaultPipelineConfig()

	if v := viper.GetString("provider.backend"); v != "" {
		cfg.Provider.Backend = types.ProviderBackend(v)
	}
	if v := viper.GetString("provider.model"); v != "" {
		cfg.Provider.Model = v
	}
	if viper.IsSet("provider.temperature") {
		cfg.Provider.Temperature = viper.GetFloat64("provider.temperature")
	}
	if viper.IsSet("provider.max_tokens") {
		cfg.Provider.MaxTokens = viper.GetInt("provider.max_tokens")
	}
	if viper.IsSet("search.max_results") {
		cfg.Search.MaxResults = viper.GetInt("search.max_results")
	}
	if viper.IsSet("search.enable_arxiv") {
		cfg.Search.EnableArxiv = viper.GetBool("search.enable_arxiv")
	}
	if viper.IsSet("search.enable_semantic_scholar") {
		cfg.Search.EnableSemanticScholar = viper.GetBool("search.enable_semantic_scholar")
	}
	if viper.IsSet("generation.strategy") {
		cfg.Generation.Strategy = types.GenerationStrategy(viper.GetString("generation.strategy"))
	}
	if viper.IsSet("literature.compress_query") {
		cfg.Literature.CompressQuery = viper.GetBool("literature.compress_query")
	}
	if viper.IsSet("improvement.preserve_research_question") {
		cfg.Improvement.PreserveResearchQuestion = viper.GetBool("improvement.preserve_research_question")
	}
	if v := viper.GetString("store.dir"); v != "" {
		cfg.Store.Dir = v
	}

	if v, _ := cmd.Flags().GetString("provider"); v != "" {
		cfg.Provider.Backend = types.ProviderBackend(v)
	}
	if v, _ := cmd.Flags().GetString("model"); v != "" {
		cfg.Provider.Model = v
	}
	if cmd.Flags().Changed("temperature") {
		cfg.Provider.Temperature, _ = cmd.Flags().GetFloat64("temperature")
	}
	if v, _ := cmd.Flags().GetString("sessions-dir"); v != "" {
		cfg.Store.Dir = v
	}

	cfg.Provider.APIKey = secretDefault(
		secrets.ForBackend(string(cfg.Provider.Backend)),
		viper.GetString("provider.api_key"))
	cfg.Search.SemanticScholarAPIKey = secretDefault(
		secrets.KeySemanticScholar,
		viper.GetString("search.semantic_scholar_api_key"))

	return cfg
}

// newPipeline builds the pipeline with progress lines on stderr, keeping
// stdout for proposal and export output.
func newPipeline(cfg types.PipelineConfig) (*pipeline.Pipeline, error) {
	p, err := pipeline.New(cfg)
	if err != nil {
		return nil, err
	}
	p.SetProgress(os.Stderr)
	return p, nil
}

// withSession loads the named session, runs fn, and saves the session back
// if fn succeeded.
func withSession(cmd *cobra.Command, cfg types.PipelineConfig, fn func(s *pipeline.Session) error) error {
	id, _ := cmd.Flags().GetString("session")
	if id == "" {
		return fmt.Errorf("--session is required: run 'proposal-engine sessions list' to see archived sessions")
	}

	store, err := pipeline.OpenStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	s, err := store.Load(cmd.Context(), id)
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	return store.Save(cmd.Context(), s)
}

// saveSession archives a session, opening the store on demand.
func saveSession(cmd *cobra.Command, cfg types.PipelineConfig, s *pipeline.Session) error {
	store, err := pipeline.OpenStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(cmd.Context(), s); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Saved session %s\n", s.ID)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
