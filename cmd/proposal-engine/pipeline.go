// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/proposal-engine/internal/pipeline"
	"github.com/pdiddy/proposal-engine/pkg/types"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run the full proposal pipeline in one shot",
	Long: `Pipeline runs every stage in sequence on a fresh session: generate a
proposal from the profile flags (or formalize --idea text), review it
against the literature, collect a simulated expert critique, and improve
it. Prints the improved proposal; --output with --format writes the full
artifact bundle instead.`,
	RunE: runPipeline,
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)
	if v, _ := cmd.Flags().GetString("strategy"); v != "" {
		cfg.Generation.Strategy = types.GenerationStrategy(v)
	}

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	ideaText, _ := cmd.Flags().GetString("idea")
	s := pipeline.NewSession()

	result, err := p.FullPipeline(cmd.Context(), s, profileFromFlags(cmd), ideaText)
	if err != nil {
		return err
	}

	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		format, _ := cmd.Flags().GetString("format")
		if err := writeSessionFile(outPath, s, format); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote session to %s\n", outPath)
	} else {
		renderProposal(cmd.OutOrStdout(), result.Improved)
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		return saveSession(cmd, cfg, s)
	}
	return nil
}

// writeSessionFile exports the session bundle to a file, inferring the
// format from the extension when --format is not set.
func writeSessionFile(path string, s *pipeline.Session, format string) error {
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			format = "yaml"
		default:
			format = "json"
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	return pipeline.Export(f, s, format)
}

func init() {
	pipelineCmd.Flags().StringSlice("interests", nil, "research interests (comma-separated)")
	pipelineCmd.Flags().String("skill-level", "", "researcher experience level: beginner, intermediate, or advanced")
	pipelineCmd.Flags().String("time-frame", "", "expected project duration (e.g. \"2 years\")")
	pipelineCmd.Flags().StringSlice("resources", nil, "available datasets, facilities, and tools (comma-separated)")
	pipelineCmd.Flags().String("context", "", "free-text direction for idea generation")
	pipelineCmd.Flags().String("idea", "", "formalize this free-text idea instead of generating one")
	pipelineCmd.Flags().String("strategy", "", "generation strategy: one-call or two-call")
	pipelineCmd.Flags().String("output", "", "write the full artifact bundle to this file")
	pipelineCmd.Flags().String("format", "", "bundle format: json or yaml (default: by file extension)")
	pipelineCmd.Flags().Bool("save", false, "archive the session for later stages")

	rootCmd.AddCommand(pipelineCmd)
}
