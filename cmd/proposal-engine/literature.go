// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/proposal-engine/internal/pipeline"
	"github.com/pdiddy/proposal-engine/pkg/types"
)

var literatureCmd = &cobra.Command{
	Use:   "literature",
	Short: "Review a proposal's novelty against published work",
	Long: `Literature searches academic APIs (arXiv, Semantic Scholar) for papers
related to the session's proposal and scores its novelty against them. A
backend that fails only costs its results; the review proceeds on whatever
the other backends returned.

The stage is optional: expert review accepts sessions that skipped it.`,
	RunE: runLiterature,
}

func runLiterature(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)
	if cmd.Flags().Changed("compress-query") {
		cfg.Literature.CompressQuery, _ = cmd.Flags().GetBool("compress-query")
	}
	if cmd.Flags().Changed("max-results") {
		cfg.Search.MaxResults, _ = cmd.Flags().GetInt("max-results")
	}

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	return withSession(cmd, cfg, func(s *pipeline.Session) error {
		fb, err := p.LiteratureReview(cmd.Context(), s)
		if err != nil {
			return err
		}
		renderLiterature(cmd.OutOrStdout(), fb)
		return nil
	})
}

// renderLiterature writes literature feedback as readable text.
func renderLiterature(w io.Writer, fb types.LiteratureFeedback) {
	fmt.Fprintf(w, "Novelty score: %.1f/10\n\n", fb.NoveltyScore)
	fmt.Fprintf(w, "%s\n\n", fb.NoveltyAssessment)

	if len(fb.SimilarPapers) > 0 {
		fmt.Fprintf(w, "Similar papers (%d):\n", len(fb.SimilarPapers))
		for _, paper := range fb.SimilarPapers {
			year := ""
			if paper.Year > 0 {
				year = fmt.Sprintf(", %d", paper.Year)
			}
			fmt.Fprintf(w, "  - %s (%s%s) [%s]\n", paper.Title, paper.Authors, year, paper.Source)
			if paper.URL != "" {
				fmt.Fprintf(w, "    %s\n", paper.URL)
			}
		}
		fmt.Fprintln(w)
	}

	if len(fb.DifferentiationSuggestions) > 0 {
		fmt.Fprintln(w, "Differentiation suggestions:")
		for _, s := range fb.DifferentiationSuggestions {
			fmt.Fprintf(w, "  - %s\n", s)
		}
		fmt.Fprintln(w)
	}
	if fb.EmergingTrends != "" {
		fmt.Fprintf(w, "Emerging trends: %s\n\n", fb.EmergingTrends)
	}
	if fb.Summary != "" {
		fmt.Fprintf(w, "Summary: %s\n", fb.Summary)
	}
}

func init() {
	literatureCmd.Flags().String("session", "", "session ID to review")
	literatureCmd.Flags().Bool("compress-query", false, "compress the search query through the completion provider")
	literatureCmd.Flags().Int("max-results", 0, "maximum papers to request per search backend")

	rootCmd.AddCommand(literatureCmd)
}
