// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/proposal-engine/internal/pipeline"
	"github.com/pdiddy/proposal-engine/pkg/types"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Critique a proposal as a simulated expert reviewer",
	Long: `Review evaluates the session's proposal the way a senior astronomy
professor would: scientific validity, methodology, novelty, impact, and
feasibility, with concrete recommendations. Literature findings from an
earlier literature stage are folded into the critique when present.

Instead of --session, a proposal produced elsewhere can be reviewed by
pointing --proposal at its JSON file, optionally with --literature for
JSON literature feedback. A new session is created and archived.`,
	RunE: runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)
	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	if proposalFile, _ := cmd.Flags().GetString("proposal"); proposalFile != "" {
		s := pipeline.NewSession()
		if err := adoptFromFiles(cmd, p, s, proposalFile); err != nil {
			return err
		}
		fb, err := p.ExpertReview(cmd.Context(), s)
		if err != nil {
			return err
		}
		renderExpert(cmd.OutOrStdout(), fb)
		return saveSession(cmd, cfg, s)
	}

	return withSession(cmd, cfg, func(s *pipeline.Session) error {
		fb, err := p.ExpertReview(cmd.Context(), s)
		if err != nil {
			return err
		}
		renderExpert(cmd.OutOrStdout(), fb)
		return nil
	})
}

// adoptFromFiles seeds a session from proposal and optional literature
// feedback files.
func adoptFromFiles(cmd *cobra.Command, p *pipeline.Pipeline, s *pipeline.Session, proposalFile string) error {
	proposal, err := os.ReadFile(proposalFile)
	if err != nil {
		return fmt.Errorf("reading proposal file: %w", err)
	}
	var lit any
	if litFile, _ := cmd.Flags().GetString("literature"); litFile != "" {
		data, err := os.ReadFile(litFile)
		if err != nil {
			return fmt.Errorf("reading literature feedback file: %w", err)
		}
		lit = data
	}
	return p.AdoptProposal(s, proposal, lit)
}

// renderExpert writes an expert critique as readable text.
func renderExpert(w io.Writer, fb types.ExpertFeedback) {
	renderCritique(w, "Scientific validity", fb.ScientificValidity)
	renderCritique(w, "Methodology", fb.Methodology)

	if fb.NoveltyAssessment != "" {
		fmt.Fprintf(w, "Novelty: %s\n", fb.NoveltyAssessment)
	}
	if fb.ImpactAssessment != "" {
		fmt.Fprintf(w, "Impact: %s\n", fb.ImpactAssessment)
	}
	if fb.FeasibilityAssessment != "" {
		fmt.Fprintf(w, "Feasibility: %s\n", fb.FeasibilityAssessment)
	}
	fmt.Fprintln(w)

	if len(fb.Recommendations) > 0 {
		fmt.Fprintln(w, "Recommendations:")
		for _, r := range fb.Recommendations {
			fmt.Fprintf(w, "  - %s\n", r)
		}
		fmt.Fprintln(w)
	}
	if fb.Summary != "" {
		fmt.Fprintf(w, "Summary: %s\n", fb.Summary)
	}
}

func renderCritique(w io.Writer, label string, c types.CritiqueCategory) {
	fmt.Fprintf(w, "%s:\n", label)
	for _, s := range c.Strengths {
		fmt.Fprintf(w, "  + %s\n", s)
	}
	for _, s := range c.Concerns {
		fmt.Fprintf(w, "  - %s\n", s)
	}
	if len(c.Strengths)+len(c.Concerns) == 0 {
		fmt.Fprintln(w, "  (none noted)")
	}
	fmt.Fprintln(w)
}

func init() {
	reviewCmd.Flags().String("session", "", "session ID to review")
	reviewCmd.Flags().String("proposal", "", "path to a proposal JSON file to review instead of a session")
	reviewCmd.Flags().String("literature", "", "path to a literature feedback JSON file (with --proposal)")

	rootCmd.AddCommand(reviewCmd)
}
