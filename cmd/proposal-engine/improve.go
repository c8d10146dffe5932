// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/proposal-engine/internal/pipeline"
)

var improveCmd = &cobra.Command{
	Use:   "improve",
	Short: "Revise a proposal against its collected feedback",
	Long: `Improve revises the session's proposal against the expert critique it
received, producing the next version. The research question is pinned; the
other sections are rewritten to address the concerns and recommendations.

Pass --feedback on an already-improved session to steer another revision
pass with your own comments instead of the stored critique.

Instead of --session, a proposal and critique produced elsewhere can be
revised by pointing --proposal and --expert-feedback at their JSON files.
A new session is created and archived.`,
	RunE: runImprove,
}

func runImprove(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)
	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	feedback, _ := cmd.Flags().GetString("feedback")

	if proposalFile, _ := cmd.Flags().GetString("proposal"); proposalFile != "" {
		proposal, err := os.ReadFile(proposalFile)
		if err != nil {
			return fmt.Errorf("reading proposal file: %w", err)
		}
		expertFile, _ := cmd.Flags().GetString("expert-feedback")
		if expertFile == "" {
			return fmt.Errorf("--expert-feedback is required with --proposal")
		}
		expert, err := os.ReadFile(expertFile)
		if err != nil {
			return fmt.Errorf("reading expert feedback file: %w", err)
		}

		s := pipeline.NewSession()
		if err := p.AdoptForImprovement(s, proposal, expert); err != nil {
			return err
		}
		improved, err := p.Improve(cmd.Context(), s)
		if err != nil {
			return err
		}
		renderProposal(cmd.OutOrStdout(), improved)
		return saveSession(cmd, cfg, s)
	}

	return withSession(cmd, cfg, func(s *pipeline.Session) error {
		if feedback != "" {
			if err := p.SubmitUserFeedback(s, feedback); err != nil {
				return err
			}
		}
		improved, err := p.Improve(cmd.Context(), s)
		if err != nil {
			return err
		}
		renderProposal(cmd.OutOrStdout(), improved)
		return nil
	})
}

func init() {
	improveCmd.Flags().String("session", "", "session ID to improve")
	improveCmd.Flags().String("feedback", "", "free-text feedback steering the revision (improved sessions only)")
	improveCmd.Flags().String("proposal", "", "path to a proposal JSON file to revise instead of a session")
	improveCmd.Flags().String("expert-feedback", "", "path to an expert critique JSON file (with --proposal)")

	rootCmd.AddCommand(improveCmd)
}
