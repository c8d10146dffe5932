// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/proposal-engine/internal/pipeline"
	"github.com/pdiddy/proposal-engine/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a research proposal from a researcher profile",
	Long: `Generate produces an initial research proposal from a researcher profile:
interests, skill level, time frame, and available resources. Omitted profile
fields fall back to sensible defaults, including a randomly chosen astronomy
subfield when no interests are given.

The new session is archived so later stages (literature, review, improve)
can pick it up by ID.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)
	if v, _ := cmd.Flags().GetString("strategy"); v != "" {
		cfg.Generation.Strategy = types.GenerationStrategy(v)
	}

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	s := pipeline.NewSession()
	proposal, err := p.GenerateIdea(cmd.Context(), s, profileFromFlags(cmd))
	if err != nil {
		return err
	}

	renderProposal(cmd.OutOrStdout(), proposal)
	return saveSession(cmd, cfg, s)
}

// profileFromFlags assembles a researcher profile from command-line flags.
// Empty fields stay empty; the generation stage applies its own defaults.
func profileFromFlags(cmd *cobra.Command) types.ResearcherProfile {
	interests, _ := cmd.Flags().GetStringSlice("interests")
	skillLevel, _ := cmd.Flags().GetString("skill-level")
	timeFrame, _ := cmd.Flags().GetString("time-frame")
	resources, _ := cmd.Flags().GetStringSlice("resources")
	context, _ := cmd.Flags().GetString("context")

	return types.ResearcherProfile{
		Interests:         interests,
		SkillLevel:        skillLevel,
		TimeFrame:         timeFrame,
		Resources:         resources,
		AdditionalContext: context,
	}
}

// renderProposal writes a proposal as readable Markdown, sections in
// canonical order.
func renderProposal(w io.Writer, p types.Proposal) {
	fmt.Fprintf(w, "# %s\n\n", p.Title)
	if len(p.Subfields) > 0 {
		fmt.Fprintf(w, "Subfields: %s\n", strings.Join(p.Subfields, ", "))
	}
	if p.SkillLevel != "" {
		fmt.Fprintf(w, "Skill level: %s", p.SkillLevel)
		if p.TimeFrame != "" {
			fmt.Fprintf(w, "  |  Time frame: %s", p.TimeFrame)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Version: %d\n\n", p.Version)

	for _, name := range types.SectionNames {
		fmt.Fprintf(w, "## %s\n\n%s\n\n", name, p.Section(name))
	}
}

func init() {
	generateCmd.Flags().StringSlice("interests", nil, "research interests (comma-separated)")
	generateCmd.Flags().String("skill-level", "", "researcher experience level: beginner, intermediate, or advanced")
	generateCmd.Flags().String("time-frame", "", "expected project duration (e.g. \"2 years\")")
	generateCmd.Flags().StringSlice("resources", nil, "available datasets, facilities, and tools (comma-separated)")
	generateCmd.Flags().String("context", "", "free-text direction (e.g. \"interested in weak lensing techniques\")")
	generateCmd.Flags().String("strategy", "", "generation strategy: one-call or two-call")

	rootCmd.AddCommand(generateCmd)
}
