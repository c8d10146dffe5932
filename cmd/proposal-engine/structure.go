// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/proposal-engine/internal/pipeline"
	"github.com/pdiddy/proposal-engine/pkg/types"
)

var structureCmd = &cobra.Command{
	Use:   "structure [idea text...]",
	Short: "Formalize a free-text research idea into a structured proposal",
	Long: `Structure takes a researcher's own idea as free text and formalizes it
into the standard proposal sections without inventing a new idea. Pass the
idea as arguments or point --file at a text file.

The new session is archived so later stages can pick it up by ID.`,
	RunE: runStructure,
}

func runStructure(cmd *cobra.Command, args []string) error {
	ideaText := strings.Join(args, " ")
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading idea file: %w", err)
		}
		ideaText = string(data)
	}
	if strings.TrimSpace(ideaText) == "" {
		return fmt.Errorf("idea text required: pass it as arguments or via --file")
	}

	cfg := pipelineConfig(cmd)
	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	var profile *types.ResearcherProfile
	if prof := profileFromFlags(cmd); !profileEmpty(prof) {
		profile = &prof
	}

	s := pipeline.NewSession()
	proposal, err := p.StructureIdea(cmd.Context(), s, ideaText, profile)
	if err != nil {
		return err
	}

	renderProposal(cmd.OutOrStdout(), proposal)
	return saveSession(cmd, cfg, s)
}

func profileEmpty(p types.ResearcherProfile) bool {
	return len(p.Interests) == 0 && p.SkillLevel == "" && p.TimeFrame == "" &&
		len(p.Resources) == 0 && p.AdditionalContext == ""
}

func init() {
	structureCmd.Flags().String("file", "", "path to a text file holding the idea")
	structureCmd.Flags().StringSlice("interests", nil, "research interests (comma-separated)")
	structureCmd.Flags().String("skill-level", "", "researcher experience level: beginner, intermediate, or advanced")
	structureCmd.Flags().String("time-frame", "", "expected project duration (e.g. \"2 years\")")
	structureCmd.Flags().StringSlice("resources", nil, "available datasets, facilities, and tools (comma-separated)")
	structureCmd.Flags().String("context", "", "free-text direction (e.g. \"interested in weak lensing techniques\")")

	rootCmd.AddCommand(structureCmd)
}
