// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate produces structured research proposals, either from a
// researcher profile or by formalizing free-form idea text.
package generate

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/pdiddy/proposal-engine/internal/provider"
	"github.com/pdiddy/proposal-engine/pkg/types"
)

// fallbackTitle is used when the model fails to produce a usable title.
const fallbackTitle = "Untitled Research Project"

// Generator turns researcher input into structured proposals through an LLM
// provider.
type Generator struct {
	Provider    provider.Client
	Strategy    types.GenerationStrategy
	Temperature float64

	// Rand drives subfield and topic selection. Tests set it for
	// deterministic seeds; nil gets a source seeded from the global
	// generator.
	Rand *rand.Rand
}

// New returns a Generator using the configured strategy.
func New(client provider.Client, cfg types.GenerationConfig, temperature float64) *Generator {
	return &Generator{
		Provider:    client,
		Strategy:    cfg.Strategy,
		Temperature: temperature,
		Rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (g *Generator) rng() *rand.Rand {
	if g.Rand == nil {
		g.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g.Rand
}

// proposalWire is the JSON shape the model is asked to produce.
type proposalWire struct {
	Title     string            `json:"title"`
	Subfields []string          `json:"subfields"`
	Idea      map[string]string `json:"idea"`
}

// FromProfile generates a new proposal for the given researcher profile.
// Missing profile fields get neutral defaults so generation never blocks on
// an incomplete profile. The returned proposal always carries all sections,
// with placeholders for anything the model failed to produce, and version 0.
func (g *Generator) FromProfile(ctx context.Context, profile types.ResearcherProfile) (types.Proposal, error) {
	profile = withProfileDefaults(profile, g.rng())
	relevant := relevantSubfields(profile.Interests, g.rng())
	topics := seedTopics(relevant, profile.AdditionalContext, g.rng())

	params := promptParams{
		Interests:         strings.Join(profile.Interests, ", "),
		SubfieldNames:     subfieldNames(relevant),
		SkillLevel:        profile.SkillLevel,
		TimeFrame:         profile.TimeFrame,
		Resources:         strings.Join(profile.Resources, ", "),
		AdditionalContext: orNone(profile.AdditionalContext),
		Ambition:          ambitionFor(profile.SkillLevel),
		Topics:            topics,
	}

	if g.Strategy == types.StrategyTwoCall {
		return g.generateTwoCall(ctx, profile, params)
	}
	return g.generateOneCall(ctx, profile, params)
}

func (g *Generator) generateOneCall(ctx context.Context, profile types.ResearcherProfile, params promptParams) (types.Proposal, error) {
	prompt, err := renderPrompt(oneCallPromptTmpl, params)
	if err != nil {
		return types.Proposal{}, fmt.Errorf("rendering generation prompt: %w", err)
	}

	text, err := g.Provider.Complete(ctx, prompt, g.Temperature)
	if err != nil {
		return types.Proposal{}, err
	}

	var wire proposalWire
	if err := provider.ExtractInto(text, &wire); err != nil {
		return types.Proposal{}, err
	}

	return g.assemble(wire, profile), nil
}

func (g *Generator) generateTwoCall(ctx context.Context, profile types.ResearcherProfile, params promptParams) (types.Proposal, error) {
	questionPrompt, err := renderPrompt(questionPromptTmpl, params)
	if err != nil {
		return types.Proposal{}, fmt.Errorf("rendering question prompt: %w", err)
	}

	questionText, err := g.Provider.Complete(ctx, questionPrompt, g.Temperature)
	if err != nil {
		return types.Proposal{}, err
	}
	question := strings.TrimSpace(questionText)
	if question == "" {
		question = fmt.Sprintf("Explore %s using available resources.", strings.Join(profile.Interests, ", "))
	}

	params.Question = question
	solutionPrompt, err := renderPrompt(solutionPromptTmpl, params)
	if err != nil {
		return types.Proposal{}, fmt.Errorf("rendering solution prompt: %w", err)
	}

	solutionText, err := g.Provider.Complete(ctx, solutionPrompt, g.Temperature)
	if err != nil {
		return types.Proposal{}, err
	}

	title, sections := parseSections(solutionText)
	if summary := strings.TrimSpace(sections["Solution Summary"]); summary != "" {
		question = question + "\n\n" + summary
	}
	sections["Research Question"] = question

	return g.assemble(proposalWire{Title: title, Idea: sections}, profile), nil
}

func (g *Generator) assemble(wire proposalWire, profile types.ResearcherProfile) types.Proposal {
	title := strings.TrimSpace(wire.Title)
	if title == "" {
		title = fallbackTitle
	}
	subfields := wire.Subfields
	if len(subfields) == 0 {
		subfields = profile.Interests
	}
	return types.Proposal{
		Title:           title,
		Subfields:       subfields,
		SkillLevel:      profile.SkillLevel,
		TimeFrame:       profile.TimeFrame,
		ResourcesNeeded: profile.Resources,
		Idea:            types.NormalizeSections(wire.Idea, nil),
		Version:         0,
	}
}

// FromFreeText structures a researcher's raw idea into a formal proposal
// without inventing new content. An optional profile adds researcher context
// to the prompt and is stamped onto the result. When the model omits a
// title, one is derived from the input text.
func (g *Generator) FromFreeText(ctx context.Context, input string, profile *types.ResearcherProfile) (types.Proposal, error) {
	if strings.TrimSpace(input) == "" {
		return types.Proposal{}, &types.ConfigurationError{Reason: "idea text is empty"}
	}

	prompt, err := renderPrompt(structurePromptTmpl, promptParams{
		Input:          input,
		ProfileContext: profileContext(profile),
	})
	if err != nil {
		return types.Proposal{}, fmt.Errorf("rendering structure prompt: %w", err)
	}

	text, err := g.Provider.Complete(ctx, prompt, g.Temperature)
	if err != nil {
		return types.Proposal{}, err
	}

	var wire proposalWire
	if err := provider.ExtractInto(text, &wire); err != nil {
		return types.Proposal{}, err
	}

	title := strings.TrimSpace(wire.Title)
	if title == "" {
		title = titleFromInput(input)
	}
	proposal := types.Proposal{
		Title:     title,
		Subfields: wire.Subfields,
		Idea:      types.NormalizeSections(wire.Idea, nil),
		Version:   0,
	}
	if profile != nil {
		proposal.SkillLevel = profile.SkillLevel
		proposal.TimeFrame = profile.TimeFrame
		proposal.ResourcesNeeded = profile.Resources
		if len(proposal.Subfields) == 0 {
			proposal.Subfields = profile.Interests
		}
	}
	return proposal, nil
}

// profileContext renders the researcher profile as prompt context lines,
// skipping empty fields. Returns "" for a nil or empty profile.
func profileContext(profile *types.ResearcherProfile) string {
	if profile == nil {
		return ""
	}
	var lines []string
	if len(profile.Interests) > 0 {
		lines = append(lines, "Interests: "+strings.Join(profile.Interests, ", "))
	}
	if profile.SkillLevel != "" {
		lines = append(lines, "Skill level: "+profile.SkillLevel)
	}
	if profile.TimeFrame != "" {
		lines = append(lines, "Time frame: "+profile.TimeFrame)
	}
	if len(profile.Resources) > 0 {
		lines = append(lines, "Available resources: "+strings.Join(profile.Resources, ", "))
	}
	if strings.TrimSpace(profile.AdditionalContext) != "" {
		lines = append(lines, "Additional context: "+profile.AdditionalContext)
	}
	return strings.Join(lines, "\n")
}

// parseSections splits a Markdown proposal into its title and "## Section"
// bodies. Unrecognized headings start a section anyway so content between
// known headings is never silently dropped into the wrong section.
func parseSections(text string) (string, map[string]string) {
	known := append([]string{"Solution Summary"}, types.SectionNames...)

	title := ""
	sections := make(map[string]string)
	current := ""
	var content []string

	flush := func() {
		if current != "" {
			sections[current] = strings.TrimSpace(strings.Join(content, "\n"))
		}
		content = nil
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if title == "" && strings.HasPrefix(trimmed, "# ") && !strings.HasPrefix(trimmed, "## ") {
			candidate := strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
			if !isSectionHeading(candidate, known) {
				title = candidate
				continue
			}
		}
		if strings.HasPrefix(trimmed, "## ") {
			flush()
			heading := strings.TrimSpace(strings.TrimPrefix(trimmed, "## "))
			current = canonicalSection(heading, known)
			continue
		}
		if current != "" {
			content = append(content, line)
		}
	}
	flush()

	return title, sections
}

func isSectionHeading(s string, known []string) bool {
	for _, name := range known {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

func canonicalSection(heading string, known []string) string {
	for _, name := range known {
		if strings.EqualFold(heading, name) {
			return name
		}
	}
	return heading
}

// titleFromInput derives a fallback title from the researcher's raw idea.
func titleFromInput(input string) string {
	line := strings.TrimSpace(strings.SplitN(strings.TrimSpace(input), "\n", 2)[0])
	const maxLen = 60
	runes := []rune(line)
	if len(runes) > maxLen {
		line = strings.TrimSpace(string(runes[:maxLen])) + "..."
	}
	if line == "" {
		return fallbackTitle
	}
	return line
}

func withProfileDefaults(profile types.ResearcherProfile, rng *rand.Rand) types.ResearcherProfile {
	if len(profile.Interests) == 0 {
		profile.Interests = []string{Subfields[rng.Intn(len(Subfields))].Name}
	}
	if profile.SkillLevel == "" {
		profile.SkillLevel = "beginner"
	}
	if profile.TimeFrame == "" {
		profile.TimeFrame = "2-3 years"
	}
	if len(profile.Resources) == 0 {
		profile.Resources = []string{"Public astronomical datasets", "University computing cluster"}
	}
	return profile
}

func subfieldNames(subfields []Subfield) string {
	names := make([]string, len(subfields))
	for i, sf := range subfields {
		names[i] = sf.Name
	}
	return strings.Join(names, ", ")
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None provided."
	}
	return s
}
