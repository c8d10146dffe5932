// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the proposal-engine
// pipeline: the Proposal artifact passed between stages, the feedback
// objects produced by the literature and expert review stages, stage
// configuration, and the error taxonomy.
package types

import "fmt"

// SectionNames is the fixed, ordered set of idea sections every Proposal
// carries. Stages backfill missing sections with a placeholder so consumers
// can index any of the seven keys without a presence check.
var SectionNames = []string{
	"Research Question",
	"Background",
	"Methodology",
	"Expected Outcomes",
	"Potential Challenges",
	"Required Skills",
	"Broader Connections",
}

// MissingSectionPlaceholder returns the marker stored under a section the
// model failed to generate.
func MissingSectionPlaceholder(section string) string {
	return fmt.Sprintf("[Missing %s]", section)
}

// Proposal is the structured research-idea artifact passed between all
// stages. Proposals are immutable snapshots: a stage that improves one
// returns a new value and leaves its input untouched.
type Proposal struct {
	// Title is a concise, descriptive project title.
	Title string `json:"title" yaml:"title"`

	// Subfields lists the research subfield tags, most relevant first.
	Subfields []string `json:"subfields" yaml:"subfields"`

	// SkillLevel describes the target researcher's experience
	// (e.g. "beginner", "graduate", "advanced").
	SkillLevel string `json:"skill_level" yaml:"skill_level"`

	// TimeFrame is the expected project duration (e.g. "1 year").
	TimeFrame string `json:"time_frame" yaml:"time_frame"`

	// ResourcesNeeded lists datasets, facilities, and tools the project relies on.
	ResourcesNeeded []string `json:"resources_needed" yaml:"resources_needed"`

	// Idea maps each name in SectionNames to free-text content. Sections the
	// model failed to produce hold MissingSectionPlaceholder markers.
	Idea map[string]string `json:"idea" yaml:"idea"`

	// Version counts successful improvement passes; 0 is the original generation.
	Version int `json:"version" yaml:"version"`
}

// Section returns the content of the named idea section, or its placeholder
// when the section map itself is absent.
func (p Proposal) Section(name string) string {
	if v, ok := p.Idea[name]; ok {
		return v
	}
	return MissingSectionPlaceholder(name)
}

// NormalizeSections returns a copy of the section map containing exactly the
// keys in SectionNames. Missing or empty sections are filled from prev when a
// previous proposal is supplied, and with placeholders otherwise.
func NormalizeSections(sections map[string]string, prev map[string]string) map[string]string {
	out := make(map[string]string, len(SectionNames))
	for _, name := range SectionNames {
		if v, ok := sections[name]; ok && v != "" {
			out[name] = v
			continue
		}
		if v, ok := prev[name]; ok && v != "" {
			out[name] = v
			continue
		}
		out[name] = MissingSectionPlaceholder(name)
	}
	return out
}

// ResearcherProfile describes the person the proposal is generated for.
type ResearcherProfile struct {
	// Interests lists research topics the researcher cares about.
	Interests []string `json:"interests" yaml:"interests"`

	// SkillLevel is the researcher's experience level.
	SkillLevel string `json:"skill_level" yaml:"skill_level"`

	// TimeFrame is the expected project duration.
	TimeFrame string `json:"time_frame" yaml:"time_frame"`

	// Resources lists datasets, facilities, and tools available to the researcher.
	Resources []string `json:"resources" yaml:"resources"`

	// AdditionalContext is optional free text with extra direction
	// (e.g. "interested in weak lensing techniques").
	AdditionalContext string `json:"additional_context,omitempty" yaml:"additional_context,omitempty"`
}
