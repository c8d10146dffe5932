// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package improve

import (
	"bytes"
	"text/template"
)

// feedbackPromptTmpl revises a proposal against expert and literature
// feedback. The research question is fixed: revision refines how it gets
// answered, never what is being asked.
var feedbackPromptTmpl = template.Must(template.New("feedback").Parse(`You are an astronomy researcher revising your research proposal based on expert feedback{{if .HasLiterature}} and a literature review{{end}}.

YOUR ORIGINAL PROPOSAL:
Title: "{{.Title}}"
Research Question: "{{.ResearchQuestion}}"
{{range $name, $content := .Sections}}{{$name}}: {{$content}}
{{end}}
EXPERT FEEDBACK TO ADDRESS:
Scientific Validity Concerns:
{{range .ValidityConcerns}}- {{.}}
{{else}}- None
{{end}}Methodological Concerns:
{{range .MethodologyConcerns}}- {{.}}
{{else}}- None
{{end}}Expert Recommendations:
{{range .Recommendations}}- {{.}}
{{else}}- None
{{end}}Overall Assessment: {{.Summary}}
{{if .HasLiterature}}
LITERATURE REVIEW INSIGHTS:
Novelty Assessment (Score: {{.NoveltyScore}}/10): {{.NoveltyAssessment}}
Innovation Opportunities:
{{range .Suggestions}}- {{.}}
{{else}}- None
{{end}}Emerging Research Trends: {{.EmergingTrends}}
Literature Summary: {{.LiteratureSummary}}
{{end}}
INSTRUCTIONS:
Create an improved version of the proposal sections that addresses ALL feedback provided above. The goal is to refine the approach for answering the original research question: "{{.ResearchQuestion}}". Do NOT change the research question. Ensure the revised proposal is scientifically sound, feasible, and more novel where possible.

Your response MUST be a single JSON object with exactly this structure. Do not include any text outside the JSON object.

{
  "title": "[A specific improved title, not a placeholder]",
  "idea": {
    "Research Question": "{{.ResearchQuestion}}",
    "Background": "[Improved background addressing the feedback]",
    "Methodology": "[Improved methodology addressing the feedback and feasibility]",
    "Expected Outcomes": "[Improved expected outcomes]",
    "Potential Challenges": "[Improved potential challenges]",
    "Required Skills": "[Improved required skills]",
    "Broader Connections": "[Improved broader connections]"
  }
}
`))

// userFeedbackPromptTmpl revises a proposal against direct feedback from the
// researcher. Whether the research question may change is a policy decision
// made by the caller.
var userFeedbackPromptTmpl = template.Must(template.New("user-feedback").Parse(`You are an astronomy researcher revising your research proposal based on direct feedback from the project owner.

YOUR ORIGINAL PROPOSAL:
Title: "{{.Title}}"
Research Question: "{{.ResearchQuestion}}"
{{range $name, $content := .Sections}}{{$name}}: {{$content}}
{{end}}
{{if .PreserveQuestion}}THE RESEARCH QUESTION MUST NOT BE CHANGED. Apply the feedback to the other sections only.
{{else}}The feedback may change any part of the proposal, including the research question.
{{end}}
FEEDBACK TO ADDRESS:
{{.UserFeedback}}

INSTRUCTIONS:
Create an improved version of the proposal that addresses the feedback while maintaining scientific rigor and feasibility.

Your response MUST be a single JSON object with exactly this structure. Do not include any text outside the JSON object.

{
  "title": "[A specific improved title, not a placeholder]",
  "idea": {
    "Research Question": "{{if .PreserveQuestion}}{{.ResearchQuestion}}{{else}}[The research question, revised only if the feedback calls for it]{{end}}",
    "Background": "[Improved background addressing the feedback]",
    "Methodology": "[Improved methodology addressing the feedback]",
    "Expected Outcomes": "[Improved expected outcomes]",
    "Potential Challenges": "[Improved potential challenges]",
    "Required Skills": "[Improved required skills]",
    "Broader Connections": "[Improved broader connections]"
  }
}
`))

type promptParams struct {
	Title            string
	ResearchQuestion string
	Sections         map[string]string

	ValidityConcerns    []string
	MethodologyConcerns []string
	Recommendations     []string
	Summary             string

	HasLiterature     bool
	NoveltyScore      float64
	NoveltyAssessment string
	Suggestions       []string
	EmergingTrends    string
	LiteratureSummary string

	UserFeedback     string
	PreserveQuestion bool
}

func renderPrompt(tmpl *template.Template, params promptParams) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params); err != nil {
		return "", err
	}
	return buf.String(), nil
}
