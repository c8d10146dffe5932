// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package review

import (
	"bytes"
	"text/template"

	"github.com/pdiddy/proposal-engine/pkg/types"
)

// evaluationPromptTmpl asks the model to critique a proposal as an expert
// astronomy professor. When a literature review ran first, its condensed
// findings are folded into the prompt so the critique is grounded in what
// was actually published.
var evaluationPromptTmpl = template.Must(template.New("evaluation").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`You are an expert astronomy professor with decades of experience evaluating research proposals.

Analyze this astronomy research proposal titled "{{.Title}}" thoroughly and provide critical but constructive feedback.

RESEARCH QUESTION:
{{.ResearchQuestion}}

BACKGROUND:
{{.Background}}

METHODOLOGY:
{{.Methodology}}

RESEARCHER SKILL LEVEL: {{.SkillLevel}}
TIMEFRAME: {{.TimeFrame}}
{{if .Literature}}
LITERATURE REVIEW FINDINGS:

Similar Recent Papers:
{{range $i, $p := .Literature.Papers}}{{inc $i}}. {{$p.Title}} by {{$p.Authors}} ({{if $p.Year}}{{$p.Year}}{{else}}year unknown{{end}})
{{end}}
Novelty Assessment (Score: {{.Literature.NoveltyScore}}/10):
{{.Literature.NoveltyAssessment}}

Key Innovation Suggestions:
{{range .Literature.Suggestions}}- {{.}}
{{end}}{{end}}
EVALUATION INSTRUCTIONS:

Step by step, evaluate this proposal according to these criteria:

1. SCIENTIFIC VALIDITY AND ACCURACY: Is the problem statement clear and specific? Are there direct, established connections between methods and claimed measurements? Is the approach based on correct physical and astronomical principles? Are the instruments, surveys, and data sources capable of measuring what is claimed?

2. METHODOLOGY: Is the research plan well-designed and rigorous? Are the proposed methods appropriate for the research question? Is the data analysis approach sound? Are potential systematic effects accounted for?

3. NOVELTY: Does the proposal advance knowledge beyond the current state of the art{{if .Literature}}, in light of the literature findings above{{end}}?

4. IMPACT: Would answering this question matter to the field? Who would build on the results?

5. FEASIBILITY: Can the researcher, at the stated skill level and timeframe, realistically complete this project with the stated resources?

Your response MUST be a single JSON object with exactly this structure. Do not include any text outside the JSON object.

{
  "scientific_validity": {
    "strengths": ["[A specific strength]"],
    "concerns": ["[A specific concern]"]
  },
  "methodology": {
    "strengths": ["[A specific strength]"],
    "concerns": ["[A specific concern]"]
  },
  "novelty_assessment": "[Paragraph assessing novelty]",
  "impact_assessment": "[Paragraph assessing impact]",
  "feasibility_assessment": "[Paragraph assessing feasibility for the stated skill level and timeframe]",
  "recommendations": ["[Clear, actionable recommendation]", "[Another recommendation]"],
  "summary": "[3-4 sentence overall assessment]"
}

Be specific and constructive: every concern should be actionable, and recommendations should be concrete enough to revise the proposal against.
`))

type literatureParams struct {
	Papers            []types.LiteratureFinding
	NoveltyScore      float64
	NoveltyAssessment string
	Suggestions       []string
}

type evaluationParams struct {
	Title            string
	ResearchQuestion string
	Background       string
	Methodology      string
	SkillLevel       string
	TimeFrame        string
	Literature       *literatureParams
}

func renderEvaluationPrompt(params evaluationParams) (string, error) {
	var buf bytes.Buffer
	if err := evaluationPromptTmpl.Execute(&buf, params); err != nil {
		return "", err
	}
	return buf.String(), nil
}
