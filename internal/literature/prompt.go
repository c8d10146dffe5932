// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package literature

import (
	"bytes"
	"text/template"

	"github.com/pdiddy/proposal-engine/pkg/types"
)

// analysisPromptTmpl asks the model to judge proposal novelty against the
// retrieved papers. The response must be a single JSON object.
var analysisPromptTmpl = template.Must(template.New("analysis").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`You are an expert astronomy researcher evaluating the novelty of a research proposal against recently published papers.

RESEARCH PROPOSAL TO EVALUATE:

Title: {{.Title}}

Subfields: {{.Subfields}}

Research Question:
{{.ResearchQuestion}}

Methodology:
{{.Methodology}}

RECENTLY PUBLISHED PAPERS RETRIEVED FOR THIS PROPOSAL:
{{range $i, $p := .Papers}}{{inc $i}}. {{$p.Title}} by {{$p.Authors}} ({{if $p.Year}}{{$p.Year}}{{else}}year unknown{{end}}) [{{$p.Source}}]
{{if $p.Abstract}}   Abstract: {{$p.Abstract}}
{{end}}{{else}}No closely related papers were retrieved by the literature search. Judge the proposal's novelty against your own knowledge of the field, and treat the empty retrieval as only a weak signal of unexplored ground.
{{end}}
YOUR TASK:

1. NOVELTY ASSESSMENT: Analyze how the proposal compares to the retrieved papers. Identify aspects that are already well-studied, partially explored with gaps, and potentially novel contributions.

2. DIFFERENTIATION SUGGESTIONS: Provide specific recommendations to make the proposal more novel while remaining scientifically grounded: methodological innovations, unique data combinations, unexplored parameter spaces, novel theoretical frameworks.

3. EMERGING TRENDS: Identify cutting-edge developments in this research area that could be incorporated.

4. NOVELTY SCORE: Rate the current novelty of the proposal on a scale of 1-10, where 1-3 largely replicates existing work, 4-6 is an incremental advance, 7-8 contains significant novel elements, and 9-10 is a highly innovative approach.

Your response MUST be a single JSON object with exactly this structure. Do not include any text outside the JSON object.

{
  "novelty_score": 7.5,
  "novelty_assessment": "[Detailed paragraph analyzing the proposal's novelty against the retrieved papers]",
  "differentiation_suggestions": ["[Specific suggestion]", "[Another suggestion]"],
  "emerging_trends": "[Paragraph on emerging trends in this research area]",
  "summary": "[Final 3-4 sentence assessment summarizing novelty status and the most promising directions]"
}

IMPORTANT GUIDELINES:
- Be scientifically accurate and realistic in your assessment.
- Ensure suggested innovations are methodologically feasible.
- Provide specific, actionable feedback, not general advice.
- Ground your assessment in the retrieved papers listed above.
`))

// compressPromptTmpl turns a proposal description into a short keyword query
// for the academic search APIs.
var compressPromptTmpl = template.Must(template.New("compress").Parse(`Extract a short keyword search query for academic paper databases from the following research proposal description. Respond ONLY with the query itself: at most 12 words, no quotes, no boolean operators, no explanation.

{{.Query}}
`))

type analysisParams struct {
	Title            string
	Subfields        string
	ResearchQuestion string
	Methodology      string
	Papers           []types.LiteratureFinding
}

func renderAnalysisPrompt(params analysisParams) (string, error) {
	var buf bytes.Buffer
	if err := analysisPromptTmpl.Execute(&buf, params); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderCompressPrompt(query string) (string, error) {
	var buf bytes.Buffer
	if err := compressPromptTmpl.Execute(&buf, struct{ Query string }{Query: query}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
