// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"text/template"
)

// oneCallPromptTmpl asks for a complete proposal in a single response. The
// model must answer with one JSON object covering the title, subfields, and
// all proposal sections.
var oneCallPromptTmpl = template.Must(template.New("one-call").Parse(`You are an expert astronomy research advisor tasked with generating a novel research idea for a researcher.

**Researcher's Profile:**
- Interests: {{.Interests}}
- Relevant subfields: {{.SubfieldNames}}
- Skill level: {{.SkillLevel}}
- Time frame: {{.TimeFrame}}
- Available resources: {{.Resources}}
- Additional context: {{.AdditionalContext}}

**Guidance for this skill level:** {{.Ambition}}

The idea should be strongly guided by these specific directions:
{{range .Topics}}- {{.}}
{{end}}
**Your Task:**
Generate a single, compelling, and feasible research idea. The idea should be novel but achievable within the researcher's constraints. Enhance creativity by seeking scientifically plausible connections between the directions above.

Your response MUST be a single JSON object with exactly this structure. Do not include any text outside the JSON object.

{
  "title": "[Concise, descriptive title for the research project]",
  "subfields": ["[Most relevant astronomy subfields]"],
  "idea": {
    "Research Question": "[A single, clear, and testable research question.]",
    "Background": "[1-2 paragraphs of context. Explain why this question is scientifically interesting and timely.]",
    "Methodology": "[A concise methodology: data sources, analysis approach, validation. Be concrete about datasets and tools.]",
    "Expected Outcomes": "[2-3 concrete, measurable results expected from this research.]",
    "Potential Challenges": "[Challenges specific to this project with brief mitigation strategies.]",
    "Required Skills": "[Technical and knowledge-based skills needed, with suggestions for developing them.]",
    "Broader Connections": "[How answering this question connects to larger questions in astronomy.]"
  }
}
`))

// questionPromptTmpl is the first call of the two-call strategy. It asks for
// the research question only.
var questionPromptTmpl = template.Must(template.New("question").Parse(`Generate ONE single, specific, compelling, and potentially novel astronomy research question suitable for a {{.SkillLevel}} researcher.

Parameters:
- Researcher interests: {{.Interests}}
- Relevant subfields: {{.SubfieldNames}}
- Time frame: {{.TimeFrame}}
- Available resources: {{.Resources}}
- Skill level: {{.SkillLevel}}
- Additional context: {{.AdditionalContext}}

The generated question should be strongly guided by these specific directions:
{{range .Topics}}- {{.}}
{{end}}
**Guidance for this skill level:** {{.Ambition}}

**Key Goal:** Generate a focused, scientifically interesting, and novel research question that addresses a specific problem or knowledge gap. Enhance creativity by seeking scientifically plausible connections between different concepts or the provided challenges. The question must be answerable within the researcher's constraints.

**Output:**
Respond ONLY with the research question itself. It should be concise and clear. Do NOT include methodology, background, or any other sections.
`))

// solutionPromptTmpl is the second call of the two-call strategy. It develops
// the full proposal for a fixed research question, answered as Markdown
// sections.
var solutionPromptTmpl = template.Must(template.New("solution").Parse(`Develop a detailed, scientifically sound, novel, and feasible research proposal to address the following specific astronomy research question:

**Research Question:**
"{{.Question}}"

**Develop the proposal sections for a {{.SkillLevel}} researcher with this profile:**
- Interests: {{.Interests}}
- Time frame: {{.TimeFrame}}
- Available resources: {{.Resources}}
- Additional context: {{.AdditionalContext}}

**Key Scientific Principles:**
- Methods must be scientifically sound, clearly linked to the provided research question, and appropriate for the data and resources.
- Claims must be realistic and proportional to what the methods and data can actually measure.
- The project must be feasible for the researcher's level ({{.SkillLevel}}) and completable within the timeframe ({{.TimeFrame}}) using only the specified resources.

**Output Format:**
Generate ONLY the content for the following sections. Adhere strictly to the required headings:

# [DESCRIPTIVE PROJECT TITLE]

## Solution Summary
2-3 clear sentences outlining the key steps of the solution, then one sentence on the significance of the project.

## Background
3-4 paragraphs explaining the context, significance, and knowledge gap related specifically to the research question.

## Methodology
A concise methodology covering data acquisition, analysis approach, and validation. Specify data sources, methods, and tools.

## Expected Outcomes
At least three concrete, measurable results expected from answering the research question.

## Potential Challenges
Potential challenges specific to this project with brief mitigation strategies.

## Required Skills
Precise technical and knowledge-based skills needed, with suggestions for how to develop them.

## Broader Connections
How answering this research question connects to larger questions in astronomy and astrophysics.
`))

// structurePromptTmpl formalizes a researcher's free-text idea without
// inventing new content.
var structurePromptTmpl = template.Must(template.New("structure").Parse(`You are an expert astronomy research advisor. A researcher has come to you with a research idea. Your task is to take their raw input and rephrase it into a structured, coherent, and scientifically sound research proposal concept.

**DO NOT INVENT A NEW IDEA.** Your sole purpose is to clarify, structure, and formalize the researcher's existing idea based only on the information they have provided. If their idea is vague, make reasonable, scientifically grounded inferences to fill out the sections.

**Researcher's Raw Idea:**
"{{.Input}}"
{{if .ProfileContext}}
**Researcher's Context:**
{{.ProfileContext}}

Use this context to judge what is feasible for the researcher, but do not let it override the idea itself.
{{end}}
Your response MUST be a single JSON object. Do not include any text outside the JSON object.

{
  "title": "[Concise, descriptive title based on the researcher's idea]",
  "subfields": ["[Most relevant astronomy subfields]"],
  "idea": {
    "Research Question": "[A single, clear, and testable research question based on the researcher's idea.]",
    "Background": "[1-2 paragraphs of context. Explain why this question is scientifically interesting and relevant.]",
    "Methodology": "[A concise methodology grounded in the researcher's idea. Be concrete about datasets and tools.]",
    "Expected Outcomes": "[2-3 concrete outcomes. What would be the tangible result?]",
    "Potential Challenges": "[Challenges specific to this project with brief mitigation strategies.]",
    "Required Skills": "[Technical and knowledge-based skills needed.]",
    "Broader Connections": "[How this idea connects to larger questions in astronomy.]"
  }
}
`))

type promptParams struct {
	Interests         string
	SubfieldNames     string
	SkillLevel        string
	TimeFrame         string
	Resources         string
	AdditionalContext string
	Ambition          string
	Topics            []string
	Question          string
	Input             string
	ProfileContext    string
}

func renderPrompt(tmpl *template.Template, params promptParams) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ambitionFor scales the scope guidance to the researcher's skill level.
func ambitionFor(skillLevel string) string {
	switch skillLevel {
	case "beginner":
		return "Favor a well-scoped project using public data and established analysis techniques. Avoid projects requiring new instrumentation or novel theory."
	case "advanced":
		return "Favor an ambitious project that pushes a methodological or theoretical frontier. Combining techniques across subfields is encouraged."
	default:
		return "Favor a project with a clear path to results that still leaves room for a novel analysis twist or an unexplored dataset."
	}
}
