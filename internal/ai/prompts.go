package ai

import (
	_ "embed"
	"text/template"
)

//go:embed prompts/fit_analysis.md
var fitAnalysisPromptRaw string

// FitAnalysisTemplate is the parsed prompt template for candidate/listing fit
// analysis. It expects a value with Candidate and Listing string fields.
var FitAnalysisTemplate = template.Must(template.New("fit_analysis").Parse(fitAnalysisPromptRaw))
