package model

// Recommendation tiers returned by the scoring model.
const (
	RecommendStrongly  = "Strongly Recommend Apply"
	RecommendApply     = "Recommend Apply"
	RecommendConsider  = "Consider Applying"
	RecommendNotFit    = "Likely Not a Good Fit"
	AnalysisIncomplete = "Analysis Incomplete"
)

// DefaultSummary is used when the model omitted summary_for_candidate.
const DefaultSummary = "Could not fully parse the fit analysis."

// Analysis is the structured fit assessment attached to a scored listing.
type Analysis struct {
	MatchScore            int      `json:"match_score"`
	KeyStrengths          []string `json:"key_strengths_alignment"`
	PotentialGaps         []string `json:"potential_gaps_or_areas_for_development"`
	ApplicationStrategy   []string `json:"application_strategy_suggestions"`
	OverallRecommendation string   `json:"overall_recommendation"`
	SummaryForCandidate   string   `json:"summary_for_candidate"`

	// Set when scoring failed; the fields above then hold defaults.
	Error   string `json:"error,omitempty"`
	RawText string `json:"raw_text,omitempty"`
}

// DefaultAnalysis returns the complete analysis shape with placeholder values.
func DefaultAnalysis() Analysis {
	return Analysis{
		MatchScore:            0,
		KeyStrengths:          []string{},
		PotentialGaps:         []string{},
		ApplicationStrategy:   []string{},
		OverallRecommendation: AnalysisIncomplete,
		SummaryForCandidate:   DefaultSummary,
	}
}

// Failed reports whether the analysis carries an error marker.
func (a *Analysis) Failed() bool {
	return a != nil && a.Error != ""
}
