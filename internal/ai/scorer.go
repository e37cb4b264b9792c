package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"text/template"

	"github.com/amishk599/jobscout/internal/model"
)

// ParseFailure is the error marker stored when the model's answer is not JSON.
const ParseFailure = "Failed to parse model response as JSON"

// FitScorer implements model.Scorer by asking an LLM how well a candidate
// profile fits a listing.
type FitScorer struct {
	provider  LLMProvider
	tmpl      *template.Template
	candidate string
	logger    *slog.Logger
}

// NewFitScorer creates a scorer. candidate is embedded verbatim (as indented
// JSON) in every prompt.
func NewFitScorer(provider LLMProvider, tmpl *template.Template, candidate map[string]any, logger *slog.Logger) (*FitScorer, error) {
	profile, err := json.MarshalIndent(candidate, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode candidate profile: %w", err)
	}
	return &FitScorer{
		provider:  provider,
		tmpl:      tmpl,
		candidate: string(profile),
		logger:    logger,
	}, nil
}

// Score returns l enriched with an analysis and relevance score. It never
// fails: any problem yields a zero score and an analysis carrying an error
// marker.
func (s *FitScorer) Score(ctx context.Context, l model.Listing) model.Listing {
	s.logger.Info("scoring listing", "listing_id", l.ID, "title", l.Title)

	raw, err := s.complete(ctx, l)
	if err != nil {
		s.logger.Error("scoring failed", "listing_id", l.ID, "error", err)
		return withAnalysis(l, failedAnalysis(err.Error(), ""))
	}

	analysis, err := parseAnalysis(raw)
	if err != nil {
		s.logger.Error("could not parse fit analysis",
			"listing_id", l.ID,
			"error", err,
			"response", truncate(raw, 500),
		)
		return withAnalysis(l, failedAnalysis(ParseFailure, raw))
	}

	s.logger.Info("listing scored",
		"listing_id", l.ID,
		"score", analysis.MatchScore,
		"recommendation", analysis.OverallRecommendation,
	)
	return withAnalysis(l, analysis)
}

func (s *FitScorer) complete(ctx context.Context, l model.Listing) (string, error) {
	details, err := json.MarshalIndent(promptFields(l), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode listing: %w", err)
	}

	var prompt bytes.Buffer
	if err := s.tmpl.Execute(&prompt, struct {
		Candidate string
		Listing   string
	}{
		Candidate: s.candidate,
		Listing:   string(details),
	}); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}

	return s.provider.Complete(ctx, prompt.String())
}

func withAnalysis(l model.Listing, a model.Analysis) model.Listing {
	l.Analysis = &a
	l.RelevanceScore = a.MatchScore
	return l
}

func failedAnalysis(msg, raw string) model.Analysis {
	a := model.DefaultAnalysis()
	a.Error = msg
	a.RawText = raw
	return a
}

// promptFields is the listing as the model sees it. Map keys are emitted in
// sorted order by encoding/json.
func promptFields(l model.Listing) map[string]any {
	m := map[string]any{
		"job_id":           l.ID,
		"title":            l.Title,
		"company":          l.Company,
		"location":         l.Location,
		"description":      l.Description,
		"requirements":     l.Requirements,
		"salary_range":     l.SalaryRange,
		"application_link": l.ApplyURL(),
		"link":             l.Link,
		"source":           l.Source,
		"job_type":         l.JobType,
	}
	if len(l.Tags) > 0 {
		m["tags"] = l.Tags
	}
	if l.DatePosted != "" {
		m["date_posted"] = l.DatePosted
	}
	return m
}

// partialAnalysis is what the model actually sent. Absent keys stay nil so
// they can be told apart from explicit empty values.
type partialAnalysis struct {
	MatchScore            *score    `json:"match_score"`
	KeyStrengths          *[]string `json:"key_strengths_alignment"`
	PotentialGaps         *[]string `json:"potential_gaps_or_areas_for_development"`
	ApplicationStrategy   *[]string `json:"application_strategy_suggestions"`
	OverallRecommendation *string   `json:"overall_recommendation"`
	SummaryForCandidate   *string   `json:"summary_for_candidate"`
}

// score accepts a JSON number or a numeric string, clamped to 0..100.
type score int

func (s *score) UnmarshalJSON(b []byte) error {
	v := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if v == "null" || v == "" {
		*s = 0
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("match_score %s is not a number", string(b))
	}
	*s = score(min(100, max(0, int(f))))
	return nil
}

// parseAnalysis strips optional code fences and merges the decoded object
// over DefaultAnalysis.
func parseAnalysis(raw string) (model.Analysis, error) {
	var p partialAnalysis
	if err := json.Unmarshal([]byte(stripFences(raw)), &p); err != nil {
		return model.Analysis{}, err
	}

	a := model.DefaultAnalysis()
	if p.MatchScore != nil {
		a.MatchScore = int(*p.MatchScore)
	}
	if p.KeyStrengths != nil && *p.KeyStrengths != nil {
		a.KeyStrengths = *p.KeyStrengths
	}
	if p.PotentialGaps != nil && *p.PotentialGaps != nil {
		a.PotentialGaps = *p.PotentialGaps
	}
	if p.ApplicationStrategy != nil && *p.ApplicationStrategy != nil {
		a.ApplicationStrategy = *p.ApplicationStrategy
	}
	if p.OverallRecommendation != nil {
		a.OverallRecommendation = *p.OverallRecommendation
	}
	if p.SummaryForCandidate != nil {
		a.SummaryForCandidate = *p.SummaryForCandidate
	}
	return a, nil
}

func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if after, ok := strings.CutPrefix(s, "```json"); ok {
		s = after
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
