package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amishk599/jobscout/internal/model"
)

var generated = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

func analysed(id, title string, status model.Status, score int) model.Listing {
	a := model.DefaultAnalysis()
	a.MatchScore = score
	a.OverallRecommendation = model.RecommendApply
	a.SummaryForCandidate = "Good overlap with " + title + "."
	a.KeyStrengths = []string{"Transformers"}
	a.PotentialGaps = []string{"Rust"}
	return model.Listing{
		ID:             id,
		Title:          title,
		Company:        "Acme",
		Location:       "Remote",
		Link:           "https://example.com/" + id,
		Source:         "LinkedIn",
		JobType:        model.JobTypeRemote,
		Status:         status,
		RelevanceScore: score,
		DiscoveredAt:   generated.Add(-time.Hour),
		Analysis:       &a,
	}
}

func TestWrite_SelectsAndOrders(t *testing.T) {
	all := []model.Listing{
		analysed("low", "Low Fit", model.StatusNew, 40),
		analysed("mid", "Mid Fit", model.StatusNew, 75),
		analysed("top", "Top Fit", model.StatusNew, 95),
		analysed("done", "Applied Role", model.StatusApplied, 20),
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, all, 70, generated))
	out := buf.String()

	assert.Contains(t, out, "# Job Application Report")
	assert.Contains(t, out, "Generated on: 2026-06-01 08:00:00")
	assert.Contains(t, out, "Total jobs in database: 4")
	assert.NotContains(t, out, "Low Fit")

	top := strings.Index(out, "## Top Fit at Acme")
	mid := strings.Index(out, "## Mid Fit at Acme")
	done := strings.Index(out, "## Applied Role at Acme")
	require.True(t, top >= 0 && mid >= 0 && done >= 0, out)
	assert.Less(t, top, mid)
	assert.Less(t, mid, done)

	assert.Contains(t, out, "- **Relevance Score:** 95%")
	assert.Contains(t, out, "- **Application Link:** https://example.com/top")
	assert.Contains(t, out, "**Recommendation:** Recommend Apply")
	assert.Contains(t, out, "- Transformers")
	assert.Contains(t, out, "- Rust")
	assert.NotContains(t, out, "Application Strategy Suggestions")
}

func TestWrite_NothingToReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []model.Listing{analysed("x", "X", model.StatusNew, 10)}, 70, generated))

	out := buf.String()
	assert.Contains(t, out, "Total jobs in database: 1")
	assert.Contains(t, out, "No jobs met the criteria for reporting")
	assert.NotContains(t, out, "## ")
}

func TestWrite_FailedAndMissingAnalysis(t *testing.T) {
	failed := analysed("f", "Failed Scoring", model.StatusReviewed, 0)
	failed.Analysis.Error = "quota exceeded"
	bare := analysed("b", "Never Scored", model.StatusApplied, 0)
	bare.Analysis = nil

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []model.Listing{failed, bare}, 70, generated))
	out := buf.String()

	assert.Contains(t, out, "Analysis unavailable: quota exceeded")
	assert.Contains(t, out, "### Analysis\n\nN/A")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, WriteFile(path, []model.Listing{analysed("a", "Role", model.StatusApplied, 50)}, 70, generated))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "## Role at Acme")
}
