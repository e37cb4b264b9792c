package review

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amishk599/jobscout/internal/model"
)

type fakeActions struct {
	applied  []string
	reviewed []string
	known    map[string]bool
	err      error
}

func (f *fakeActions) MarkApplied(id string) (bool, error) {
	f.applied = append(f.applied, id)
	return f.known[id], f.err
}

func (f *fakeActions) MarkReviewed(id string) (bool, error) {
	f.reviewed = append(f.reviewed, id)
	return f.known[id], f.err
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sampleListings() []model.Listing {
	return []model.Listing{
		{ID: "low", Title: "Data Intern", Company: "Beta", Source: "Indeed", Status: model.StatusNew, RelevanceScore: 40},
		{ID: "high", Title: "NLP Intern", Company: "Acme", Source: "LinkedIn", Status: model.StatusNew, RelevanceScore: 90, Link: "https://x/high"},
		{ID: "done", Title: "CV Intern", Company: "Gamma", Source: "LinkedIn", Status: model.StatusApplied, RelevanceScore: 75},
	}
}

// ready returns a model that has received its first window size.
func ready(t *testing.T, m reviewModel) reviewModel {
	t.Helper()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(reviewModel)
}

// press sends key s and runs any command it returns, feeding the result back.
func press(t *testing.T, m reviewModel, s string) reviewModel {
	t.Helper()
	next, cmd := m.Update(key(s))
	m = next.(reviewModel)
	if cmd != nil {
		if msg, ok := cmd().(markedMsg); ok {
			next, _ = m.Update(msg)
			m = next.(reviewModel)
		}
	}
	return m
}

func TestNewReviewModel_PartitionsAndSorts(t *testing.T) {
	m := newReviewModel(sampleListings(), nil)

	require.Len(t, m.lists[paneOpen], 2)
	assert.Equal(t, "high", m.lists[paneOpen][0].ID, "best score first")
	require.Len(t, m.lists[paneDone], 1)
	assert.Equal(t, "done", m.lists[paneDone][0].ID)
}

func TestMarkApplied_MovesListing(t *testing.T) {
	actions := &fakeActions{known: map[string]bool{"high": true}}
	m := ready(t, newReviewModel(sampleListings(), actions))
	at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return at }

	m = press(t, m, "a")

	assert.Equal(t, []string{"high"}, actions.applied)
	require.Len(t, m.lists[paneOpen], 1)
	assert.Equal(t, "low", m.lists[paneOpen][0].ID)
	require.Len(t, m.lists[paneDone], 2)

	var moved model.Listing
	for _, l := range m.lists[paneDone] {
		if l.ID == "high" {
			moved = l
		}
	}
	assert.Equal(t, model.StatusApplied, moved.Status)
	require.NotNil(t, moved.AppliedAt)
	assert.True(t, moved.AppliedAt.Equal(at))
	assert.Equal(t, "marked applied", m.flash)
	assert.False(t, m.busy)
}

func TestMarkReviewed_FromDetailView(t *testing.T) {
	actions := &fakeActions{known: map[string]bool{"high": true}}
	m := ready(t, newReviewModel(sampleListings(), actions))

	m = press(t, m, "enter")
	require.Equal(t, viewDetail, m.view)
	assert.Equal(t, "high", m.detail.ID)

	m = press(t, m, "d")
	assert.Equal(t, []string{"high"}, actions.reviewed)
	assert.Equal(t, model.StatusReviewed, m.detail.Status)
	assert.Contains(t, m.renderDetail(), string(model.StatusReviewed))

	m = press(t, m, "esc")
	assert.Equal(t, viewList, m.view)
}

func TestMark_UnknownOrFailing(t *testing.T) {
	m := ready(t, newReviewModel(sampleListings(), &fakeActions{}))
	m = press(t, m, "a")
	assert.True(t, m.isError)
	assert.Contains(t, m.flash, "not found")
	assert.Len(t, m.lists[paneOpen], 2, "nothing moves when the store did not change")

	m = ready(t, newReviewModel(sampleListings(), &fakeActions{err: errors.New("disk full")}))
	m = press(t, m, "a")
	assert.Contains(t, m.flash, "disk full")
}

func TestMark_AlreadyInStatus(t *testing.T) {
	actions := &fakeActions{known: map[string]bool{"done": true}}
	m := ready(t, newReviewModel(sampleListings(), actions))

	m = press(t, m, "tab")
	m = press(t, m, "a")

	assert.Empty(t, actions.applied)
	assert.Equal(t, "already applied", m.flash)
}

func TestOpenUsesApplyURL(t *testing.T) {
	m := ready(t, newReviewModel(sampleListings(), nil))
	var opened string
	m.openURL = func(u string) { opened = u }

	press(t, m, "o")
	assert.Equal(t, "https://x/high", opened)
}

func TestCursorStaysInRange(t *testing.T) {
	m := ready(t, newReviewModel(sampleListings(), nil))
	for range 5 {
		m = press(t, m, "down")
	}
	assert.Equal(t, 1, m.cursors[paneOpen])
	m = press(t, m, "k")
	assert.Equal(t, 0, m.cursors[paneOpen])
}

func TestQuitVersusBack(t *testing.T) {
	m := ready(t, newReviewModel(sampleListings(), nil))

	next, cmd := m.Update(key("q"))
	assert.True(t, next.(reviewModel).wantQuit)
	assert.NotNil(t, cmd)

	next, cmd = m.Update(key("esc"))
	assert.False(t, next.(reviewModel).wantQuit)
	assert.NotNil(t, cmd)
}

func TestRenderDetail_ShowsAnalysisAndFailure(t *testing.T) {
	a := model.DefaultAnalysis()
	a.MatchScore = 88
	a.OverallRecommendation = model.RecommendStrongly
	a.SummaryForCandidate = "Great overlap with your NLP work."
	a.KeyStrengths = []string{"Transformers"}
	l := model.Listing{ID: "x", Title: "NLP Intern", Analysis: &a, RelevanceScore: 88, Description: "Build models."}

	m := ready(t, newReviewModel([]model.Listing{l}, nil))
	m = press(t, m, "enter")
	out := m.renderDetail()
	assert.Contains(t, out, model.RecommendStrongly)
	assert.Contains(t, out, "Transformers")
	assert.Contains(t, out, "press r")
	assert.NotContains(t, out, "Build models.")

	m = press(t, m, "r")
	assert.Contains(t, m.renderDetail(), "Build models.")

	failed := model.DefaultAnalysis()
	failed.Error = "Failed to parse model response as JSON"
	l.Analysis = &failed
	m = ready(t, newReviewModel([]model.Listing{l}, nil))
	m = press(t, m, "enter")
	assert.Contains(t, m.renderDetail(), failed.Error)
}

func TestBoardChoices(t *testing.T) {
	choices := BoardChoices(sampleListings())

	require.Len(t, choices, 3)
	assert.Equal(t, BoardChoice{Source: "", Total: 3, Pending: 2}, choices[0])
	// Equal pending counts fall back to name order.
	assert.Equal(t, BoardChoice{Source: "Indeed", Total: 1, Pending: 1}, choices[1])
	assert.Equal(t, BoardChoice{Source: "LinkedIn", Total: 2, Pending: 1}, choices[2])
	assert.True(t, strings.HasPrefix(choices[0].label(), "All boards"))
}

func TestPicker(t *testing.T) {
	m := pickerModel{choices: BoardChoices(sampleListings()), chosen: -1}

	next, _ := m.Update(key("j"))
	next, _ = next.Update(key("j"))
	next, _ = next.Update(key("j"))
	next, cmd := next.Update(key("enter"))
	assert.Equal(t, 2, next.(pickerModel).chosen)
	assert.NotNil(t, cmd)

	next, _ = m.Update(key("q"))
	assert.Equal(t, -2, next.(pickerModel).chosen)
}

func TestLoader(t *testing.T) {
	want := []model.Listing{{ID: "1"}}
	m := newLoaderModel(context.Background(), "Searching", func(context.Context) ([]model.Listing, error) {
		return want, nil
	})
	assert.Contains(t, m.View(), "Searching...")

	msg := m.load()()
	next, cmd := m.Update(msg)
	final := next.(loaderModel)
	assert.Equal(t, want, final.result)
	assert.NoError(t, final.err)
	assert.NotNil(t, cmd)
	assert.Empty(t, final.View())
}

func TestLoader_CtrlCCancels(t *testing.T) {
	var seen context.Context
	m := newLoaderModel(context.Background(), "Searching", func(ctx context.Context) ([]model.Listing, error) {
		seen = ctx
		return nil, ctx.Err()
	})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	final := next.(loaderModel)
	assert.ErrorIs(t, final.err, ErrCancelled)

	m.load()()
	assert.ErrorIs(t, seen.Err(), context.Canceled)
}
