package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/amishk599/jobscout/internal/model"
)

// Ensure SlackNotifier implements model.Notifier.
var _ model.Notifier = (*SlackNotifier)(nil)

// SlackNotifier sends listing alerts to a Slack channel via Incoming Webhooks.
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
	gap        time.Duration
}

// NewSlackNotifier returns a notifier that posts each listing to Slack via webhook.
func NewSlackNotifier(webhookURL string, httpClient *http.Client, logger *slog.Logger) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		httpClient: httpClient,
		logger:     logger,
		gap:        500 * time.Millisecond,
	}
}

// Notify sends each listing as a separate Slack message using Block Kit.
// Returns an error only if ALL messages fail. Individual failures are logged.
func (s *SlackNotifier) Notify(listings []model.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	failures := 0
	for i, l := range listings {
		if i > 0 {
			time.Sleep(s.gap)
		}

		if err := s.sendMessage(l); err != nil {
			s.logger.Error("slack notification failed", "company", l.Company, "title", l.Title, "error", err)
			failures++
		}
	}

	if failures == len(listings) {
		return fmt.Errorf("all %d slack notifications failed", failures)
	}
	s.logger.Info("slack notifications complete", "sent", len(listings)-failures, "failed", failures)
	return nil
}

func (s *SlackNotifier) sendMessage(l model.Listing) error {
	body, err := json.Marshal(buildPayload(l))
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	status, retryAfter, err := s.post(body)
	if err != nil {
		return err
	}

	if status == http.StatusTooManyRequests {
		if retryAfter <= 0 {
			retryAfter = time.Second
		}
		s.logger.Warn("slack rate limited, retrying", "retry_after", retryAfter)
		time.Sleep(retryAfter)

		status, _, err = s.post(body)
		if err != nil {
			return fmt.Errorf("retry: %w", err)
		}
		if status != http.StatusOK {
			return fmt.Errorf("slack returned %d on retry", status)
		}
		s.logger.Info("slack message sent", "company", l.Company, "title", l.Title, "retried", true)
		return nil
	}

	if status != http.StatusOK {
		return fmt.Errorf("slack returned %d", status)
	}
	s.logger.Info("slack message sent", "company", l.Company, "title", l.Title)
	return nil
}

func (s *SlackNotifier) post(body []byte) (int, time.Duration, error) {
	resp, err := s.httpClient.Post(s.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, 0, fmt.Errorf("post to slack: %w", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, model.ParseRetryAfter(resp.Header.Get("Retry-After")), nil
}

// Block Kit payload types.

type slackPayload struct {
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type     string         `json:"type"`
	Text     *slackText     `json:"text,omitempty"`
	Fields   []slackText    `json:"fields,omitempty"`
	Elements []slackElement `json:"elements,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type slackElement struct {
	Type  string    `json:"type"`
	Text  slackText `json:"text"`
	URL   string    `json:"url"`
	Style string    `json:"style"`
}

// SendTestMessage sends a dummy listing to verify the integration works.
func SendTestMessage(n model.Notifier) error {
	a := model.DefaultAnalysis()
	a.MatchScore = 99
	a.OverallRecommendation = model.RecommendStrongly
	a.SummaryForCandidate = "This is a test notification from jobscout."
	a.KeyStrengths = []string{"Integration verified"}

	test := model.Listing{
		ID:             "test-001",
		Title:          "Test Notification",
		Company:        "jobscout",
		Location:       "Everywhere",
		Link:           "https://example.com/jobs/test",
		Source:         "test",
		JobType:        model.JobTypeRemote,
		DiscoveredAt:   time.Now(),
		Status:         model.StatusNew,
		RelevanceScore: a.MatchScore,
		Analysis:       &a,
	}
	return n.Notify([]model.Listing{test})
}

// Slack rejects plain_text headers longer than 150 characters.
const maxHeaderLen = 150

func buildPayload(l model.Listing) slackPayload {
	header := fmt.Sprintf("🎯 %d · %s: %s", l.RelevanceScore, l.Company, l.Title)
	if r := []rune(header); len(r) > maxHeaderLen {
		header = string(r[:maxHeaderLen-1]) + "…"
	}

	recommendation := "n/a"
	if l.Analysis != nil {
		recommendation = l.Analysis.OverallRecommendation
	}

	blocks := []slackBlock{
		{
			Type: "header",
			Text: &slackText{Type: "plain_text", Text: header},
		},
		{
			Type: "section",
			Fields: []slackText{
				{Type: "mrkdwn", Text: "*Company:*\n" + l.Company},
				{Type: "mrkdwn", Text: "*Location:*\n" + l.Location},
			},
		},
		{
			Type: "section",
			Fields: []slackText{
				{Type: "mrkdwn", Text: "*Source:*\n" + l.Source},
				{Type: "mrkdwn", Text: "*Recommendation:*\n" + recommendation},
			},
		},
	}

	if a := l.Analysis; a != nil && !a.Failed() {
		var b strings.Builder
		b.WriteString(a.SummaryForCandidate)
		for i, s := range a.KeyStrengths {
			if i == 3 {
				break
			}
			b.WriteString("\n• " + s)
		}
		blocks = append(blocks, slackBlock{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: b.String()},
		})
	}

	blocks = append(blocks,
		slackBlock{
			Type: "actions",
			Elements: []slackElement{
				{
					Type:  "button",
					Text:  slackText{Type: "plain_text", Text: "Apply Now"},
					URL:   l.ApplyURL(),
					Style: "primary",
				},
			},
		},
		slackBlock{Type: "divider"},
	)

	return slackPayload{Blocks: blocks}
}
