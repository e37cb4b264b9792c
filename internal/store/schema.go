package store

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/amishk599/jobscout/internal/model"
)

// Columns is the canonical column order of the listing table. Files written by
// older versions may lack some of these; missing columns load as empty values.
var Columns = []string{
	"job_id",
	"title",
	"company",
	"location",
	"description",
	"requirements",
	"salary_range",
	"application_link",
	"link",
	"source",
	"discovery_date",
	"status",
	"relevance_score",
	"gemini_analysis",
	"applied_date",
	"response_received",
	"tags",
	"date_posted",
	"job_type",
}

// timeLayouts are tried in order when reading timestamps. The first one is
// also the write format.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02",
}

// encodeRow flattens a listing into cells ordered like Columns.
func encodeRow(l model.Listing) ([]string, error) {
	analysis := ""
	if l.Analysis != nil {
		b, err := json.Marshal(l.Analysis)
		if err != nil {
			return nil, err
		}
		analysis = string(b)
	}

	tags := ""
	if l.Tags != nil {
		b, err := json.Marshal(l.Tags)
		if err != nil {
			return nil, err
		}
		tags = string(b)
	}

	applied := ""
	if l.AppliedAt != nil {
		applied = formatTime(*l.AppliedAt)
	}

	return []string{
		l.ID,
		l.Title,
		l.Company,
		l.Location,
		l.Description,
		l.Requirements,
		l.SalaryRange,
		l.ApplicationLink,
		l.Link,
		l.Source,
		formatTime(l.DiscoveredAt),
		string(l.Status),
		strconv.Itoa(l.RelevanceScore),
		analysis,
		applied,
		l.Response,
		tags,
		l.DatePosted,
		string(l.JobType),
	}, nil
}

// decodeRow rebuilds a listing from a column-name keyed record. Cells that
// cannot be interpreted fall back to zero values rather than failing the row.
func decodeRow(rec map[string]string) model.Listing {
	l := model.Listing{
		ID:              rec["job_id"],
		Title:           rec["title"],
		Company:         rec["company"],
		Location:        rec["location"],
		Description:     rec["description"],
		Requirements:    rec["requirements"],
		SalaryRange:     rec["salary_range"],
		ApplicationLink: rec["application_link"],
		Link:            rec["link"],
		Source:          rec["source"],
		DiscoveredAt:    parseTime(rec["discovery_date"]),
		Status:          model.Status(rec["status"]),
		RelevanceScore:  parseScore(rec["relevance_score"]),
		Response:        rec["response_received"],
		Tags:            parseTags(rec["tags"]),
		DatePosted:      rec["date_posted"],
		JobType:         model.JobType(rec["job_type"]),
	}

	if cell := strings.TrimSpace(rec["gemini_analysis"]); cell != "" {
		var a model.Analysis
		if err := json.Unmarshal([]byte(cell), &a); err != nil {
			a = model.Analysis{Error: "stored analysis is not valid JSON", RawText: cell}
		}
		l.Analysis = &a
	}

	if t := parseTime(rec["applied_date"]); !t.IsZero() {
		l.AppliedAt = &t
	}
	return l
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayouts[0])
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parseScore accepts integers and the "85.0" form spreadsheets tend to write.
func parseScore(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// parseTags reads a JSON array, falling back to a loose "[a, 'b']" list.
func parseTags(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err == nil {
		return tags
	}

	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	tags = []string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.Trim(strings.TrimSpace(part), `'"`)
		if part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}
