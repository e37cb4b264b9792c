package notifier

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/amishk599/jobscout/internal/model"
)

func TestLogNotifier_Notify_zeroListings(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))
	if err := n.Notify(nil); err != nil {
		t.Errorf("Notify(nil) = %v, want nil", err)
	}
	if err := n.Notify([]model.Listing{}); err != nil {
		t.Errorf("Notify([]) = %v, want nil", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestLogNotifier_Notify_logsEachListing(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

	listings := []model.Listing{
		sampleListing("Research Intern", "Acme"),
		sampleListing("ML Engineer", "Beta"),
	}
	if err := n.Notify(listings); err != nil {
		t.Fatalf("Notify = %v, want nil", err)
	}

	out := buf.String()
	if got := strings.Count(out, "strong match"); got != 2 {
		t.Errorf("expected 2 log lines, got %d in %q", got, out)
	}
	for _, want := range []string{"company=Acme", "score=88", `recommendation="Recommend Apply"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
}
