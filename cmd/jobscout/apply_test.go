package main

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/amishk599/jobscout/internal/model"
	"github.com/amishk599/jobscout/internal/store"
)

func TestApplyGuardEnforcesDailyLimit(t *testing.T) {
	st := store.NewCSVStore(filepath.Join(t.TempDir(), "jobs.csv"), silentLogger())
	for _, id := range []string{"a", "b", "c"} {
		if err := st.Upsert(model.Listing{ID: id, Title: id, Link: "https://example.com/" + id, Status: model.StatusNew}); err != nil {
			t.Fatalf("Upsert %s: %v", id, err)
		}
	}

	guard := &applyGuard{store: st, maxPerDay: 2, now: time.Now}
	for _, id := range []string{"a", "b"} {
		if ok, err := guard.MarkApplied(id); err != nil || !ok {
			t.Fatalf("MarkApplied(%s) = %v, %v", id, ok, err)
		}
	}

	if _, err := guard.MarkApplied("c"); !errors.Is(err, errDailyLimit) {
		t.Fatalf("third MarkApplied error = %v, want errDailyLimit", err)
	}
	if l, _, _ := st.Get("c"); l.Status != model.StatusNew {
		t.Errorf("c status = %q, want unchanged", l.Status)
	}

	guard.force = true
	if ok, err := guard.MarkApplied("c"); err != nil || !ok {
		t.Fatalf("forced MarkApplied = %v, %v", ok, err)
	}
}

func TestApplyGuardZeroMeansUnlimited(t *testing.T) {
	st := store.NewCSVStore(filepath.Join(t.TempDir(), "jobs.csv"), silentLogger())
	if err := st.Upsert(model.Listing{ID: "a", Link: "https://example.com/a"}); err != nil {
		t.Fatal(err)
	}
	guard := &applyGuard{store: st, now: time.Now}
	if ok, err := guard.MarkApplied("a"); err != nil || !ok {
		t.Fatalf("MarkApplied = %v, %v", ok, err)
	}
}

func TestClip(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"Machine Learning Intern", 10, "Machine L…"},
		{"Ingénieur stagiaire", 5, "Ingé…"},
	}
	for _, tt := range tests {
		if got := clip(tt.in, tt.n); got != tt.want {
			t.Errorf("clip(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
