package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amishk599/jobscout/internal/model"
	"github.com/amishk599/jobscout/internal/store"
)

func TestReportToStdoutHasNoLogLines(t *testing.T) {
	dir := t.TempDir()
	storePath := filepath.Join(dir, "jobs.csv")
	st := store.NewCSVStore(storePath, silentLogger())
	if err := st.Upsert(model.Listing{ID: "a", Title: "NLP Intern", Company: "Acme", Link: "https://example.com/a", Status: model.StatusApplied}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	cfgFile := filepath.Join(dir, "config.yaml")
	cfgYAML := fmt.Sprintf("keywords:\n  - NLP\nai:\n  enabled: false\nstore:\n  backend: csv\n  path: %s\n", storePath)
	if err := os.WriteFile(cfgFile, []byte(cfgYAML), 0644); err != nil {
		t.Fatal(err)
	}

	prevCfg, prevOut, prevMin := cfgPath, reportOutput, reportMinScore
	cfgPath, reportOutput, reportMinScore = cfgFile, "-", -1
	defer func() { cfgPath, reportOutput, reportMinScore = prevCfg, prevOut, prevMin }()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	stdout := os.Stdout
	os.Stdout = w
	done := make(chan string)
	go func() {
		b, _ := io.ReadAll(r)
		done <- string(b)
	}()

	runErr := runReport(reportCmd, nil)
	os.Stdout = stdout
	w.Close()
	out := <-done

	if runErr != nil {
		t.Fatalf("runReport: %v", runErr)
	}
	if !strings.HasPrefix(out, "# Job Application Report") {
		t.Fatalf("stdout should start with the report heading, got:\n%s", out)
	}
	if strings.Contains(out, "level=") {
		t.Errorf("log output leaked into the report:\n%s", out)
	}
	if !strings.Contains(out, "NLP Intern") {
		t.Errorf("report is missing the applied listing:\n%s", out)
	}
}
