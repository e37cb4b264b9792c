// Package report renders stored listings into a Markdown application report.
package report

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/amishk599/jobscout/internal/filter"
	"github.com/amishk599/jobscout/internal/model"
)

//go:embed templates/report.md.tmpl
var reportTemplateRaw string

var reportTemplate = template.Must(template.New("report").Parse(reportTemplateRaw))

type entry struct {
	model.Listing
	DiscoveryDate string
	Score         int
}

type document struct {
	GeneratedOn string
	Total       int
	MinScore    int
	Listings    []entry
}

// Write renders the report for all stored listings. Only reportable listings
// (see filter.Reportable) are detailed, best first.
func Write(w io.Writer, all []model.Listing, minScore int, now time.Time) error {
	selected := filter.Reportable(all, minScore)
	filter.SortForReport(selected)

	doc := document{
		GeneratedOn: now.Format("2006-01-02 15:04:05"),
		Total:       len(all),
		MinScore:    minScore,
		Listings:    make([]entry, 0, len(selected)),
	}
	for _, l := range selected {
		e := entry{Listing: l, DiscoveryDate: "N/A", Score: l.RelevanceScore}
		if !l.DiscoveredAt.IsZero() {
			e.DiscoveryDate = l.DiscoveredAt.Local().Format("2006-01-02 15:04")
		}
		if e.Status == "" {
			e.Status = "N/A"
		}
		doc.Listings = append(doc.Listings, e)
	}

	if err := reportTemplate.Execute(w, doc); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// WriteFile renders the report to path, replacing any previous report.
func WriteFile(path string, all []model.Listing, minScore int, now time.Time) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, all, minScore, now); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close report file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}
