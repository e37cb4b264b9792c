package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/amishk599/jobscout/internal/model"
)

// CSVStore keeps every listing in memory and rewrites the whole file on each
// change. The file is replaced atomically so readers never see a torn write.
type CSVStore struct {
	path   string
	logger *slog.Logger
	now    func() time.Time

	mu    sync.Mutex
	rows  []model.Listing
	index map[string]int
}

// NewCSVStore opens the listing file at path. A missing, empty or unreadable
// file yields an empty store; nothing is written until the first change.
func NewCSVStore(path string, logger *slog.Logger) *CSVStore {
	s := &CSVStore{
		path:   path,
		logger: logger,
		now:    time.Now,
	}
	s.Load()
	return s
}

// Load (re)reads the backing file and returns a copy of its rows.
func (s *CSVStore) Load() []model.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := readCSV(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.logger.Info("listing store not found, starting empty", "path", s.path)
		rows = nil
	case errors.Is(err, io.EOF):
		s.logger.Warn("listing store is empty", "path", s.path)
		rows = nil
	case err != nil:
		aside := s.path + ".corrupt"
		s.logger.Error("listing store unreadable, starting empty",
			"path", s.path,
			"moved_to", aside,
			"error", err,
		)
		if rerr := os.Rename(s.path, aside); rerr != nil {
			s.logger.Warn("could not move unreadable store aside", "error", rerr)
		}
		rows = nil
	default:
		s.logger.Info("listing store loaded", "path", s.path, "rows", len(rows))
	}

	s.rows = rows
	s.reindex()
	return slices.Clone(s.rows)
}

// ReadCSV returns the listings in the file at path without modifying it. A
// missing or empty file yields no listings; an unreadable one is an error.
func ReadCSV(path string) ([]model.Listing, error) {
	rows, err := readCSV(path)
	if errors.Is(err, os.ErrNotExist) || errors.Is(err, io.EOF) {
		return nil, nil
	}
	return rows, err
}

// IsDuplicate reports whether the listing is already stored. Listings carry an
// ID by the time the pipeline asks; the title/company/source comparison only
// applies to ID-less listings handed in from elsewhere.
func (s *CSVStore) IsDuplicate(l model.Listing) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l.ID != "" {
		_, ok := s.index[l.ID]
		return ok, nil
	}
	for _, r := range s.rows {
		if r.Title == l.Title && r.Company == l.Company && r.Source == l.Source {
			return true, nil
		}
	}
	return false, nil
}

// Upsert inserts the listing or replaces the stored row with the same ID, then
// persists the table.
func (s *CSVStore) Upsert(l model.Listing) error {
	if l.ID == "" {
		return errors.New("upsert: listing has no id")
	}
	if l.ApplicationLink == "" {
		l.ApplicationLink = l.Link
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[l.ID]; ok {
		prev := s.rows[i]
		s.rows[i] = l
		if err := s.persist(); err != nil {
			s.rows[i] = prev
			return err
		}
		return nil
	}

	s.rows = append(s.rows, l)
	if err := s.persist(); err != nil {
		s.rows = s.rows[:len(s.rows)-1]
		return err
	}
	s.index[l.ID] = len(s.rows) - 1
	return nil
}

// MarkApplied sets the listing's status to applied and stamps the time. It
// returns false without touching the file when the ID is unknown.
func (s *CSVStore) MarkApplied(id string) (bool, error) {
	return s.update(id, func(l *model.Listing) {
		now := s.now()
		l.Status = model.StatusApplied
		l.AppliedAt = &now
	})
}

// MarkReviewed sets the listing's status to reviewed.
func (s *CSVStore) MarkReviewed(id string) (bool, error) {
	return s.update(id, func(l *model.Listing) {
		l.Status = model.StatusReviewed
	})
}

func (s *CSVStore) update(id string, fn func(*model.Listing)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		s.logger.Error("listing not found", "listing_id", id)
		return false, nil
	}

	prev := s.rows[i]
	fn(&s.rows[i])
	if err := s.persist(); err != nil {
		s.rows[i] = prev
		return false, err
	}

	l := s.rows[i]
	s.logger.Info("listing updated",
		"listing_id", id,
		"status", l.Status,
		"title", l.Title,
		"company", l.Company,
		"link", l.ApplyURL(),
	)
	return true, nil
}

// Get returns the stored listing with the given ID.
func (s *CSVStore) Get(id string) (model.Listing, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return model.Listing{}, false, nil
	}
	return s.rows[i], true, nil
}

// All returns every stored listing in file order.
func (s *CSVStore) All() ([]model.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.rows), nil
}

// Close is a no-op; every change is already on disk.
func (s *CSVStore) Close() error { return nil }

func (s *CSVStore) reindex() {
	s.index = make(map[string]int, len(s.rows))
	for i, r := range s.rows {
		if r.ID != "" {
			s.index[r.ID] = i
		}
	}
}

// persist writes the table to a temp file beside the target and renames it
// into place.
func (s *CSVStore) persist() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp store file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := writeCSV(tmp, s.rows); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp store file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}

func writeCSV(w io.Writer, rows []model.Listing) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, l := range rows {
		rec, err := encodeRow(l)
		if err != nil {
			return fmt.Errorf("encoding listing %s: %w", l.ID, err)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// readCSV returns io.EOF for an empty file and os.ErrNotExist (wrapped) when
// the file is missing. Columns are matched by header name.
func readCSV(path string) ([]model.Listing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Short or long rows are tolerated; missing trailing cells read as empty.
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, err
	}

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	rows := make([]model.Listing, 0, len(records))
	for _, rec := range records {
		cells := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(rec) {
				cells[name] = rec[i]
			}
		}
		rows = append(rows, decodeRow(cells))
	}
	return rows, nil
}
