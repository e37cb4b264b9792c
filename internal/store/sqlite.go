package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amishk599/jobscout/internal/model"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps listings in a single SQLite table whose columns mirror the
// CSV layout.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, ensures the
// listings table exists and adds any canonical columns it lacks.
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS listings (job_id TEXT PRIMARY KEY)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating listings table: %w", err)
	}

	s := &SQLiteStore{db: db, logger: logger, now: time.Now}
	if err := s.addMissingColumns(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) addMissingColumns() error {
	rows, err := s.db.Query(`PRAGMA table_info(listings)`)
	if err != nil {
		return fmt.Errorf("reading listings schema: %w", err)
	}
	have := make(map[string]bool)
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			rows.Close()
			return fmt.Errorf("scanning listings schema: %w", err)
		}
		have[name] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reading listings schema: %w", err)
	}

	for _, col := range Columns {
		if have[col] {
			continue
		}
		stmt := fmt.Sprintf(`ALTER TABLE listings ADD COLUMN %s TEXT NOT NULL DEFAULT ''`, col)
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("adding column %s: %w", col, err)
		}
		s.logger.Debug("added listings column", "column", col)
	}
	return nil
}

// IsDuplicate reports whether the listing is already stored, by ID or, for
// ID-less listings, by title, company and source.
func (s *SQLiteStore) IsDuplicate(l model.Listing) (bool, error) {
	var (
		query = `SELECT 1 FROM listings WHERE job_id = ?`
		args  = []any{l.ID}
	)
	if l.ID == "" {
		query = `SELECT 1 FROM listings WHERE title = ? AND company = ? AND source = ? LIMIT 1`
		args = []any{l.Title, l.Company, l.Source}
	}

	var exists int
	err := s.db.QueryRow(query, args...).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking duplicate for %s: %w", l.ID, err)
	}
	return true, nil
}

// Upsert inserts the listing or overwrites every column of the stored row.
func (s *SQLiteStore) Upsert(l model.Listing) error {
	if l.ID == "" {
		return errors.New("upsert: listing has no id")
	}
	if l.ApplicationLink == "" {
		l.ApplicationLink = l.Link
	}

	rec, err := encodeRow(l)
	if err != nil {
		return fmt.Errorf("encoding listing %s: %w", l.ID, err)
	}
	args := make([]any, len(rec))
	for i, v := range rec {
		args[i] = v
	}

	if _, err := s.db.Exec(upsertSQL, args...); err != nil {
		return fmt.Errorf("upserting listing %s: %w", l.ID, err)
	}
	return nil
}

var upsertSQL = func() string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(Columns)), ", ")
	sets := make([]string, 0, len(Columns)-1)
	for _, c := range Columns[1:] {
		sets = append(sets, c+" = excluded."+c)
	}
	return fmt.Sprintf(
		`INSERT INTO listings (%s) VALUES (%s) ON CONFLICT(job_id) DO UPDATE SET %s`,
		strings.Join(Columns, ", "), placeholders, strings.Join(sets, ", "),
	)
}()

var selectSQL = `SELECT ` + strings.Join(Columns, ", ") + ` FROM listings`

// MarkApplied sets the listing's status to applied and stamps the time.
func (s *SQLiteStore) MarkApplied(id string) (bool, error) {
	return s.setStatus(id, model.StatusApplied, formatTime(s.now()))
}

// MarkReviewed sets the listing's status to reviewed.
func (s *SQLiteStore) MarkReviewed(id string) (bool, error) {
	return s.setStatus(id, model.StatusReviewed, "")
}

func (s *SQLiteStore) setStatus(id string, status model.Status, appliedAt string) (bool, error) {
	query := `UPDATE listings SET status = ? WHERE job_id = ?`
	args := []any{string(status), id}
	if appliedAt != "" {
		query = `UPDATE listings SET status = ?, applied_date = ? WHERE job_id = ?`
		args = []any{string(status), appliedAt, id}
	}

	res, err := s.db.Exec(query, args...)
	if err != nil {
		return false, fmt.Errorf("updating listing %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("updating listing %s: %w", id, err)
	}
	if n == 0 {
		s.logger.Error("listing not found", "listing_id", id)
		return false, nil
	}
	s.logger.Info("listing updated", "listing_id", id, "status", status)
	return true, nil
}

// Get returns the stored listing with the given ID.
func (s *SQLiteStore) Get(id string) (model.Listing, bool, error) {
	rows, err := s.db.Query(selectSQL+` WHERE job_id = ?`, id)
	if err != nil {
		return model.Listing{}, false, fmt.Errorf("loading listing %s: %w", id, err)
	}
	listings, err := scanListings(rows)
	if err != nil {
		return model.Listing{}, false, err
	}
	if len(listings) == 0 {
		return model.Listing{}, false, nil
	}
	return listings[0], true, nil
}

// Load returns every stored listing, or none if the table cannot be read.
func (s *SQLiteStore) Load() []model.Listing {
	listings, err := s.All()
	if err != nil {
		s.logger.Error("listing store unreadable, starting empty", "error", err)
		return nil
	}
	s.logger.Info("listing store loaded", "rows", len(listings))
	return listings
}

// All returns every stored listing in insertion order.
func (s *SQLiteStore) All() ([]model.Listing, error) {
	rows, err := s.db.Query(selectSQL + ` ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("loading listings: %w", err)
	}
	return scanListings(rows)
}

func scanListings(rows *sql.Rows) ([]model.Listing, error) {
	defer rows.Close()

	var out []model.Listing
	cells := make([]sql.NullString, len(Columns))
	dest := make([]any, len(Columns))
	for i := range cells {
		dest[i] = &cells[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning listing: %w", err)
		}
		rec := make(map[string]string, len(Columns))
		for i, c := range Columns {
			rec[c] = cells[i].String
		}
		out = append(out, decodeRow(rec))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating listings: %w", err)
	}
	return out, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
