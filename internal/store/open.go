package store

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gofrs/flock"

	"github.com/amishk599/jobscout/internal/model"
)

// Backend names accepted by Open.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// ErrLocked is returned when another process holds the store.
var ErrLocked = errors.New("listing store is in use by another process")

// Store is a listing repository that must be closed when done.
type Store interface {
	model.ListingStore
	io.Closer
}

// Open takes an exclusive lock on path and opens the named backend there.
// Closing the returned store releases the lock.
func Open(backend, path string, logger *slog.Logger) (Store, error) {
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("locking %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrLocked)
	}

	var s Store
	switch backend {
	case BackendCSV, "":
		s = NewCSVStore(path, logger)
	case BackendSQLite:
		s, err = NewSQLiteStore(path, logger)
	default:
		err = fmt.Errorf("unknown store backend %q", backend)
	}
	if err != nil {
		lock.Unlock()
		return nil, err
	}
	return &lockedStore{Store: s, lock: lock}, nil
}

type lockedStore struct {
	Store
	lock *flock.Flock
}

func (s *lockedStore) Close() error {
	err := s.Store.Close()
	if uerr := s.lock.Unlock(); err == nil {
		err = uerr
	}
	return err
}
