package store

import "github.com/amishk599/jobscout/internal/model"

// NopStore is a no-op store used in dry-run mode. Nothing is ever stored, so
// every listing appears new on each run.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) IsDuplicate(l model.Listing) (bool, error)  { return false, nil }
func (s *NopStore) Upsert(l model.Listing) error               { return nil }
func (s *NopStore) MarkApplied(id string) (bool, error)        { return false, nil }
func (s *NopStore) MarkReviewed(id string) (bool, error)       { return false, nil }
func (s *NopStore) Get(id string) (model.Listing, bool, error) { return model.Listing{}, false, nil }
func (s *NopStore) All() ([]model.Listing, error)              { return nil, nil }
func (s *NopStore) Close() error                               { return nil }
