// Package localstore persists portfolio records under the fixed client-side keys
// used by the creation, preview and edit flows.
//
// Every write replaces the whole value. There is no versioning and no
// concurrency check: two writers to the same key race and the last write wins.
package localstore

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/portfolio-generator/internal/types"
)

// Fixed storage keys.
const (
	KeyPortfolio     = "portfolioData"
	KeyEdit          = "portfolioEditData"
	KeyUserID        = "userId"
	publishedKeyBase = "portfolioData:"
)

// PublishedKey returns the key of the published copy for slug.
func PublishedKey(slug string) string {
	return publishedKeyBase + slug
}

// Backend is a string key-value store, such as browser local storage.
type Backend interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// Store reads and writes portfolio records through a Backend.
type Store struct {
	backend Backend
}

// New creates a Store.
func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// SavePortfolio writes the current working record.
func (s *Store) SavePortfolio(rec *types.PortfolioRecord) error {
	return s.putRecord(KeyPortfolio, rec)
}

// LoadPortfolio reads the current working record. It returns (nil, nil) when none is stored.
func (s *Store) LoadPortfolio() (*types.PortfolioRecord, error) {
	return s.getRecord(KeyPortfolio)
}

// UpdatePortfolio reads the working record, lets fn modify it and writes it back whole.
// A missing record is passed to fn as an empty one.
func (s *Store) UpdatePortfolio(fn func(*types.PortfolioRecord) error) error {
	rec, err := s.LoadPortfolio()
	if err != nil {
		return err
	}
	if rec == nil {
		rec = &types.PortfolioRecord{}
	}
	if err := fn(rec); err != nil {
		return err
	}
	return s.SavePortfolio(rec)
}

// StageEdit hands a record from the preview page to the edit page.
func (s *Store) StageEdit(rec *types.PortfolioRecord) error {
	return s.putRecord(KeyEdit, rec)
}

// TakeEdit returns the staged record and removes it. It returns (nil, nil) when nothing is staged.
func (s *Store) TakeEdit() (*types.PortfolioRecord, error) {
	rec, err := s.getRecord(KeyEdit)
	if err != nil || rec == nil {
		return rec, err
	}
	if err := s.backend.Remove(KeyEdit); err != nil {
		return nil, fmt.Errorf("failed to clear %s: %w", KeyEdit, err)
	}
	return rec, nil
}

// Publish stores a per-slug copy of rec.
func (s *Store) Publish(slug string, rec *types.PortfolioRecord) error {
	if slug == "" {
		return fmt.Errorf("empty slug")
	}
	return s.putRecord(PublishedKey(slug), rec)
}

// LoadPublished reads the copy published under slug, or (nil, nil).
func (s *Store) LoadPublished(slug string) (*types.PortfolioRecord, error) {
	return s.getRecord(PublishedKey(slug))
}

// SetUserID remembers the identifier last used for server lookups.
func (s *Store) SetUserID(id string) error {
	return s.backend.Set(KeyUserID, id)
}

// UserID returns the remembered identifier, or "" when none is stored.
func (s *Store) UserID() (string, error) {
	v, _, err := s.backend.Get(KeyUserID)
	return v, err
}

func (s *Store) putRecord(key string, rec *types.PortfolioRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.backend.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *Store) getRecord(key string) (*types.PortfolioRecord, error) {
	raw, ok, err := s.backend.Get(key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return nil, nil
	}
	var rec types.PortfolioRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return &rec, nil
}
