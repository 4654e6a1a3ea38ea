// Package store persists fetched market tables and built panels as CSV
// files under a data directory. Files are written whole and atomically
// replaced so a crashed run never leaves a truncated table behind.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ydereck/nembid/core/model"
	"github.com/ydereck/nembid/core/panel"
)

// Store reads and writes market tables rooted at a single directory.
type Store struct {
	dir string
}

// New creates the data directory if needed and returns a store rooted there.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("store: empty data directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the root directory of the store.
func (s *Store) Dir() string { return s.dir }

// Path resolves a table file name inside the store.
func (s *Store) Path(name string) string { return filepath.Join(s.dir, name) }

func (s *Store) write(name string, fn func(*os.File) error) error {
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := fn(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("store: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.Path(name)); err != nil {
		return fmt.Errorf("store: write %s: %w", name, err)
	}
	return nil
}

// SaveDispatch writes dispatch records to name.
func (s *Store) SaveDispatch(name string, recs []model.DispatchRecord) error {
	return s.write(name, func(f *os.File) error { return WriteDispatch(f, recs) })
}

// LoadDispatch reads dispatch records from name.
func (s *Store) LoadDispatch(name string) ([]model.DispatchRecord, error) {
	f, err := os.Open(s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	defer f.Close()
	return ReadDispatch(f)
}

// SavePrices writes price records to name.
func (s *Store) SavePrices(name string, recs []model.PriceRecord) error {
	return s.write(name, func(f *os.File) error { return WritePrices(f, recs) })
}

// LoadPrices reads price records from name.
func (s *Store) LoadPrices(name string) ([]model.PriceRecord, error) {
	f, err := os.Open(s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	defer f.Close()
	return ReadPrices(f)
}

// SaveBids writes bid records to name.
func (s *Store) SaveBids(name string, recs []model.BidRecord) error {
	return s.write(name, func(f *os.File) error { return WriteBids(f, recs) })
}

// LoadBids reads bid records from name.
func (s *Store) LoadBids(name string) ([]model.BidRecord, error) {
	f, err := os.Open(s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	defer f.Close()
	return ReadBids(f)
}

// LoadBidsGlob reads every bid file matching pattern (relative to the store
// root), concatenates and deduplicates them. Monthly fetches overlap on the
// boundary interval, so the merge is revision-aware.
func (s *Store) LoadBidsGlob(pattern string) ([]model.BidRecord, error) {
	names, err := filepath.Glob(s.Path(pattern))
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("store: no files match %s", pattern)
	}
	sort.Strings(names)
	var all []model.BidRecord
	for _, name := range names {
		recs, err := s.LoadBids(filepath.Base(name))
		if err != nil {
			return nil, err
		}
		all = append(all, recs...)
	}
	return model.DedupBids(all), nil
}

// SavePanel writes panel rows to name.
func (s *Store) SavePanel(name string, rows []panel.Row) error {
	return s.write(name, func(f *os.File) error { return WritePanel(f, rows) })
}

// LoadPanel reads panel rows from name.
func (s *Store) LoadPanel(name string) ([]panel.Row, error) {
	f, err := os.Open(s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	defer f.Close()
	return ReadPanel(f)
}
