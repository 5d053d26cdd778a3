package maintenance

import (
	"errors"
	"sort"
	"sync"
	"time"
)

// Record is one completed maintenance task for an asset.
type Record struct {
	AssetID     string    `json:"asset_id"`
	CompletedAt time.Time `json:"completed_at"`
	Notes       string    `json:"notes,omitempty"`
}

// Store provides maintenance-completed timestamps. The engine reads them for
// interval math and writes through Complete; it never owns the underlying
// schedule data.
type Store interface {
	LastCompleted(assetID string) (time.Time, bool)
	Complete(assetID string, at time.Time, notes string) error
	History(assetID string) []Record
}

// MemoryStore is the in-process Store used by the demo engine and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]Record
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]Record)}
}

// LastCompleted returns the most recent completion for an asset.
func (s *MemoryStore) LastCompleted(assetID string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := s.records[assetID]
	if len(recs) == 0 {
		return time.Time{}, false
	}
	return recs[len(recs)-1].CompletedAt, true
}

// Complete records a finished maintenance task.
func (s *MemoryStore) Complete(assetID string, at time.Time, notes string) error {
	if assetID == "" {
		return errors.New("maintenance: empty asset id")
	}
	if at.IsZero() {
		return errors.New("maintenance: zero completion time")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[assetID] = append(s.records[assetID], Record{AssetID: assetID, CompletedAt: at, Notes: notes})
	sort.Slice(s.records[assetID], func(i, j int) bool {
		return s.records[assetID][i].CompletedAt.Before(s.records[assetID][j].CompletedAt)
	})
	return nil
}

// History returns the completion records for an asset, oldest first.
func (s *MemoryStore) History(assetID string) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := s.records[assetID]
	out := make([]Record, len(recs))
	copy(out, recs)
	return out
}
