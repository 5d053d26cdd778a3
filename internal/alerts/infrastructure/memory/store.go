package memory

import (
	"sync"
	"time"

	alerts "hvacfleet/internal/alerts/domain"
)

// Store is the in-memory alert list shared by the engine and its readers.
// Resolved alerts stay in the list; only the open index forgets them.
type Store struct {
	mu   sync.RWMutex
	list []*alerts.Alert
	open map[string]*alerts.Alert // keyed by alert id, unresolved only
}

// NewStore constructs an empty alert store.
func NewStore() *Store {
	return &Store{open: make(map[string]*alerts.Alert)}
}

// Insert appends a new alert and indexes it as open.
func (s *Store) Insert(a *alerts.Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = append(s.list, a)
	if !a.Resolved {
		s.open[a.ID] = a
	}
}

// FindOpen returns the unresolved alert with the given id, if any.
func (s *Store) FindOpen(id string) *alerts.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.open[id]
}

// Open returns every unresolved alert.
func (s *Store) Open() []*alerts.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*alerts.Alert, 0, len(s.open))
	for _, a := range s.open {
		out = append(out, a)
	}
	return out
}

// OpenByAsset returns unresolved alerts for one asset.
func (s *Store) OpenByAsset(assetID string) []*alerts.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*alerts.Alert
	for _, a := range s.open {
		if a.AssetID == assetID {
			out = append(out, a)
		}
	}
	return out
}

// Unacknowledged returns every record not yet acknowledged, resolved or not.
func (s *Store) Unacknowledged() []*alerts.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*alerts.Alert
	for _, a := range s.list {
		if !a.Acknowledged {
			out = append(out, a)
		}
	}
	return out
}

// All returns the full alert history, most recent first.
func (s *Store) All() []*alerts.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*alerts.Alert, len(s.list))
	for i, a := range s.list {
		out[len(s.list)-1-i] = a
	}
	return out
}

// Get returns the most recent alert with the given id.
func (s *Store) Get(id string) (*alerts.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.list) - 1; i >= 0; i-- {
		if s.list[i].ID == id {
			return s.list[i], nil
		}
	}
	return nil, alerts.ErrNotFound
}

// MarkResolved resolves an alert in place and drops it from the open index.
func (s *Store) MarkResolved(a *alerts.Alert, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.Resolved {
		return
	}
	a.Resolved = true
	a.ResolvedAt = at
	delete(s.open, a.ID)
}

// MarkAcknowledged acknowledges an alert in place.
func (s *Store) MarkAcknowledged(a *alerts.Alert, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.Acknowledged {
		return
	}
	a.Acknowledged = true
	a.AcknowledgedAt = at
}
