package memory

import (
	"sync"
	"time"

	telemetry "hvacfleet/internal/telemetry/domain"
)

// Store keeps per-sensor telemetry in memory. Each sensor owns two segments
// of the same logical stream: a dense history buffer written once by
// backfill, and a rolling live window appended every tick and trimmed to the
// retention horizon. Queries see the concatenation of both.
type Store struct {
	mu      sync.RWMutex
	history map[string][]telemetry.Point
	live    map[string][]telemetry.Point
}

// NewStore constructs an empty telemetry store.
func NewStore() *Store {
	return &Store{
		history: make(map[string][]telemetry.Point),
		live:    make(map[string][]telemetry.Point),
	}
}

// AppendHistory bulk-appends backfilled points for one sensor. Points are
// expected in timestamp order; backfill produces them that way.
func (s *Store) AppendHistory(sensorID string, points []telemetry.Point) {
	if len(points) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[sensorID] = append(s.history[sensorID], points...)
}

// AppendLive appends one live point for its sensor.
func (s *Store) AppendLive(p telemetry.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live[p.SensorID] = append(s.live[p.SensorID], p)
}

// TrimLiveBefore drops live points with TS before the cutoff instant.
// The history buffer is never trimmed.
func (s *Store) TrimLiveBefore(cutoff time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, points := range s.live {
		idx := 0
		for idx < len(points) && points[idx].TS.Before(cutoff) {
			idx++
		}
		if idx > 0 {
			s.live[id] = append([]telemetry.Point(nil), points[idx:]...)
		}
	}
}

// Series returns the full stream for one sensor, history first.
func (s *Store) Series(sensorID string) []telemetry.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hist := s.history[sensorID]
	live := s.live[sensorID]
	out := make([]telemetry.Point, 0, len(hist)+len(live))
	out = append(out, hist...)
	out = append(out, live...)
	return out
}

// Query returns points inside the inclusive range, in timestamp order.
func (s *Store) Query(sensorID string, r telemetry.Range) []telemetry.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []telemetry.Point
	for _, seg := range [][]telemetry.Point{s.history[sensorID], s.live[sensorID]} {
		for _, p := range seg {
			if r.Contains(p.TS) {
				out = append(out, p)
			}
		}
	}
	return out
}
