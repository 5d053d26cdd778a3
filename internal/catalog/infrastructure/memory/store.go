package memory

import (
	"sync"

	catalog "hvacfleet/internal/catalog/domain"
)

// Store is the in-memory asset/sensor registry. It hands out live references
// for use under the engine mutex; readers that escape that mutex must take
// detached copies first. The lock here only guards the index structures,
// which never change after New.
type Store struct {
	mu             sync.RWMutex
	assets         []*catalog.Asset
	sensors        []*catalog.Sensor
	assetByID      map[string]*catalog.Asset
	sensorByID     map[string]*catalog.Sensor
	sensorsByAsset map[string][]*catalog.Sensor
}

// NewStore constructs a registry from seed data.
func NewStore(assets []*catalog.Asset, sensors []*catalog.Sensor) *Store {
	s := &Store{
		assets:         assets,
		sensors:        sensors,
		assetByID:      make(map[string]*catalog.Asset, len(assets)),
		sensorByID:     make(map[string]*catalog.Sensor, len(sensors)),
		sensorsByAsset: make(map[string][]*catalog.Sensor),
	}
	for _, a := range assets {
		s.assetByID[a.ID] = a
	}
	for _, sn := range sensors {
		s.sensorByID[sn.ID] = sn
		s.sensorsByAsset[sn.AssetID] = append(s.sensorsByAsset[sn.AssetID], sn)
	}
	return s
}

// Assets returns live references to every asset.
func (s *Store) Assets() []*catalog.Asset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*catalog.Asset, len(s.assets))
	copy(out, s.assets)
	return out
}

// Sensors returns live references to every sensor.
func (s *Store) Sensors() []*catalog.Sensor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*catalog.Sensor, len(s.sensors))
	copy(out, s.sensors)
	return out
}

// Asset looks up one asset by id.
func (s *Store) Asset(id string) (*catalog.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a := s.assetByID[id]
	if a == nil {
		return nil, catalog.ErrAssetNotFound
	}
	return a, nil
}

// Sensor looks up one sensor by id.
func (s *Store) Sensor(id string) (*catalog.Sensor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sn := s.sensorByID[id]
	if sn == nil {
		return nil, catalog.ErrSensorNotFound
	}
	return sn, nil
}

// SensorsByAsset returns live references to the sensors of one asset.
func (s *Store) SensorsByAsset(assetID string) []*catalog.Sensor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.sensorsByAsset[assetID]
	out := make([]*catalog.Sensor, len(list))
	copy(out, list)
	return out
}
