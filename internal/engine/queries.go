package engine

import (
	"errors"
	"time"

	alerts "hvacfleet/internal/alerts/domain"
	catalog "hvacfleet/internal/catalog/domain"
	telemetry "hvacfleet/internal/telemetry/domain"
)

// Assets returns a snapshot of every asset, detached from the records the
// tick loop mutates.
func (e *Engine) Assets() []*catalog.Asset {
	e.mu.Lock()
	defer e.mu.Unlock()
	live := e.catalog.Assets()
	out := make([]*catalog.Asset, len(live))
	for i, a := range live {
		out[i] = snapshotAsset(a)
	}
	return out
}

// Sensors returns a snapshot of every sensor, detached from the records the
// tick loop mutates.
func (e *Engine) Sensors() []*catalog.Sensor {
	e.mu.Lock()
	defer e.mu.Unlock()
	live := e.catalog.Sensors()
	out := make([]*catalog.Sensor, len(live))
	for i, s := range live {
		out[i] = snapshotSensor(s)
	}
	return out
}

// Alerts returns a snapshot of the full alert history, most recent first.
func (e *Engine) Alerts() []*alerts.Alert {
	e.mu.Lock()
	defer e.mu.Unlock()
	live := e.alertMem.All()
	out := make([]*alerts.Alert, len(live))
	for i, a := range live {
		cp := *a
		out[i] = &cp
	}
	return out
}

// snapshotAsset copies an asset record. Specifications is fixed at catalog
// initialization and safe to share.
func snapshotAsset(a *catalog.Asset) *catalog.Asset {
	cp := *a
	return &cp
}

// snapshotSensor copies a sensor record including its last reading, which is
// replaced every tick. Min, Max and Setpoint are fixed at initialization.
func snapshotSensor(s *catalog.Sensor) *catalog.Sensor {
	cp := *s
	if s.LastReading != nil {
		r := *s.LastReading
		cp.LastReading = &r
	}
	return &cp
}

// TelemetryData returns the stream for one sensor: the full buffer when r is
// nil, otherwise points with start <= ts <= end in timestamp order.
func (e *Engine) TelemetryData(sensorID string, r *telemetry.Range) ([]telemetry.Point, error) {
	if _, err := e.catalog.Sensor(sensorID); err != nil {
		return nil, err
	}
	if r == nil {
		return e.telemetry.Series(sensorID), nil
	}
	return e.telemetry.Query(sensorID, *r), nil
}

// AssetTelemetry returns telemetry for one asset grouped by sensor kind,
// optionally filtered to the given kinds and range.
func (e *Engine) AssetTelemetry(assetID string, kinds []catalog.SensorKind, r *telemetry.Range) (map[catalog.SensorKind][]telemetry.Point, error) {
	if _, err := e.catalog.Asset(assetID); err != nil {
		return nil, err
	}
	wanted := make(map[catalog.SensorKind]bool, len(kinds))
	for _, k := range kinds {
		wanted[k] = true
	}
	out := make(map[catalog.SensorKind][]telemetry.Point)
	for _, s := range e.catalog.SensorsByAsset(assetID) {
		if len(wanted) > 0 && !wanted[s.Kind] {
			continue
		}
		var points []telemetry.Point
		if r == nil {
			points = e.telemetry.Series(s.ID)
		} else {
			points = e.telemetry.Query(s.ID, *r)
		}
		out[s.Kind] = append(out[s.Kind], points...)
	}
	return out, nil
}

// SetScenario swaps the active scenario; unknown ids are ignored and the
// previous scenario stays active.
func (e *Engine) SetScenario(id string) {
	if e.scenarios.Activate(id) {
		e.logger.Printf("scenario activated: %s", id)
		return
	}
	e.logger.Printf("scenario ignored, unknown id: %s", id)
}

// ActiveScenario returns the id of the active scenario.
func (e *Engine) ActiveScenario() string { return e.scenarios.Active().ID }

// ScenarioIDs lists the known scenario ids.
func (e *Engine) ScenarioIDs() []string { return e.scenarios.IDs() }

// AcknowledgeAlert acknowledges one alert by id and returns its state.
func (e *Engine) AcknowledgeAlert(id string) (*alerts.Alert, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	a, err := e.alertSvc.Acknowledge(id)
	if err != nil {
		return nil, err
	}
	cp := *a
	return &cp, nil
}

// ResolveAlert resolves one alert by id and returns its state.
func (e *Engine) ResolveAlert(id string) (*alerts.Alert, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	a, err := e.alertSvc.Resolve(id)
	if err != nil {
		return nil, err
	}
	cp := *a
	return &cp, nil
}

// CompleteMaintenance records a finished maintenance task and refreshes the
// asset's last-maintenance timestamp.
func (e *Engine) CompleteMaintenance(assetID string, at time.Time, notes string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	a, err := e.catalog.Asset(assetID)
	if err != nil {
		return err
	}
	if err := e.maint.Complete(assetID, at, notes); err != nil {
		return err
	}
	a.LastMaintenance = at
	return nil
}

// StartLiveUpdates begins the recurring tick loop. Ticks never overlap: the
// handler is synchronous and serialized under the engine mutex.
func (e *Engine) StartLiveUpdates(period time.Duration) error {
	if period <= 0 {
		return errors.New("engine: period must be positive")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return errors.New("engine: live updates already running")
	}
	e.ticker = time.NewTicker(period)
	e.quit = make(chan struct{})
	e.running = true
	go func(ticker *time.Ticker, quit chan struct{}) {
		for {
			select {
			case <-quit:
				return
			case <-ticker.C:
				e.Tick(e.clock.Now())
			}
		}
	}(e.ticker, e.quit)
	e.logger.Printf("live updates started, period %s", period)
	return nil
}

// Stop halts the tick loop. Safe to call when not running.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	e.ticker.Stop()
	close(e.quit)
	e.running = false
	e.logger.Printf("live updates stopped")
}
