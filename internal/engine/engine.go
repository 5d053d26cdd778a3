package engine

import (
	"errors"
	"log"
	"math"
	"sync"
	"time"

	alertapp "hvacfleet/internal/alerts/application"
	alerts "hvacfleet/internal/alerts/domain"
	alertmemory "hvacfleet/internal/alerts/infrastructure/memory"
	catalog "hvacfleet/internal/catalog/domain"
	catalogmemory "hvacfleet/internal/catalog/infrastructure/memory"
	"hvacfleet/internal/catalog/seed"
	"hvacfleet/internal/health"
	"hvacfleet/internal/maintenance"
	"hvacfleet/internal/observability/metrics"
	"hvacfleet/internal/scenario"
	telemetry "hvacfleet/internal/telemetry/domain"
	"hvacfleet/internal/telemetry/generator"
	telemetrymemory "hvacfleet/internal/telemetry/infrastructure/memory"
)

// Clock provides time.
type Clock interface {
	Now() time.Time
}

// Engine owns the full simulation state: catalog, telemetry buffers, scenario
// registry, alert list and the live-update loop. Mutations and catalog-facing
// reads are serialized under the engine mutex: the tick loop rewrites asset
// and sensor fields in place, so queries copy records out before releasing
// the lock. Multiple independent Engine instances can coexist.
type Engine struct {
	mu        sync.Mutex
	catalog   *catalogmemory.Store
	telemetry *telemetrymemory.Store
	scenarios *scenario.Registry
	gen       *generator.Generator
	scorer    *health.Scorer
	alertSvc  *alertapp.Service
	alertMem  *alertmemory.Store
	notifier  alertapp.Notifier
	maint     maintenance.Store
	clock     Clock
	logger    *log.Logger

	liveWindow   time.Duration
	backfillDays int
	seed         int64
	assets       []*catalog.Asset
	sensors      []*catalog.Sensor
	lastTick     time.Time

	ticker  *time.Ticker
	quit    chan struct{}
	running bool
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock assigns a clock.
func WithClock(clock Clock) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithLogger assigns a logger.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithSeed fixes the random source so generated telemetry is reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithCatalog replaces the default demo fleet.
func WithCatalog(assets []*catalog.Asset, sensors []*catalog.Sensor) Option {
	return func(e *Engine) {
		e.assets = assets
		e.sensors = sensors
	}
}

// WithMaintenanceStore wires an external maintenance task store.
func WithMaintenanceStore(store maintenance.Store) Option {
	return func(e *Engine) { e.maint = store }
}

// WithAlertNotifier forwards alert lifecycle events to a notifier.
func WithAlertNotifier(n alertapp.Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithLiveWindow overrides the 24h live retention window.
func WithLiveWindow(d time.Duration) Option {
	return func(e *Engine) { e.liveWindow = d }
}

// WithBackfillDays sets the historical horizon; degradation trends are
// measured from its start.
func WithBackfillDays(days int) Option {
	return func(e *Engine) { e.backfillDays = days }
}

// New constructs an engine with its catalog initialized and all components
// wired. The live loop is not started.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		clock:        systemClock{},
		liveWindow:   24 * time.Hour,
		backfillDays: 30,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.New(log.Writer(), "", log.LstdFlags)
	}
	if e.seed == 0 {
		e.seed = e.clock.Now().UnixNano()
	}

	now := e.clock.Now()
	if e.assets == nil {
		e.assets, e.sensors = seed.Fleet(now)
	}
	if len(e.assets) == 0 {
		return nil, errors.New("engine: empty catalog")
	}
	e.catalog = catalogmemory.NewStore(e.assets, e.sensors)
	e.telemetry = telemetrymemory.NewStore()
	e.scenarios = scenario.NewRegistry()
	e.scorer = health.NewScorer()

	if e.maint == nil {
		mem := maintenance.NewMemoryStore()
		for _, a := range e.assets {
			if !a.LastMaintenance.IsZero() {
				_ = mem.Complete(a.ID, a.LastMaintenance, "seeded")
			}
		}
		e.maint = mem
	}

	epoch := now.AddDate(0, 0, -e.backfillDays)
	e.gen = generator.New(epoch, e.seed, generator.WithAssetLookup(e.assetLookup))

	e.alertMem = alertmemory.NewStore()
	svcOpts := []alertapp.ServiceOption{alertapp.WithClock(e.clock)}
	if e.notifier != nil {
		svcOpts = append(svcOpts, alertapp.WithNotifier(e.notifier))
	}
	svc, err := alertapp.NewService(e.alertMem, svcOpts...)
	if err != nil {
		return nil, err
	}
	e.alertSvc = svc
	return e, nil
}

// assetLookup feeds the generator the owning asset's kind and a wear age
// factor derived from operating hours against expected life.
func (e *Engine) assetLookup(assetID string) (catalog.AssetKind, float64) {
	a, err := e.catalog.Asset(assetID)
	if err != nil {
		return "", 1
	}
	return a.Kind, 0.6 + a.OperatingHours/health.ExpectedLife(a.Kind)
}

// Backfill generates the dense historical series for every sensor from the
// configured horizon up to now, then runs one derivation pass so health and
// alerts reflect the restored state. Expected to run once at startup.
func (e *Engine) Backfill(interval time.Duration) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.clock.Now()
	from := now.AddDate(0, 0, -e.backfillDays)
	sc := e.scenarios.Active()
	total := 0
	for _, s := range e.catalog.Sensors() {
		points := e.gen.Backfill(s, from, now, interval, sc)
		if len(points) == 0 {
			continue
		}
		e.telemetry.AppendHistory(s.ID, points)
		last := points[len(points)-1]
		s.LastReading = &catalog.Reading{Value: last.Value, TS: last.TS, Quality: last.Quality}
		total += len(points)
	}
	e.deriveLocked(now)
	e.lastTick = now
	e.logger.Printf("backfill complete: %d points over %d days", total, e.backfillDays)
	return total
}

// Tick runs one live-update cycle: generate a point per online sensor, trim
// the live window, evaluate alerts, then recompute health. The order is
// load-bearing: status derivation must see the alerts raised this tick.
func (e *Engine) Tick(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	start := time.Now()
	sc := e.scenarios.Active()

	generated := 0
	for _, s := range e.catalog.Sensors() {
		if !s.Online {
			continue
		}
		v, q := e.gen.Value(s, now, sc)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		e.telemetry.AppendLive(telemetry.Point{SensorID: s.ID, TS: now, Value: v, Quality: q})
		s.LastReading = &catalog.Reading{Value: v, TS: now, Quality: q}
		updateAvailability(s, q)
		generated++
	}
	e.telemetry.TrimLiveBefore(now.Add(-e.liveWindow))

	e.deriveLocked(now)
	e.accumulateRuntime(now)
	e.lastTick = now

	metrics.IncPointsGenerated("live", generated)
	metrics.ObserveTick(time.Since(start))
}

// deriveLocked runs the alert pass then the health pass. Caller holds e.mu.
func (e *Engine) deriveLocked(now time.Time) {
	for _, a := range e.catalog.Assets() {
		sensors := e.catalog.SensorsByAsset(a.ID)
		e.alertSvc.EvaluateAsset(a, sensors, now)
		e.alertSvc.MaintenanceSweep(a, e.lastMaintenance(a), now)
	}
	e.alertSvc.Housekeeping(now)

	for _, a := range e.catalog.Assets() {
		sensors := e.catalog.SensorsByAsset(a.ID)
		open := e.alertMem.OpenByAsset(a.ID)
		score, status := e.scorer.Recompute(a, sensors, open, e.lastMaintenance(a), now)
		a.HealthScore = score
		a.Status = status
		metrics.SetAssetHealth(a.ID, a.Tag, score)
	}
	e.publishOpenAlertGauges()
}

// accumulateRuntime advances operating hours and energy for running assets.
func (e *Engine) accumulateRuntime(now time.Time) {
	if e.lastTick.IsZero() {
		return
	}
	delta := now.Sub(e.lastTick)
	if delta <= 0 || delta > time.Hour {
		return
	}
	hours := delta.Hours()
	for _, a := range e.catalog.Assets() {
		if a.Status == catalog.StatusStopped {
			continue
		}
		a.OperatingHours += hours
		for _, s := range e.catalog.SensorsByAsset(a.ID) {
			if s.Kind == catalog.SensorPower && s.LastReading != nil {
				a.PowerConsumption += s.LastReading.Value * hours
			}
		}
	}
}

func (e *Engine) lastMaintenance(a *catalog.Asset) time.Time {
	if t, ok := e.maint.LastCompleted(a.ID); ok {
		return t
	}
	return a.LastMaintenance
}

func (e *Engine) publishOpenAlertGauges() {
	counts := map[alerts.Severity]int{
		alerts.SeverityLow: 0, alerts.SeverityMedium: 0,
		alerts.SeverityHigh: 0, alerts.SeverityCritical: 0,
	}
	for _, a := range e.alertMem.Open() {
		counts[a.Severity]++
	}
	for sev, n := range counts {
		metrics.SetOpenAlerts(string(sev), n)
	}
}

func updateAvailability(s *catalog.Sensor, q telemetry.Quality) {
	good := 0.0
	if q == telemetry.QualityGood {
		good = 100
	}
	// Exponential moving average over roughly the last 50 samples.
	s.Availability = 0.98*s.Availability + 0.02*good
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }
