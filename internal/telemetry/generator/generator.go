package generator

import (
	"math"
	"math/rand"
	"time"

	catalog "hvacfleet/internal/catalog/domain"
	"hvacfleet/internal/observability/metrics"
	"hvacfleet/internal/scenario"
	telemetry "hvacfleet/internal/telemetry/domain"
)

const anomalyProbability = 0.0008

// AssetLookup resolves the owning asset's kind and wear age factor for a
// sensor. The age factor scales degradation trends; 1 means a new asset.
type AssetLookup func(assetID string) (catalog.AssetKind, float64)

// Generator produces synthetic telemetry. It is not safe for concurrent use;
// the engine serializes all calls under its tick lock. Drift and last-value
// state accumulate across calls so a backfill walk stays internally
// consistent.
type Generator struct {
	rng    *rand.Rand
	epoch  time.Time
	drift  map[string]float64
	last   map[string]float64
	lastTS map[string]time.Time
	lookup AssetLookup
}

// Option customizes a Generator.
type Option func(*Generator)

// WithAssetLookup wires asset kind and age resolution into shaping.
func WithAssetLookup(lookup AssetLookup) Option {
	return func(g *Generator) {
		g.lookup = lookup
	}
}

// New constructs a seeded generator. Degradation trends are measured from
// epoch, which should be the start of the backfilled history.
func New(epoch time.Time, seed int64, opts ...Option) *Generator {
	g := &Generator{
		rng:    rand.New(rand.NewSource(seed)),
		epoch:  epoch,
		drift:  make(map[string]float64),
		last:   make(map[string]float64),
		lastTS: make(map[string]time.Time),
		lookup: func(string) (catalog.AssetKind, float64) { return "", 1 },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Value generates one observation for a sensor at the given instant under
// the active scenario.
func (g *Generator) Value(s *catalog.Sensor, at time.Time, sc *scenario.Scenario) (float64, telemetry.Quality) {
	if s.Kind.Binary() {
		v := g.binaryValue(s)
		g.remember(s.ID, v, at)
		return v, g.rollQuality()
	}
	if s.Kind == catalog.SensorUptime {
		v := g.uptimeValue(s, at)
		g.remember(s.ID, v, at)
		return v, g.rollQuality()
	}

	if !s.Online {
		// Frozen at the last known value; the channel stops evolving.
		v, ok := g.last[s.ID]
		if !ok {
			v = baseline(s, profileFor(s.Kind))
		}
		q := telemetry.QualityBad
		if g.rng.Float64() >= 0.9 {
			q = telemetry.QualityUncertain
		}
		return v, q
	}

	p := profileFor(s.Kind)
	base := baseline(s, p)
	scale := math.Abs(base)
	if scale == 0 {
		scale = 1
	}
	assetKind, age := g.lookup(s.AssetID)

	v := base
	v += scale * p.relDaily * dailyCycle(at, peakHour(p, assetKind))
	v += scale * p.relSeasonal * seasonalCycle(at)
	if p.loadSensitive {
		v *= loadFactor(at)
	}

	// Slow degradation trend from the history epoch, scaled by asset age.
	elapsedDays := at.Sub(g.epoch).Hours() / 24
	if elapsedDays > 0 && p.wearPerDay != 0 {
		v += base * p.wearPerDay * elapsedDays * age * sc.DegradationFactor
	}

	// Persistent random-walk drift.
	g.drift[s.ID] += g.rng.NormFloat64() * scale * p.relNoise * 0.05
	v += g.drift[s.ID]

	v += g.rng.NormFloat64() * scale * p.relNoise

	if g.rng.Float64() < anomalyProbability {
		v = g.injectAnomaly(s.ID, v, scale*p.relNoise)
	}

	v = applyScenario(s.Kind, v, sc, g.rng)
	v = clamp(s, v)
	g.remember(s.ID, v, at)
	return v, g.rollQuality()
}

// Backfill generates a dense historical series for one sensor at fixed
// intervals over [from, to]. Drift and trend state carry across the walk.
func (g *Generator) Backfill(s *catalog.Sensor, from, to time.Time, interval time.Duration, sc *scenario.Scenario) []telemetry.Point {
	if interval <= 0 || to.Before(from) {
		return nil
	}
	points := make([]telemetry.Point, 0, int(to.Sub(from)/interval)+1)
	for t := from; !t.After(to); t = t.Add(interval) {
		v, q := g.Value(s, t, sc)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		points = append(points, telemetry.Point{SensorID: s.ID, TS: t, Value: v, Quality: q})
	}
	metrics.IncPointsGenerated("backfill", len(points))
	return points
}

func (g *Generator) binaryValue(s *catalog.Sensor) float64 {
	v, ok := g.last[s.ID]
	if !ok {
		if s.LastReading != nil {
			v = s.LastReading.Value
		} else {
			v = 1
		}
	}
	if v >= 0.5 {
		return 1
	}
	return 0
}

func (g *Generator) uptimeValue(s *catalog.Sensor, at time.Time) float64 {
	v, ok := g.last[s.ID]
	if !ok {
		v = 1000
	}
	if prev, ok := g.lastTS[s.ID]; ok && at.After(prev) {
		v += at.Sub(prev).Hours()
	}
	return clamp(s, v)
}

func (g *Generator) injectAnomaly(sensorID string, v, noiseScale float64) float64 {
	metrics.IncAnomaly()
	switch g.rng.Intn(3) {
	case 0: // spike
		return v * (1.2 + g.rng.Float64()*0.3)
	case 1: // dip
		return v * (0.5 + g.rng.Float64()*0.3)
	default: // step change to the drift term
		step := noiseScale * 5
		if g.rng.Float64() < 0.5 {
			step = -step
		}
		g.drift[sensorID] += step
		return v + step
	}
}

func (g *Generator) rollQuality() telemetry.Quality {
	roll := g.rng.Float64()
	switch {
	case roll < 0.005:
		return telemetry.QualityBad
	case roll < 0.015:
		return telemetry.QualityUncertain
	default:
		return telemetry.QualityGood
	}
}

func (g *Generator) remember(sensorID string, v float64, at time.Time) {
	g.last[sensorID] = v
	g.lastTS[sensorID] = at
}

// dailyCycle peaks at peak hour and bottoms twelve hours later.
func dailyCycle(at time.Time, peak float64) float64 {
	h := float64(at.Hour()) + float64(at.Minute())/60
	return math.Cos(2 * math.Pi * (h - peak) / 24)
}

// seasonalCycle peaks mid-July, the cooling season.
func seasonalCycle(at time.Time) float64 {
	doy := float64(at.YearDay())
	return math.Cos(2 * math.Pi * (doy - 196) / 365)
}

// peakHour shifts heating equipment to a morning load peak.
func peakHour(p profile, assetKind catalog.AssetKind) float64 {
	if assetKind == catalog.KindBoiler {
		return 7
	}
	return p.peakHour
}

// loadFactor models the business-hours/weekend occupancy swing.
func loadFactor(at time.Time) float64 {
	switch at.Weekday() {
	case time.Saturday, time.Sunday:
		return 0.72
	}
	if h := at.Hour(); h >= 8 && h < 18 {
		return 1
	}
	return 0.82
}

func applyScenario(kind catalog.SensorKind, v float64, sc *scenario.Scenario, rng *rand.Rand) float64 {
	switch kind {
	case catalog.SensorTempSupply, catalog.SensorTempReturn:
		return v + sc.ExternalTempDelta*0.35
	case catalog.SensorPower:
		return v * sc.PowerFactor
	case catalog.SensorCurrent:
		return v * sc.CurrentFactor
	case catalog.SensorFilterDP:
		return v * sc.FilterFactor
	case catalog.SensorAirflow:
		return v * sc.AirflowFactor
	case catalog.SensorSuperheat:
		return v + sc.SuperheatDelta
	case catalog.SensorSubcooling:
		return v + sc.SubcoolingDelta
	case catalog.SensorCOP, catalog.SensorEER:
		return v * sc.EfficiencyFactor
	case catalog.SensorVibration:
		return v * sc.VibrationFactor
	case catalog.SensorFanRPM:
		return v * sc.RPMFactor
	case catalog.SensorVoltage:
		return v + sc.VoltageJitter*(2*rng.Float64()-1)
	default:
		return v
	}
}

func clamp(s *catalog.Sensor, v float64) float64 {
	if s.Min != nil && v < *s.Min {
		v = *s.Min
	}
	if s.Max != nil && v > *s.Max {
		v = *s.Max
	}
	return v
}
