package health

import (
	"math"
	"time"

	alerts "hvacfleet/internal/alerts/domain"
	catalog "hvacfleet/internal/catalog/domain"
	telemetry "hvacfleet/internal/telemetry/domain"
)

const (
	// MinScore is the floor of the derived health score.
	MinScore = 25
	// MaxScore is the ceiling of the derived health score.
	MaxScore = 100

	offlinePenalty   = 15
	badQualityFine   = 4
	uncertainFine    = 2
	nominalVoltage   = 400
	copMinAcceptable = 2.8
	copGood          = 3.8
	eerMinAcceptable = 8.5
	eerGood          = 10.5
)

// Scorer derives asset health scores and operational status from the latest
// sensor readings, open alerts, maintenance recency and operating-hours wear.
type Scorer struct{}

// NewScorer constructs a Scorer.
func NewScorer() *Scorer { return &Scorer{} }

// Recompute derives the asset's health score and status. It must run after
// the alert pass of the same tick so status reflects that tick's alerts.
func (sc *Scorer) Recompute(asset *catalog.Asset, sensors []*catalog.Sensor, open []*alerts.Alert, lastMaintenance time.Time, now time.Time) (int, catalog.AssetStatus) {
	score := float64(MaxScore)
	stopped := false

	for _, s := range sensors {
		if s.Kind == catalog.SensorRelay && s.LastReading != nil && s.LastReading.Value < 0.5 {
			stopped = true
		}
		weight := weightFor(asset.Kind, s.Kind)
		if !s.Online {
			score -= offlinePenalty * weight
			continue
		}
		r := s.LastReading
		if r == nil || math.IsNaN(r.Value) {
			continue
		}
		score -= weight * sensorPenalty(asset.Kind, s, r.Value)
		switch r.Quality {
		case telemetry.QualityBad:
			score -= badQualityFine
		case telemetry.QualityUncertain:
			score -= uncertainFine
		}
	}

	score -= maintenancePenalty(asset.Kind, lastMaintenance, now)
	score -= wearPenalty(asset.Kind, asset.OperatingHours)

	final := int(math.Round(score))
	if final < MinScore {
		final = MinScore
	}
	if final > MaxScore {
		final = MaxScore
	}
	return final, deriveStatus(final, open, stopped)
}

// sensorPenalty applies the kind-specific tiered thresholds.
func sensorPenalty(assetKind catalog.AssetKind, s *catalog.Sensor, v float64) float64 {
	switch s.Kind {
	case catalog.SensorFilterDP:
		return filterPenalty(v)
	case catalog.SensorVibration:
		return vibrationPenalty(v, VibrationLimit(assetKind))
	case catalog.SensorTempSupply, catalog.SensorTempReturn:
		return deviationPenalty(v, s.Setpoint, 2.5, 4, 6, 10)
	case catalog.SensorHumidity:
		return humidityPenalty(v)
	case catalog.SensorCurrent:
		return currentPenalty(v, s.Max)
	case catalog.SensorCOP:
		return efficiencyPenalty(v, copMinAcceptable, copGood)
	case catalog.SensorEER:
		return efficiencyPenalty(v, eerMinAcceptable, eerGood)
	case catalog.SensorSuperheat, catalog.SensorSubcooling:
		return deviationPenalty(v, s.Setpoint, 2, 3, 5, 8)
	case catalog.SensorSuctionPressure, catalog.SensorDischargePressure:
		return relativeDeviationPenalty(v, s.Setpoint, 0.15, 0.25)
	case catalog.SensorVoltage:
		return voltagePenalty(v, s.Setpoint)
	case catalog.SensorRSSI:
		return rssiPenalty(v)
	default:
		return 0
	}
}

func filterPenalty(v float64) float64 {
	switch {
	case v > 320:
		return 30
	case v > 280:
		return 20
	case v > 240:
		return 12
	case v > 200:
		return 6
	case v > 160:
		return 2
	default:
		return 0
	}
}

func vibrationPenalty(v, limit float64) float64 {
	if limit <= 0 {
		limit = 5.5
	}
	switch ratio := v / limit; {
	case ratio > 1.5:
		return 28
	case ratio > 1.2:
		return 18
	case ratio > 1.0:
		return 10
	case ratio > 0.8:
		return 4
	default:
		return 0
	}
}

// deviationPenalty tiers on absolute deviation from the setpoint.
func deviationPenalty(v float64, setpoint *float64, t1, t2, t3, t4 float64) float64 {
	if setpoint == nil {
		return 0
	}
	switch dev := math.Abs(v - *setpoint); {
	case dev > t4:
		return 20
	case dev > t3:
		return 12
	case dev > t2:
		return 6
	case dev > t1:
		return 2
	default:
		return 0
	}
}

func relativeDeviationPenalty(v float64, setpoint *float64, warn, bad float64) float64 {
	if setpoint == nil || *setpoint == 0 {
		return 0
	}
	switch dev := math.Abs(v-*setpoint) / math.Abs(*setpoint); {
	case dev > bad:
		return 10
	case dev > warn:
		return 4
	default:
		return 0
	}
}

func humidityPenalty(v float64) float64 {
	switch {
	case v < 15 || v > 75:
		return 10
	case v < 25 || v > 65:
		return 4
	default:
		return 0
	}
}

func currentPenalty(v float64, max *float64) float64 {
	if max == nil || *max <= 0 {
		return 0
	}
	switch util := v / *max; {
	case util > 1.0:
		return 22
	case util > 0.95:
		return 14
	case util > 0.85:
		return 7
	case util > 0.75:
		return 2
	default:
		return 0
	}
}

func efficiencyPenalty(v, minAcceptable, good float64) float64 {
	switch {
	case v < minAcceptable:
		return 20
	case v < good:
		return 8
	default:
		return 0
	}
}

func voltagePenalty(v float64, setpoint *float64) float64 {
	nominal := nominalVoltage
	if setpoint != nil && *setpoint > 0 {
		nominal = int(*setpoint)
	}
	switch dev := math.Abs(v-float64(nominal)) / float64(nominal); {
	case dev > 0.10:
		return 15
	case dev > 0.05:
		return 6
	default:
		return 0
	}
}

func rssiPenalty(v float64) float64 {
	switch {
	case v < -80:
		return 6
	case v < -70:
		return 2
	default:
		return 0
	}
}

// maintenancePenalty is graduated: mild past the interval, severe past 1.5x.
func maintenancePenalty(kind catalog.AssetKind, last time.Time, now time.Time) float64 {
	if last.IsZero() {
		return 0
	}
	interval := MaintenanceInterval(kind)
	since := now.Sub(last)
	switch {
	case since > time.Duration(1.5*float64(interval)):
		return 15
	case since > interval:
		return 6
	default:
		return 0
	}
}

// wearPenalty is graduated at 80% and 100% of the expected service life.
func wearPenalty(kind catalog.AssetKind, operatingHours float64) float64 {
	life := ExpectedLife(kind)
	switch ratio := operatingHours / life; {
	case ratio > 1.0:
		return 12
	case ratio > 0.8:
		return 5
	default:
		return 0
	}
}

// deriveStatus applies the ordered status rules; first match wins. An asset
// whose relay channel reads 0 is stopped unless an alert condition outranks
// that.
func deriveStatus(health int, open []*alerts.Alert, stopped bool) catalog.AssetStatus {
	highCrit, medium := 0, 0
	for _, a := range open {
		switch a.Severity {
		case alerts.SeverityHigh, alerts.SeverityCritical:
			highCrit++
		case alerts.SeverityMedium:
			medium++
		}
	}
	switch {
	case health < 40 || highCrit >= 2:
		return catalog.StatusAlert
	case health < 60 || highCrit >= 1:
		return catalog.StatusAlert
	case stopped:
		return catalog.StatusStopped
	case health < 75 || medium >= 2:
		return catalog.StatusMaintenance
	case health < 85 && len(open) >= 1:
		return catalog.StatusMaintenance
	default:
		return catalog.StatusOK
	}
}
