package application

import (
	"fmt"
	"math"

	alerts "hvacfleet/internal/alerts/domain"
	catalog "hvacfleet/internal/catalog/domain"
)

// evaluateReading applies the kind-specific alerting thresholds. These are
// tuned independently from the scoring tiers: alerting fires later and
// coarser than scoring penalizes. The message always embeds the offending
// value and the threshold that was crossed.
func evaluateReading(asset *catalog.Asset, s *catalog.Sensor, v float64) (alerts.Severity, string, string, bool) {
	switch s.Kind {
	case catalog.SensorFilterDP:
		return filterRule(s, v)
	case catalog.SensorVibration:
		return vibrationRule(s, v)
	case catalog.SensorCurrent:
		return currentRule(s, v)
	case catalog.SensorSuperheat:
		return bandRule(s, v, 3, 5, 12, 14, "superheat")
	case catalog.SensorSubcooling:
		return bandRule(s, v, 1, 2, 14, 16, "subcooling")
	case catalog.SensorHumidity:
		return humidityRule(s, v)
	case catalog.SensorTempSupply, catalog.SensorTempReturn:
		return temperatureRule(s, v)
	case catalog.SensorVoltage:
		return voltageRule(s, v)
	case catalog.SensorCOP:
		return efficiencyRule(s, v, 2.8)
	case catalog.SensorEER:
		return efficiencyRule(s, v, 8.5)
	default:
		return "", "", "", false
	}
}

func filterRule(s *catalog.Sensor, v float64) (alerts.Severity, string, string, bool) {
	const rule = "filter-pressure"
	msg := func(th float64) string {
		return fmt.Sprintf("%s filter differential pressure %.1f %s exceeds %.0f %s", s.Tag, v, s.Unit, th, s.Unit)
	}
	switch {
	case v > 380:
		return alerts.SeverityCritical, rule, msg(380), true
	case v > 300:
		return alerts.SeverityHigh, rule, msg(300), true
	case v > 250:
		return alerts.SeverityMedium, rule, msg(250), true
	case v > 200:
		return alerts.SeverityLow, rule, msg(200), true
	default:
		return "", "", "", false
	}
}

func vibrationRule(s *catalog.Sensor, v float64) (alerts.Severity, string, string, bool) {
	const rule = "vibration"
	msg := func(th float64) string {
		return fmt.Sprintf("%s vibration %.2f mm/s exceeds %.1f mm/s", s.Tag, v, th)
	}
	switch {
	case v > 9:
		return alerts.SeverityCritical, rule, msg(9), true
	case v > 6.5:
		return alerts.SeverityHigh, rule, msg(6.5), true
	case v > 4.5:
		return alerts.SeverityMedium, rule, msg(4.5), true
	default:
		return "", "", "", false
	}
}

func currentRule(s *catalog.Sensor, v float64) (alerts.Severity, string, string, bool) {
	const rule = "current-overload"
	if s.Max == nil || *s.Max <= 0 {
		return "", "", "", false
	}
	util := v / *s.Max
	msg := func(pct float64) string {
		return fmt.Sprintf("%s current %.1f A is %.0f%% of rated %.0f A (limit %.0f%%)", s.Tag, v, util*100, *s.Max, pct)
	}
	switch {
	case util > 1.05:
		return alerts.SeverityCritical, rule, msg(105), true
	case util > 0.95:
		return alerts.SeverityHigh, rule, msg(95), true
	case util > 0.85:
		return alerts.SeverityMedium, rule, msg(85), true
	default:
		return "", "", "", false
	}
}

// bandRule alerts when a refrigerant-circuit value leaves its working band.
func bandRule(s *catalog.Sensor, v, critLow, warnLow, warnHigh, critHigh float64, name string) (alerts.Severity, string, string, bool) {
	rule := name + "-band"
	switch {
	case v < critLow:
		return alerts.SeverityHigh, rule,
			fmt.Sprintf("%s %s %.1f K below %.1f K", s.Tag, name, v, critLow), true
	case v > critHigh:
		return alerts.SeverityHigh, rule,
			fmt.Sprintf("%s %s %.1f K above %.1f K", s.Tag, name, v, critHigh), true
	case v < warnLow:
		return alerts.SeverityMedium, rule,
			fmt.Sprintf("%s %s %.1f K below %.1f K", s.Tag, name, v, warnLow), true
	case v > warnHigh:
		return alerts.SeverityMedium, rule,
			fmt.Sprintf("%s %s %.1f K above %.1f K", s.Tag, name, v, warnHigh), true
	default:
		return "", "", "", false
	}
}

func humidityRule(s *catalog.Sensor, v float64) (alerts.Severity, string, string, bool) {
	const rule = "humidity-comfort"
	switch {
	case v < 25 || v > 70:
		return alerts.SeverityMedium, rule,
			fmt.Sprintf("%s humidity %.1f%% outside 25-70%% band", s.Tag, v), true
	case v < 30 || v > 60:
		return alerts.SeverityLow, rule,
			fmt.Sprintf("%s humidity %.1f%% outside 30-60%% comfort band", s.Tag, v), true
	default:
		return "", "", "", false
	}
}

func temperatureRule(s *catalog.Sensor, v float64) (alerts.Severity, string, string, bool) {
	const rule = "temperature-deviation"
	if s.Setpoint == nil {
		return "", "", "", false
	}
	dev := math.Abs(v - *s.Setpoint)
	msg := func(th float64) string {
		return fmt.Sprintf("%s temperature %.1f %s deviates %.1f from setpoint %.1f (limit %.0f)", s.Tag, v, s.Unit, dev, *s.Setpoint, th)
	}
	switch {
	case dev > 10:
		return alerts.SeverityHigh, rule, msg(10), true
	case dev > 6:
		return alerts.SeverityMedium, rule, msg(6), true
	case dev > 4:
		return alerts.SeverityLow, rule, msg(4), true
	default:
		return "", "", "", false
	}
}

func voltageRule(s *catalog.Sensor, v float64) (alerts.Severity, string, string, bool) {
	const rule = "voltage-band"
	nominal := 400.0
	if s.Setpoint != nil && *s.Setpoint > 0 {
		nominal = *s.Setpoint
	}
	dev := math.Abs(v-nominal) / nominal
	msg := func(pct float64) string {
		return fmt.Sprintf("%s voltage %.1f V deviates %.1f%% from nominal %.0f V (limit %.0f%%)", s.Tag, v, dev*100, nominal, pct)
	}
	switch {
	case dev > 0.10:
		return alerts.SeverityHigh, rule, msg(10), true
	case dev > 0.05:
		return alerts.SeverityMedium, rule, msg(5), true
	default:
		return "", "", "", false
	}
}

func efficiencyRule(s *catalog.Sensor, v, minAcceptable float64) (alerts.Severity, string, string, bool) {
	const rule = "efficiency-low"
	if v < minAcceptable {
		return alerts.SeverityMedium, rule,
			fmt.Sprintf("%s efficiency %.2f below acceptable minimum %.2f", s.Tag, v, minAcceptable), true
	}
	return "", "", "", false
}
