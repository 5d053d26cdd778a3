package health

import (
	"time"

	catalog "hvacfleet/internal/catalog/domain"
)

// category groups sensor kinds for weighting. The weight tables are keyed on
// the category, not the raw kind, so e.g. both digital inputs share the
// connectivity weight.
type category string

const (
	categoryFilter       category = "filter"
	categoryVibration    category = "vibration"
	categoryTemperature  category = "temperature"
	categoryHumidity     category = "humidity"
	categoryElectrical   category = "electrical"
	categoryPressure     category = "pressure"
	categoryRefrigerant  category = "refrigerant"
	categoryEfficiency   category = "efficiency"
	categoryAirflow      category = "airflow"
	categoryConnectivity category = "connectivity"
)

func categoryOf(kind catalog.SensorKind) category {
	switch kind {
	case catalog.SensorFilterDP:
		return categoryFilter
	case catalog.SensorVibration:
		return categoryVibration
	case catalog.SensorTempSupply, catalog.SensorTempReturn:
		return categoryTemperature
	case catalog.SensorHumidity:
		return categoryHumidity
	case catalog.SensorPower, catalog.SensorCurrent, catalog.SensorVoltage:
		return categoryElectrical
	case catalog.SensorSuctionPressure, catalog.SensorDischargePressure:
		return categoryPressure
	case catalog.SensorSuperheat, catalog.SensorSubcooling:
		return categoryRefrigerant
	case catalog.SensorCOP, catalog.SensorEER:
		return categoryEfficiency
	case catalog.SensorAirflow, catalog.SensorFanRPM:
		return categoryAirflow
	default:
		return categoryConnectivity
	}
}

// categoryWeights biases scoring per equipment kind: chillers live and die
// by refrigerant circuit and vibration, air handlers by filters and fans.
var categoryWeights = map[catalog.AssetKind]map[category]float64{
	catalog.KindAirHandler: {
		categoryFilter: 1.6, categoryVibration: 1.3, categoryAirflow: 1.2,
		categoryTemperature: 1.0, categoryHumidity: 0.8, categoryElectrical: 0.8,
		categoryConnectivity: 0.4,
	},
	catalog.KindChiller: {
		categoryVibration: 1.5, categoryRefrigerant: 1.6, categoryEfficiency: 1.3,
		categoryPressure: 1.2, categoryTemperature: 1.0, categoryElectrical: 0.9,
		categoryConnectivity: 0.4,
	},
	catalog.KindVRF: {
		categoryRefrigerant: 1.4, categoryEfficiency: 1.2, categoryTemperature: 1.0,
		categoryElectrical: 0.9, categoryConnectivity: 0.6,
	},
	catalog.KindRooftopUnit: {
		categoryFilter: 1.4, categoryVibration: 1.2, categoryAirflow: 1.1,
		categoryTemperature: 1.0, categoryElectrical: 0.9, categoryConnectivity: 0.4,
	},
	catalog.KindBoiler: {
		categoryTemperature: 1.4, categoryElectrical: 1.0, categoryConnectivity: 0.5,
	},
	catalog.KindCoolingTower: {
		categoryVibration: 1.4, categoryAirflow: 1.2, categoryTemperature: 1.0,
		categoryElectrical: 0.9, categoryConnectivity: 0.4,
	},
}

// defaultWeights covers asset kinds missing from the table.
var defaultWeights = map[category]float64{
	categoryFilter: 1.2, categoryVibration: 1.2, categoryTemperature: 1.0,
	categoryHumidity: 0.8, categoryElectrical: 0.9, categoryPressure: 1.0,
	categoryRefrigerant: 1.2, categoryEfficiency: 1.0, categoryAirflow: 1.0,
	categoryConnectivity: 0.5,
}

func weightFor(assetKind catalog.AssetKind, kind catalog.SensorKind) float64 {
	cat := categoryOf(kind)
	table, ok := categoryWeights[assetKind]
	if !ok {
		table = defaultWeights
	}
	if w, ok := table[cat]; ok {
		return w
	}
	if w, ok := defaultWeights[cat]; ok {
		return w
	}
	return 1
}

var maintenanceIntervals = map[catalog.AssetKind]time.Duration{
	catalog.KindAirHandler:   90 * 24 * time.Hour,
	catalog.KindChiller:      180 * 24 * time.Hour,
	catalog.KindVRF:          365 * 24 * time.Hour,
	catalog.KindRooftopUnit:  120 * 24 * time.Hour,
	catalog.KindBoiler:       180 * 24 * time.Hour,
	catalog.KindCoolingTower: 90 * 24 * time.Hour,
}

// MaintenanceInterval returns the recommended service interval for an
// equipment kind. Unknown kinds fall back to 180 days.
func MaintenanceInterval(kind catalog.AssetKind) time.Duration {
	if d, ok := maintenanceIntervals[kind]; ok {
		return d
	}
	return 180 * 24 * time.Hour
}

var expectedLifeHours = map[catalog.AssetKind]float64{
	catalog.KindAirHandler:   60000,
	catalog.KindChiller:      90000,
	catalog.KindVRF:          45000,
	catalog.KindRooftopUnit:  50000,
	catalog.KindBoiler:       80000,
	catalog.KindCoolingTower: 70000,
}

// ExpectedLife returns the expected service life in operating hours.
// Unknown kinds fall back to 60000 hours.
func ExpectedLife(kind catalog.AssetKind) float64 {
	if h, ok := expectedLifeHours[kind]; ok {
		return h
	}
	return 60000
}

var vibrationLimits = map[catalog.AssetKind]float64{
	catalog.KindAirHandler:   5.5,
	catalog.KindChiller:      4.5,
	catalog.KindRooftopUnit:  5.5,
	catalog.KindCoolingTower: 6.0,
}

// VibrationLimit returns the acceptable vibration velocity (mm/s) for an
// equipment kind. Unknown kinds fall back to 5.5.
func VibrationLimit(kind catalog.AssetKind) float64 {
	if v, ok := vibrationLimits[kind]; ok {
		return v
	}
	return 5.5
}
