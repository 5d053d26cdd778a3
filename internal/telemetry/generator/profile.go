package generator

import (
	catalog "hvacfleet/internal/catalog/domain"
)

// profile describes how one sensor kind is shaped. Amplitudes and noise are
// relative to the working baseline so the same profile serves a 6 kW fan and
// a 200 kW compressor. wearPerDay is the relative degradation trend per
// elapsed day, signed (efficiency falls, filter pressure rises).
type profile struct {
	fallbackBaseline float64
	baselineFromMax  float64 // fraction of sensor max, used when no setpoint
	relDaily         float64
	relSeasonal      float64
	relNoise         float64
	peakHour         float64
	wearPerDay       float64
	loadSensitive    bool
}

var profiles = map[catalog.SensorKind]profile{
	catalog.SensorTempSupply: {
		fallbackBaseline: 16, relDaily: 0.06, relSeasonal: 0.05,
		relNoise: 0.012, peakHour: 15,
	},
	catalog.SensorTempReturn: {
		fallbackBaseline: 23, relDaily: 0.07, relSeasonal: 0.05,
		relNoise: 0.012, peakHour: 15,
	},
	catalog.SensorHumidity: {
		fallbackBaseline: 45, relDaily: 0.1, relSeasonal: 0.15,
		relNoise: 0.03, peakHour: 6,
	},
	catalog.SensorFilterDP: {
		fallbackBaseline: 150, relDaily: 0.05, relSeasonal: 0.03,
		relNoise: 0.02, peakHour: 15, wearPerDay: 0.004, loadSensitive: true,
	},
	catalog.SensorPower: {
		baselineFromMax: 0.55, fallbackBaseline: 10, relDaily: 0.18,
		relSeasonal: 0.1, relNoise: 0.025, peakHour: 15,
		wearPerDay: 0.0008, loadSensitive: true,
	},
	catalog.SensorCurrent: {
		baselineFromMax: 0.55, fallbackBaseline: 15, relDaily: 0.16,
		relSeasonal: 0.08, relNoise: 0.02, peakHour: 15, loadSensitive: true,
	},
	catalog.SensorVibration: {
		fallbackBaseline: 2.2, relDaily: 0.1, relSeasonal: 0.04,
		relNoise: 0.08, peakHour: 15, wearPerDay: 0.004,
	},
	catalog.SensorAirflow: {
		fallbackBaseline: 10000, relDaily: 0.08, relSeasonal: 0.05,
		relNoise: 0.02, peakHour: 15, loadSensitive: true,
	},
	catalog.SensorSuctionPressure: {
		fallbackBaseline: 3.4, relDaily: 0.05, relSeasonal: 0.04,
		relNoise: 0.015, peakHour: 15,
	},
	catalog.SensorDischargePressure: {
		fallbackBaseline: 11.5, relDaily: 0.06, relSeasonal: 0.05,
		relNoise: 0.015, peakHour: 15,
	},
	catalog.SensorSuperheat: {
		fallbackBaseline: 8, relDaily: 0.08, relSeasonal: 0.05,
		relNoise: 0.04, peakHour: 15,
	},
	catalog.SensorSubcooling: {
		fallbackBaseline: 7, relDaily: 0.08, relSeasonal: 0.05,
		relNoise: 0.04, peakHour: 15,
	},
	catalog.SensorVoltage: {
		fallbackBaseline: 400, relDaily: 0.004, relSeasonal: 0.002,
		relNoise: 0.004, peakHour: 11,
	},
	catalog.SensorFanRPM: {
		fallbackBaseline: 1400, relDaily: 0.05, relSeasonal: 0.02,
		relNoise: 0.008, peakHour: 15, loadSensitive: true,
	},
	catalog.SensorCOP: {
		fallbackBaseline: 4.2, relDaily: 0.05, relSeasonal: 0.04,
		relNoise: 0.02, peakHour: 4, wearPerDay: -0.0012,
	},
	catalog.SensorEER: {
		fallbackBaseline: 11.5, relDaily: 0.05, relSeasonal: 0.04,
		relNoise: 0.02, peakHour: 4, wearPerDay: -0.0012,
	},
	catalog.SensorRSSI: {
		fallbackBaseline: -55, relDaily: 0.02, relSeasonal: 0,
		relNoise: 0.04, peakHour: 12,
	},
}

var defaultProfile = profile{
	fallbackBaseline: 1, relDaily: 0.05, relSeasonal: 0.02,
	relNoise: 0.02, peakHour: 12,
}

func profileFor(kind catalog.SensorKind) profile {
	if p, ok := profiles[kind]; ok {
		return p
	}
	return defaultProfile
}

func baseline(s *catalog.Sensor, p profile) float64 {
	if s.Setpoint != nil {
		return *s.Setpoint
	}
	if p.baselineFromMax > 0 && s.Max != nil {
		return p.baselineFromMax * *s.Max
	}
	return p.fallbackBaseline
}
