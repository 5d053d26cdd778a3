package catalog

import (
	"time"

	telemetry "hvacfleet/internal/telemetry/domain"
)

// SensorKind identifies a measurement channel type. The set is closed:
// generation shaping, scoring and alerting all dispatch on it.
type SensorKind string

const (
	SensorTempSupply        SensorKind = "temperature_supply"
	SensorTempReturn        SensorKind = "temperature_return"
	SensorHumidity          SensorKind = "humidity"
	SensorFilterDP          SensorKind = "filter_differential_pressure"
	SensorPower             SensorKind = "power"
	SensorCurrent           SensorKind = "current"
	SensorVibration         SensorKind = "vibration"
	SensorAirflow           SensorKind = "airflow"
	SensorSuctionPressure   SensorKind = "suction_pressure"
	SensorDischargePressure SensorKind = "discharge_pressure"
	SensorSuperheat         SensorKind = "superheat"
	SensorSubcooling        SensorKind = "subcooling"
	SensorVoltage           SensorKind = "voltage"
	SensorFanRPM            SensorKind = "fan_rpm"
	SensorCOP               SensorKind = "cop"
	SensorEER               SensorKind = "eer"
	SensorDigitalInput1     SensorKind = "digital_input_1"
	SensorDigitalInput2     SensorKind = "digital_input_2"
	SensorRelay             SensorKind = "relay"
	SensorRSSI              SensorKind = "rssi"
	SensorUptime            SensorKind = "uptime"
)

// Binary reports whether the kind carries a strict 0/1 value.
func (k SensorKind) Binary() bool {
	switch k {
	case SensorDigitalInput1, SensorDigitalInput2, SensorRelay:
		return true
	default:
		return false
	}
}

// Reading is the latest observation attached to a sensor.
type Reading struct {
	Value   float64           `json:"value"`
	TS      time.Time         `json:"ts"`
	Quality telemetry.Quality `json:"quality"`
}

// Sensor is one measurement channel attached to exactly one asset.
// LastReading, Online and Availability are mutated every tick; the rest is
// fixed at catalog initialization.
type Sensor struct {
	ID           string     `json:"id"`
	Tag          string     `json:"tag"`
	AssetID      string     `json:"asset_id"`
	Kind         SensorKind `json:"kind"`
	Unit         string     `json:"unit"`
	Online       bool       `json:"online"`
	LastReading  *Reading   `json:"last_reading,omitempty"`
	Availability float64    `json:"availability"`
	Min          *float64   `json:"min,omitempty"`
	Max          *float64   `json:"max,omitempty"`
	Setpoint     *float64   `json:"setpoint,omitempty"`
}
