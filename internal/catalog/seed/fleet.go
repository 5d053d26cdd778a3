package seed

import (
	"time"

	catalog "hvacfleet/internal/catalog/domain"
)

// Fleet builds the demonstration fleet: six assets across every supported
// equipment kind with their measurement channels. Deterministic seed data,
// no runtime inputs.
func Fleet(now time.Time) ([]*catalog.Asset, []*catalog.Sensor) {
	assets := []*catalog.Asset{
		{
			ID: "ahu-01", Tag: "AHU-01", Kind: catalog.KindAirHandler,
			Location: "Building A / Roof North", OperatingHours: 21000,
			LastMaintenance: now.AddDate(0, -2, 0),
			Specifications: map[string]string{
				"capacity":    "12000 m3/h",
				"voltage":     "400 V",
				"max_current": "32 A",
			},
		},
		{
			ID: "ch-01", Tag: "CH-01", Kind: catalog.KindChiller,
			Location: "Building A / Plant Room", OperatingHours: 34000,
			LastMaintenance: now.AddDate(0, -4, 0),
			Specifications: map[string]string{
				"capacity":    "850 kW",
				"refrigerant": "R134a",
				"voltage":     "400 V",
				"max_current": "220 A",
			},
		},
		{
			ID: "vrf-01", Tag: "VRF-01", Kind: catalog.KindVRF,
			Location: "Building B / Floor 3", OperatingHours: 9800,
			LastMaintenance: now.AddDate(0, -1, -10),
			Specifications: map[string]string{
				"capacity":    "56 kW",
				"refrigerant": "R410A",
				"max_current": "48 A",
			},
		},
		{
			ID: "rtu-01", Tag: "RTU-01", Kind: catalog.KindRooftopUnit,
			Location: "Building B / Roof", OperatingHours: 17500,
			LastMaintenance: now.AddDate(0, -3, 0),
			Specifications: map[string]string{
				"capacity":    "140 kW",
				"voltage":     "400 V",
				"max_current": "95 A",
			},
		},
		{
			ID: "blr-01", Tag: "BLR-01", Kind: catalog.KindBoiler,
			Location: "Building A / Basement", OperatingHours: 41000,
			LastMaintenance: now.AddDate(0, -5, 0),
			Specifications: map[string]string{
				"capacity": "600 kW",
				"fuel":     "natural gas",
			},
		},
		{
			ID: "ct-01", Tag: "CT-01", Kind: catalog.KindCoolingTower,
			Location: "Building A / Roof South", OperatingHours: 28000,
			LastMaintenance: now.AddDate(0, -2, -15),
			Specifications: map[string]string{
				"capacity":    "1000 kW",
				"max_current": "40 A",
			},
		},
	}

	sensors := []*catalog.Sensor{
		// AHU-01
		sensor("ahu-01-ts", "AHU-01-TS", "ahu-01", catalog.SensorTempSupply, "°C", bounds(5, 35), sp(16)),
		sensor("ahu-01-tr", "AHU-01-TR", "ahu-01", catalog.SensorTempReturn, "°C", bounds(10, 40), sp(23)),
		sensor("ahu-01-rh", "AHU-01-RH", "ahu-01", catalog.SensorHumidity, "%", bounds(0, 100), sp(45)),
		sensor("ahu-01-fdp", "AHU-01-FDP", "ahu-01", catalog.SensorFilterDP, "Pa", bounds(0, 500), nil),
		sensor("ahu-01-af", "AHU-01-AF", "ahu-01", catalog.SensorAirflow, "m3/h", bounds(0, 14000), sp(11000)),
		sensor("ahu-01-rpm", "AHU-01-RPM", "ahu-01", catalog.SensorFanRPM, "rpm", bounds(0, 1800), sp(1450)),
		sensor("ahu-01-pw", "AHU-01-PW", "ahu-01", catalog.SensorPower, "kW", bounds(0, 25), nil),
		sensor("ahu-01-cur", "AHU-01-CUR", "ahu-01", catalog.SensorCurrent, "A", bounds(0, 32), nil),
		sensor("ahu-01-vib", "AHU-01-VIB", "ahu-01", catalog.SensorVibration, "mm/s", bounds(0, 20), nil),
		sensor("ahu-01-di1", "AHU-01-DI1", "ahu-01", catalog.SensorDigitalInput1, "", nil, nil),
		sensor("ahu-01-rel", "AHU-01-REL", "ahu-01", catalog.SensorRelay, "", nil, nil),

		// CH-01
		sensor("ch-01-ts", "CH-01-TS", "ch-01", catalog.SensorTempSupply, "°C", bounds(2, 15), sp(6.5)),
		sensor("ch-01-sp", "CH-01-SP", "ch-01", catalog.SensorSuctionPressure, "bar", bounds(0, 10), sp(3.4)),
		sensor("ch-01-dp", "CH-01-DP", "ch-01", catalog.SensorDischargePressure, "bar", bounds(0, 25), sp(11.5)),
		sensor("ch-01-sh", "CH-01-SH", "ch-01", catalog.SensorSuperheat, "K", bounds(0, 30), sp(8)),
		sensor("ch-01-sc", "CH-01-SC", "ch-01", catalog.SensorSubcooling, "K", bounds(0, 25), sp(7)),
		sensor("ch-01-cop", "CH-01-COP", "ch-01", catalog.SensorCOP, "", bounds(0, 8), nil),
		sensor("ch-01-pw", "CH-01-PW", "ch-01", catalog.SensorPower, "kW", bounds(0, 300), nil),
		sensor("ch-01-cur", "CH-01-CUR", "ch-01", catalog.SensorCurrent, "A", bounds(0, 220), nil),
		sensor("ch-01-vib", "CH-01-VIB", "ch-01", catalog.SensorVibration, "mm/s", bounds(0, 20), nil),
		sensor("ch-01-rel", "CH-01-REL", "ch-01", catalog.SensorRelay, "", nil, nil),

		// VRF-01
		sensor("vrf-01-ts", "VRF-01-TS", "vrf-01", catalog.SensorTempSupply, "°C", bounds(5, 40), sp(18)),
		sensor("vrf-01-sh", "VRF-01-SH", "vrf-01", catalog.SensorSuperheat, "K", bounds(0, 30), sp(7)),
		sensor("vrf-01-eer", "VRF-01-EER", "vrf-01", catalog.SensorEER, "", bounds(0, 20), nil),
		sensor("vrf-01-cur", "VRF-01-CUR", "vrf-01", catalog.SensorCurrent, "A", bounds(0, 48), nil),
		sensor("vrf-01-rssi", "VRF-01-RSSI", "vrf-01", catalog.SensorRSSI, "dBm", bounds(-100, -20), nil),

		// RTU-01
		sensor("rtu-01-ts", "RTU-01-TS", "rtu-01", catalog.SensorTempSupply, "°C", bounds(5, 45), sp(17)),
		sensor("rtu-01-fdp", "RTU-01-FDP", "rtu-01", catalog.SensorFilterDP, "Pa", bounds(0, 500), nil),
		sensor("rtu-01-af", "RTU-01-AF", "rtu-01", catalog.SensorAirflow, "m3/h", bounds(0, 20000), sp(16000)),
		sensor("rtu-01-pw", "RTU-01-PW", "rtu-01", catalog.SensorPower, "kW", bounds(0, 60), nil),
		sensor("rtu-01-vib", "RTU-01-VIB", "rtu-01", catalog.SensorVibration, "mm/s", bounds(0, 20), nil),
		sensor("rtu-01-di2", "RTU-01-DI2", "rtu-01", catalog.SensorDigitalInput2, "", nil, nil),

		// BLR-01
		sensor("blr-01-ts", "BLR-01-TS", "blr-01", catalog.SensorTempSupply, "°C", bounds(30, 95), sp(75)),
		sensor("blr-01-tr", "BLR-01-TR", "blr-01", catalog.SensorTempReturn, "°C", bounds(25, 90), sp(55)),
		sensor("blr-01-pw", "BLR-01-PW", "blr-01", catalog.SensorPower, "kW", bounds(0, 30), nil),
		sensor("blr-01-vol", "BLR-01-VOL", "blr-01", catalog.SensorVoltage, "V", bounds(340, 460), sp(400)),
		sensor("blr-01-up", "BLR-01-UP", "blr-01", catalog.SensorUptime, "h", bounds(0, 100000), nil),

		// CT-01
		sensor("ct-01-ts", "CT-01-TS", "ct-01", catalog.SensorTempSupply, "°C", bounds(10, 45), sp(29)),
		sensor("ct-01-rpm", "CT-01-RPM", "ct-01", catalog.SensorFanRPM, "rpm", bounds(0, 900), sp(720)),
		sensor("ct-01-cur", "CT-01-CUR", "ct-01", catalog.SensorCurrent, "A", bounds(0, 40), nil),
		sensor("ct-01-vib", "CT-01-VIB", "ct-01", catalog.SensorVibration, "mm/s", bounds(0, 20), nil),
		sensor("ct-01-rel", "CT-01-REL", "ct-01", catalog.SensorRelay, "", nil, nil),
	}
	return assets, sensors
}

type rng struct{ min, max float64 }

func sensor(id, tag, assetID string, kind catalog.SensorKind, unit string, b *rng, setpoint *float64) *catalog.Sensor {
	s := &catalog.Sensor{
		ID:           id,
		Tag:          tag,
		AssetID:      assetID,
		Kind:         kind,
		Unit:         unit,
		Online:       true,
		Availability: 100,
		Setpoint:     setpoint,
	}
	if b != nil {
		s.Min = fptr(b.min)
		s.Max = fptr(b.max)
	}
	return s
}

func bounds(min, max float64) *rng { return &rng{min: min, max: max} }

func sp(v float64) *float64 { return fptr(v) }

func fptr(v float64) *float64 { return &v }
