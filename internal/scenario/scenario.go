package scenario

// Scenario is a named bias bundle applied by the telemetry generator.
// Delta fields are additive and neutral at 0; factor fields are
// multiplicative and neutral at 1. Builtin constructs them fully populated,
// so the generator never has to guard against zero factors.
type Scenario struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	ExternalTempDelta float64 `json:"external_temp_delta"`
	PowerFactor       float64 `json:"power_factor"`
	CurrentFactor     float64 `json:"current_factor"`
	FilterFactor      float64 `json:"filter_factor"`
	AirflowFactor     float64 `json:"airflow_factor"`
	SuperheatDelta    float64 `json:"superheat_delta"`
	SubcoolingDelta   float64 `json:"subcooling_delta"`
	EfficiencyFactor  float64 `json:"efficiency_factor"`
	VibrationFactor   float64 `json:"vibration_factor"`
	RPMFactor         float64 `json:"rpm_factor"`
	VoltageJitter     float64 `json:"voltage_jitter"`
	DegradationFactor float64 `json:"degradation_factor"`
}

// DefaultID is the scenario active when nothing else was selected.
const DefaultID = "normal"

func neutral(id, name string) Scenario {
	return Scenario{
		ID:                id,
		Name:              name,
		PowerFactor:       1,
		CurrentFactor:     1,
		FilterFactor:      1,
		AirflowFactor:     1,
		EfficiencyFactor:  1,
		VibrationFactor:   1,
		RPMFactor:         1,
		DegradationFactor: 1,
	}
}

// Builtin returns the demo scenario set, normal first.
func Builtin() []Scenario {
	normal := neutral(DefaultID, "Normal operation")

	heatWave := neutral("heat-wave", "Heat wave")
	heatWave.ExternalTempDelta = 8
	heatWave.PowerFactor = 1.25
	heatWave.CurrentFactor = 1.15
	heatWave.EfficiencyFactor = 0.92

	cloggedFilter := neutral("clogged-filter", "Clogged filter")
	cloggedFilter.FilterFactor = 1.9
	cloggedFilter.AirflowFactor = 0.78
	cloggedFilter.PowerFactor = 1.08

	refrigerantLeak := neutral("refrigerant-leak", "Refrigerant leak")
	refrigerantLeak.SuperheatDelta = 7
	refrigerantLeak.SubcoolingDelta = -4.5
	refrigerantLeak.EfficiencyFactor = 0.82
	refrigerantLeak.PowerFactor = 1.1

	bearingWear := neutral("bearing-wear", "Bearing wear")
	bearingWear.VibrationFactor = 1.9
	bearingWear.AirflowFactor = 0.88
	bearingWear.RPMFactor = 0.93
	bearingWear.PowerFactor = 1.05

	powerQuality := neutral("power-quality", "Power quality issues")
	powerQuality.VoltageJitter = 12
	powerQuality.CurrentFactor = 1.12
	powerQuality.EfficiencyFactor = 0.93

	maintenanceOverdue := neutral("maintenance-overdue", "Maintenance overdue")
	maintenanceOverdue.DegradationFactor = 1.6
	maintenanceOverdue.VibrationFactor = 1.2
	maintenanceOverdue.FilterFactor = 1.25

	return []Scenario{
		normal, heatWave, cloggedFilter, refrigerantLeak,
		bearingWear, powerQuality, maintenanceOverdue,
	}
}
