package telemetry

import "time"

// Quality grades a single observation.
type Quality string

const (
	QualityGood      Quality = "good"
	QualityUncertain Quality = "uncertain"
	QualityBad       Quality = "bad"
)

// Point is an immutable timestamped observation for one sensor channel.
type Point struct {
	SensorID string    `json:"sensor_id"`
	TS       time.Time `json:"ts"`
	Value    float64   `json:"value"`
	Quality  Quality   `json:"quality"`
}

// Range bounds a telemetry query. Both ends are inclusive.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether ts falls inside the range.
func (r Range) Contains(ts time.Time) bool {
	if ts.Before(r.Start) {
		return false
	}
	return !ts.After(r.End)
}
