package memory

import (
	"testing"
	"time"

	telemetry "hvacfleet/internal/telemetry/domain"
)

func point(id string, ts time.Time, v float64) telemetry.Point {
	return telemetry.Point{SensorID: id, TS: ts, Value: v, Quality: telemetry.QualityGood}
}

func TestQueryRange(t *testing.T) {
	store := NewStore()
	base := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)

	var hist []telemetry.Point
	for i := 0; i < 48; i++ {
		hist = append(hist, point("s1", base.Add(time.Duration(i)*time.Hour), float64(i)))
	}
	store.AppendHistory("s1", hist)
	store.AppendLive(point("s1", base.Add(48*time.Hour), 48))

	r := telemetry.Range{Start: base.Add(10 * time.Hour), End: base.Add(20 * time.Hour)}
	got := store.Query("s1", r)
	if len(got) != 11 {
		t.Fatalf("expected 11 points, got %d", len(got))
	}
	for i, p := range got {
		if !r.Contains(p.TS) {
			t.Fatalf("point %d outside range: %s", i, p.TS)
		}
		if i > 0 && got[i-1].TS.After(p.TS) {
			t.Fatalf("points out of order at %d", i)
		}
	}

	full := store.Series("s1")
	if len(full) != 49 {
		t.Fatalf("expected 49 points in full series, got %d", len(full))
	}
}

func TestTrimLiveKeepsHistory(t *testing.T) {
	store := NewStore()
	base := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)

	store.AppendHistory("s1", []telemetry.Point{point("s1", base, 1)})
	store.AppendLive(point("s1", base.Add(1*time.Hour), 2))
	store.AppendLive(point("s1", base.Add(30*time.Hour), 3))

	store.TrimLiveBefore(base.Add(10 * time.Hour))

	got := store.Series("s1")
	if len(got) != 2 {
		t.Fatalf("expected history + 1 live point, got %d", len(got))
	}
	if got[0].Value != 1 {
		t.Fatalf("history point was trimmed")
	}
	if got[1].Value != 3 {
		t.Fatalf("wrong live point survived: %v", got[1].Value)
	}
}

func TestQueryUnknownSensorEmpty(t *testing.T) {
	store := NewStore()
	if got := store.Series("nope"); len(got) != 0 {
		t.Fatalf("expected empty series, got %d", len(got))
	}
}
