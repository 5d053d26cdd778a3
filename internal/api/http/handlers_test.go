package apihttp

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	catalog "hvacfleet/internal/catalog/domain"
	"hvacfleet/internal/engine"
	telemetry "hvacfleet/internal/telemetry/domain"
)

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

var apiNow = time.Date(2026, 1, 14, 10, 0, 0, 0, time.UTC)

func newAPIEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng, err := engine.New(
		engine.WithClock(fixedClock{at: apiNow}),
		engine.WithLogger(log.New(io.Discard, "", 0)),
		engine.WithSeed(42),
		engine.WithBackfillDays(1),
	)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	eng.Backfill(time.Hour)
	return eng
}

func TestAssetsEndpoint(t *testing.T) {
	eng := newAPIEngine(t)
	h := NewAssetsHandler(eng)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/assets", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var assets []*catalog.Asset
	if err := json.NewDecoder(rec.Body).Decode(&assets); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(assets) == 0 {
		t.Fatalf("no assets returned")
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/assets", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestTelemetryEndpoint(t *testing.T) {
	eng := newAPIEngine(t)
	h := NewTelemetryHandler(eng)
	sensorID := eng.Sensors()[0].ID

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/telemetry?sensor_id="+sensorID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var points []telemetry.Point
	if err := json.NewDecoder(rec.Body).Decode(&points); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(points) != 25 {
		t.Fatalf("expected 25 backfilled points, got %d", len(points))
	}

	from := apiNow.Add(-6 * time.Hour).Format(time.RFC3339)
	to := apiNow.Format(time.RFC3339)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/v1/telemetry?sensor_id="+sensorID+"&from="+from+"&to="+to, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	points = nil
	if err := json.NewDecoder(rec.Body).Decode(&points); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(points) != 7 {
		t.Fatalf("expected 7 points in the window, got %d", len(points))
	}
}

func TestTelemetryEndpointErrors(t *testing.T) {
	eng := newAPIEngine(t)
	h := NewTelemetryHandler(eng)

	cases := []struct {
		name string
		url  string
		code int
	}{
		{"missing sensor id", "/api/v1/telemetry", http.StatusBadRequest},
		{"unknown sensor", "/api/v1/telemetry?sensor_id=nope", http.StatusNotFound},
		{"half range", "/api/v1/telemetry?sensor_id=nope&from=2026-01-01T00:00:00Z", http.StatusBadRequest},
		{"bad timestamp", "/api/v1/telemetry?sensor_id=nope&from=yesterday&to=2026-01-01T00:00:00Z", http.StatusBadRequest},
		{"inverted range", "/api/v1/telemetry?sensor_id=nope&from=2026-01-02T00:00:00Z&to=2026-01-01T00:00:00Z", http.StatusBadRequest},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.url, nil))
		if rec.Code != tc.code {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.code, rec.Code)
		}
	}
}

func TestScenarioEndpoint(t *testing.T) {
	eng := newAPIEngine(t)
	h := NewScenarioHandler(eng)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/scenario", nil))
	var state struct {
		Active    string   `json:"active"`
		Available []string `json:"available"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.Active != "normal" || len(state.Available) == 0 {
		t.Fatalf("unexpected scenario state: %+v", state)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/scenario",
		strings.NewReader(`{"id":"heat-wave"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if eng.ActiveScenario() != "heat-wave" {
		t.Fatalf("scenario not switched: %s", eng.ActiveScenario())
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/scenario",
		strings.NewReader(`{}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty id, got %d", rec.Code)
	}

	// Unknown ids are accepted but ignored.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/scenario",
		strings.NewReader(`{"id":"nope"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if eng.ActiveScenario() != "heat-wave" {
		t.Fatalf("unknown id changed the scenario: %s", eng.ActiveScenario())
	}
}

func TestAlertTransitions(t *testing.T) {
	eng := newAPIEngine(t)
	h := NewAlertsHandler(eng)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/alerts/alert-nope/ack", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown alert, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/alerts/alert-nope/explode", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown transition, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/alerts", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestReportEndpoint(t *testing.T) {
	eng := newAPIEngine(t)
	h := NewReportHandler(eng)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/fleet.xlsx", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheet") {
		t.Fatalf("content type %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Fatalf("empty workbook")
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/fleet.pdf", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Fatalf("not a pdf response")
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/fleet.csv", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown format, got %d", rec.Code)
	}
}
