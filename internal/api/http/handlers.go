package apihttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	alerts "hvacfleet/internal/alerts/domain"
	catalog "hvacfleet/internal/catalog/domain"
	"hvacfleet/internal/engine"
	"hvacfleet/internal/report"
	telemetry "hvacfleet/internal/telemetry/domain"
)

const timeLayout = time.RFC3339

// AssetsHandler serves the asset list.
type AssetsHandler struct {
	engine *engine.Engine
}

// NewAssetsHandler constructs an AssetsHandler.
func NewAssetsHandler(eng *engine.Engine) *AssetsHandler {
	return &AssetsHandler{engine: eng}
}

// ServeHTTP handles GET /api/v1/assets.
func (h *AssetsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, h.engine.Assets())
}

// SensorsHandler serves the sensor list.
type SensorsHandler struct {
	engine *engine.Engine
}

// NewSensorsHandler constructs a SensorsHandler.
func NewSensorsHandler(eng *engine.Engine) *SensorsHandler {
	return &SensorsHandler{engine: eng}
}

// ServeHTTP handles GET /api/v1/sensors.
func (h *SensorsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, h.engine.Sensors())
}

// AlertsHandler serves the alert history and the ack/resolve transitions.
type AlertsHandler struct {
	engine *engine.Engine
}

// NewAlertsHandler constructs an AlertsHandler.
func NewAlertsHandler(eng *engine.Engine) *AlertsHandler {
	return &AlertsHandler{engine: eng}
}

// ServeHTTP handles GET /api/v1/alerts and
// POST /api/v1/alerts/{id}/ack|resolve.
func (h *AlertsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, h.engine.Alerts())
	case http.MethodPost:
		h.transition(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *AlertsHandler) transition(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/alerts/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" {
		http.Error(w, "expected /api/v1/alerts/{id}/ack or /resolve", http.StatusBadRequest)
		return
	}
	var (
		alert *alerts.Alert
		err   error
	)
	switch parts[1] {
	case "ack":
		alert, err = h.engine.AcknowledgeAlert(parts[0])
	case "resolve":
		alert, err = h.engine.ResolveAlert(parts[0])
	default:
		http.Error(w, "unknown transition", http.StatusBadRequest)
		return
	}
	if errors.Is(err, alerts.ErrNotFound) {
		http.Error(w, "alert not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "alert transition error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, alert)
}

// TelemetryHandler serves windowed telemetry queries.
type TelemetryHandler struct {
	engine *engine.Engine
}

// NewTelemetryHandler constructs a TelemetryHandler.
func NewTelemetryHandler(eng *engine.Engine) *TelemetryHandler {
	return &TelemetryHandler{engine: eng}
}

// ServeHTTP handles GET /api/v1/telemetry?sensor_id=&from=&to=.
func (h *TelemetryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sensorID := r.URL.Query().Get("sensor_id")
	if sensorID == "" {
		http.Error(w, "sensor_id is required", http.StatusBadRequest)
		return
	}
	rng, err := parseRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	points, err := h.engine.TelemetryData(sensorID, rng)
	if errors.Is(err, catalog.ErrSensorNotFound) {
		http.Error(w, "sensor not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "telemetry query error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, points)
}

// ScenarioHandler serves scenario inspection and switching.
type ScenarioHandler struct {
	engine *engine.Engine
}

// NewScenarioHandler constructs a ScenarioHandler.
func NewScenarioHandler(eng *engine.Engine) *ScenarioHandler {
	return &ScenarioHandler{engine: eng}
}

// ServeHTTP handles GET and POST /api/v1/scenario.
func (h *ScenarioHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, map[string]any{
			"active":    h.engine.ActiveScenario(),
			"available": h.engine.ScenarioIDs(),
		})
	case http.MethodPost:
		var body struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ID == "" {
			http.Error(w, "id is required", http.StatusBadRequest)
			return
		}
		h.engine.SetScenario(body.ID)
		writeJSON(w, map[string]string{"active": h.engine.ActiveScenario()})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// ReportHandler serves fleet report exports.
type ReportHandler struct {
	engine *engine.Engine
}

// NewReportHandler constructs a ReportHandler.
func NewReportHandler(eng *engine.Engine) *ReportHandler {
	return &ReportHandler{engine: eng}
}

// ServeHTTP handles GET /api/v1/reports/fleet.{xlsx,pdf}.
func (h *ReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	now := time.Now().UTC()
	assets := h.engine.Assets()
	history := h.engine.Alerts()
	switch {
	case strings.HasSuffix(r.URL.Path, ".xlsx"):
		data, err := report.BuildFleetXLSX(assets, history, now)
		if err != nil {
			http.Error(w, "report error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="fleet.xlsx"`)
		_, _ = w.Write(data)
	case strings.HasSuffix(r.URL.Path, ".pdf"):
		data, err := report.BuildFleetPDF(assets, history, now)
		if err != nil {
			http.Error(w, "report error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="fleet.pdf"`)
		_, _ = w.Write(data)
	default:
		http.Error(w, "unknown report format", http.StatusNotFound)
	}
}

func parseRange(r *http.Request) (*telemetry.Range, error) {
	fromRaw := r.URL.Query().Get("from")
	toRaw := r.URL.Query().Get("to")
	if fromRaw == "" && toRaw == "" {
		return nil, nil
	}
	if fromRaw == "" || toRaw == "" {
		return nil, errors.New("from and to must be given together")
	}
	from, err := time.Parse(timeLayout, fromRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid from: %w", err)
	}
	to, err := time.Parse(timeLayout, toRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid to: %w", err)
	}
	if to.Before(from) {
		return nil, errors.New("to must not be before from")
	}
	return &telemetry.Range{Start: from, End: to}, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
