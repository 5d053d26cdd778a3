package metrics

import (
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "hvacfleet_"

var (
	registerOnce sync.Once

	pointsGenerated *prometheus.CounterVec
	anomaliesTotal  prometheus.Counter

	ticksTotal   prometheus.Counter
	tickDuration prometheus.Histogram

	alertEventsTotal *prometheus.CounterVec
	openAlerts       *prometheus.GaugeVec

	assetHealth *prometheus.GaugeVec
)

// Init registers engine metrics. Safe to call more than once.
func Init(logger *log.Logger) {
	registerOnce.Do(func() {
		pointsGenerated = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "points_generated_total",
				Help: "Telemetry points generated by source",
			},
			[]string{"source"},
		)
		anomaliesTotal = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "anomalies_injected_total",
				Help: "Synthetic anomalies injected into generated telemetry",
			},
		)
		ticksTotal = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "ticks_total",
				Help: "Live-update ticks executed",
			},
		)
		tickDuration = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "tick_duration_seconds",
				Help:    "Tick handler duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		)
		alertEventsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "alert_events_total",
				Help: "Alert lifecycle events by type and severity",
			},
			[]string{"type", "severity"},
		)
		openAlerts = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: metricPrefix + "open_alerts",
				Help: "Unresolved alerts by severity",
			},
			[]string{"severity"},
		)
		assetHealth = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: metricPrefix + "asset_health_score",
				Help: "Derived asset health score (25-100)",
			},
			[]string{"asset_id", "asset_tag"},
		)

		collectors := []prometheus.Collector{
			pointsGenerated, anomaliesTotal, ticksTotal, tickDuration,
			alertEventsTotal, openAlerts, assetHealth,
		}
		for _, c := range collectors {
			if err := prometheus.Register(c); err != nil {
				if logger != nil {
					logger.Printf("metrics register error: %v", err)
				}
			}
		}
	})
}

// IncPointsGenerated counts generated telemetry points ("live" or "backfill").
func IncPointsGenerated(source string, n int) {
	if pointsGenerated == nil || n <= 0 {
		return
	}
	pointsGenerated.WithLabelValues(source).Add(float64(n))
}

// IncAnomaly counts one injected anomaly.
func IncAnomaly() {
	if anomaliesTotal == nil {
		return
	}
	anomaliesTotal.Inc()
}

// ObserveTick records one completed tick.
func ObserveTick(d time.Duration) {
	if ticksTotal == nil {
		return
	}
	ticksTotal.Inc()
	tickDuration.Observe(d.Seconds())
}

// IncAlertEvent counts an alert lifecycle event.
func IncAlertEvent(eventType, severity string) {
	if alertEventsTotal == nil {
		return
	}
	alertEventsTotal.WithLabelValues(eventType, severity).Inc()
}

// SetOpenAlerts publishes the unresolved alert count for a severity.
func SetOpenAlerts(severity string, count int) {
	if openAlerts == nil {
		return
	}
	openAlerts.WithLabelValues(severity).Set(float64(count))
}

// SetAssetHealth publishes the derived health score for an asset.
func SetAssetHealth(assetID, assetTag string, score int) {
	if assetHealth == nil {
		return
	}
	assetHealth.WithLabelValues(assetID, assetTag).Set(float64(score))
}
