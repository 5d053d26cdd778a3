package main

import (
	"log"
	"net/http"
	"os"
	"time"

	alertapp "hvacfleet/internal/alerts/application"
	alerts "hvacfleet/internal/alerts/domain"
	"hvacfleet/internal/alerts/notify"
	apihttp "hvacfleet/internal/api/http"
	"hvacfleet/internal/config"
	"hvacfleet/internal/engine"
	"hvacfleet/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger := log.New(os.Stdout, "", log.LstdFlags)

	metrics.Init(logger)

	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithBackfillDays(cfg.BackfillDays),
		engine.WithLiveWindow(time.Duration(cfg.LiveWindowHours) * time.Hour),
	}
	if cfg.Seed != 0 {
		opts = append(opts, engine.WithSeed(cfg.Seed))
	}
	if len(cfg.WebhookURLs) > 0 {
		notifiers := make([]alertapp.Notifier, 0, len(cfg.WebhookURLs))
		for _, url := range cfg.WebhookURLs {
			channel, err := notify.NewWebhookChannel(url)
			if err != nil {
				logger.Fatalf("webhook error: %v", err)
			}
			notifier, err := notify.NewNotifier(channel, nil,
				notify.WithMinSeverity(alerts.SeverityMedium),
				notify.WithCooldown(15*time.Minute),
				notify.WithDedupeWindow(time.Hour),
			)
			if err != nil {
				logger.Fatalf("notifier error: %v", err)
			}
			notifiers = append(notifiers, notifier)
		}
		if len(notifiers) == 1 {
			opts = append(opts, engine.WithAlertNotifier(notifiers[0]))
		} else {
			opts = append(opts, engine.WithAlertNotifier(notify.NewMultiNotifier(notifiers...)))
		}
	}
	eng, err := engine.New(opts...)
	if err != nil {
		logger.Fatalf("engine error: %v", err)
	}
	eng.SetScenario(cfg.Scenario)

	logger.Printf("backfilling %d days of telemetry", cfg.BackfillDays)
	eng.Backfill(time.Duration(cfg.BackfillIntervalMinutes) * time.Minute)

	if err := eng.StartLiveUpdates(time.Duration(cfg.TickPeriodSeconds) * time.Second); err != nil {
		logger.Fatalf("live updates error: %v", err)
	}
	defer eng.Stop()

	alertsHandler := apihttp.NewAlertsHandler(eng)
	reportHandler := apihttp.NewReportHandler(eng)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/assets", apihttp.NewAssetsHandler(eng))
	mux.Handle("/api/v1/sensors", apihttp.NewSensorsHandler(eng))
	mux.Handle("/api/v1/alerts", alertsHandler)
	mux.Handle("/api/v1/alerts/", alertsHandler)
	mux.Handle("/api/v1/telemetry", apihttp.NewTelemetryHandler(eng))
	mux.Handle("/api/v1/scenario", apihttp.NewScenarioHandler(eng))
	mux.Handle("/api/v1/reports/", reportHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(mux, logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
