package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the engine demo settings.
type Config struct {
	HTTPAddr                string   `yaml:"http_addr"`
	TickPeriodSeconds       int      `yaml:"tick_period_seconds"`
	BackfillDays            int      `yaml:"backfill_days"`
	BackfillIntervalMinutes int      `yaml:"backfill_interval_minutes"`
	LiveWindowHours         int      `yaml:"live_window_hours"`
	Scenario                string   `yaml:"scenario"`
	Seed                    int64    `yaml:"seed"`
	WebhookURLs             []string `yaml:"webhook_urls"`
}

// LoadConfig loads config from yaml (HVACFLEET_CONFIG) with env overrides.
func LoadConfig() (Config, error) {
	cfg := Config{
		HTTPAddr:                getenvDefault("HVACFLEET_HTTP_ADDR", ":8080"),
		TickPeriodSeconds:       300,
		BackfillDays:            30,
		BackfillIntervalMinutes: 5,
		LiveWindowHours:         24,
		Scenario:                "normal",
	}

	if path := os.Getenv("HVACFLEET_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	cfg.TickPeriodSeconds = getenvIntDefault("HVACFLEET_TICK_PERIOD_SECONDS", cfg.TickPeriodSeconds)
	cfg.BackfillDays = getenvIntDefault("HVACFLEET_BACKFILL_DAYS", cfg.BackfillDays)
	cfg.BackfillIntervalMinutes = getenvIntDefault("HVACFLEET_BACKFILL_INTERVAL_MINUTES", cfg.BackfillIntervalMinutes)
	cfg.LiveWindowHours = getenvIntDefault("HVACFLEET_LIVE_WINDOW_HOURS", cfg.LiveWindowHours)
	if scenario := os.Getenv("HVACFLEET_SCENARIO"); scenario != "" {
		cfg.Scenario = scenario
	}
	if urls := os.Getenv("HVACFLEET_WEBHOOK_URLS"); urls != "" {
		cfg.WebhookURLs = splitList(urls)
	}
	if seed := os.Getenv("HVACFLEET_SEED"); seed != "" {
		parsed, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return cfg, err
		}
		cfg.Seed = parsed
	}

	if cfg.TickPeriodSeconds <= 0 {
		return cfg, errors.New("config: tick period must be positive")
	}
	if cfg.BackfillDays < 0 {
		return cfg, errors.New("config: backfill days must not be negative")
	}
	if cfg.BackfillIntervalMinutes <= 0 {
		return cfg, errors.New("config: backfill interval must be positive")
	}
	return cfg, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvIntDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}
