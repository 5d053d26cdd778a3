package application

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	alerts "hvacfleet/internal/alerts/domain"
	alertmemory "hvacfleet/internal/alerts/infrastructure/memory"
	catalog "hvacfleet/internal/catalog/domain"
	"hvacfleet/internal/health"
	"hvacfleet/internal/observability/metrics"
)

const (
	staleAfter    = 5 * time.Minute
	lowAlertTTL   = 24 * time.Hour
	autoAckAfter  = 2 * time.Hour
	dueSoonFactor = 0.85
)

const (
	RuleSensorOffline      = "sensor-offline"
	RuleStaleData          = "stale-data"
	RuleMaintenanceOverdue = "maintenance-overdue"
	RuleMaintenanceDue     = "maintenance-due-soon"
)

const (
	EventRaised   = "raised"
	EventResolved = "resolved"
	EventExpired  = "expired"
)

// Clock provides time.
type Clock interface {
	Now() time.Time
}

// AlertEvent is a lifecycle transition handed to notifiers.
type AlertEvent struct {
	Type  string
	Alert *alerts.Alert
}

// Notifier receives alert lifecycle events. Implementations must tolerate
// being called from the tick path and return quickly.
type Notifier interface {
	Notify(ctx context.Context, event AlertEvent)
}

// Service evaluates sensor state against alert rules once per tick and owns
// the alert lifecycle: raise, dedup, supersession, auto-ack and expiry.
type Service struct {
	store    *alertmemory.Store
	clock    Clock
	notifier Notifier
}

// ServiceOption customizes the alert service.
type ServiceOption func(*Service)

// WithClock assigns a clock.
func WithClock(clock Clock) ServiceOption {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithNotifier attaches a lifecycle event notifier.
func WithNotifier(n Notifier) ServiceOption {
	return func(s *Service) {
		s.notifier = n
	}
}

// NewService constructs an alert service.
func NewService(store *alertmemory.Store, opts ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, errors.New("alerts: nil store")
	}
	s := &Service{store: store, clock: systemClock{}}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Store exposes the underlying alert store to the engine's read side.
func (s *Service) Store() *alertmemory.Store { return s.store }

// EvaluateAsset runs the per-sensor threshold rules for one asset.
// A missing or NaN reading skips that sensor for this tick.
func (s *Service) EvaluateAsset(asset *catalog.Asset, sensors []*catalog.Sensor, now time.Time) {
	for _, sn := range sensors {
		if !sn.Online {
			s.raise(asset, sn.Kind, alerts.SeverityMedium, RuleSensorOffline,
				fmt.Sprintf("%s (%s) is offline", sn.Tag, sn.Kind), now)
			continue
		}
		r := sn.LastReading
		if r == nil || math.IsNaN(r.Value) || r.TS.IsZero() {
			continue
		}
		if now.Sub(r.TS) > staleAfter {
			s.raise(asset, sn.Kind, alerts.SeverityLow, RuleStaleData,
				fmt.Sprintf("%s reading is %s old (limit %s)", sn.Tag, now.Sub(r.TS).Round(time.Second), staleAfter), now)
			continue
		}
		severity, rule, message, ok := evaluateReading(asset, sn, r.Value)
		if ok {
			s.raise(asset, sn.Kind, severity, rule, message, now)
		}
	}
}

// MaintenanceSweep raises interval alerts using the same constants the
// health scorer applies.
func (s *Service) MaintenanceSweep(asset *catalog.Asset, lastMaintenance time.Time, now time.Time) {
	if lastMaintenance.IsZero() {
		return
	}
	interval := health.MaintenanceInterval(asset.Kind)
	since := now.Sub(lastMaintenance)
	sinceDays := int(since.Hours() / 24)
	intervalDays := int(interval.Hours() / 24)
	switch {
	case since > interval:
		s.raise(asset, "", alerts.SeverityMedium, RuleMaintenanceOverdue,
			fmt.Sprintf("maintenance overdue: %d days since last service (interval %d days)", sinceDays, intervalDays), now)
	case since > time.Duration(dueSoonFactor*float64(interval)):
		s.raise(asset, "", alerts.SeverityLow, RuleMaintenanceDue,
			fmt.Sprintf("maintenance due soon: %d days since last service (interval %d days)", sinceDays, intervalDays), now)
	}
}

// Housekeeping applies the time-based transitions: Low alerts expire after
// 24 hours, unacknowledged alerts are auto-acknowledged after 2 hours.
// Acknowledgment and resolution stay independent, so the auto-ack pass also
// covers records already resolved, e.g. by supersession.
func (s *Service) Housekeeping(now time.Time) {
	for _, a := range s.store.Open() {
		if a.Severity == alerts.SeverityLow && now.Sub(a.CreatedAt) > lowAlertTTL {
			s.store.MarkResolved(a, now)
			metrics.IncAlertEvent("expired", string(a.Severity))
			s.notify(EventExpired, a)
		}
	}
	for _, a := range s.store.Unacknowledged() {
		if now.Sub(a.CreatedAt) > autoAckAfter {
			s.store.MarkAcknowledged(a, now)
			metrics.IncAlertEvent("auto_acknowledged", string(a.Severity))
		}
	}
}

// Acknowledge marks an alert acknowledged.
func (s *Service) Acknowledge(id string) (*alerts.Alert, error) {
	a, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if !a.Acknowledged {
		s.store.MarkAcknowledged(a, s.clock.Now().UTC())
		metrics.IncAlertEvent("acknowledged", string(a.Severity))
	}
	return a, nil
}

// Resolve marks an alert resolved.
func (s *Service) Resolve(id string) (*alerts.Alert, error) {
	a, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if !a.Resolved {
		s.store.MarkResolved(a, s.clock.Now().UTC())
		metrics.IncAlertEvent("resolved", string(a.Severity))
		s.notify(EventResolved, a)
	}
	return a, nil
}

// raise creates an alert unless the same (asset, kind, severity) condition is
// already open, then resolves open alerts for the same condition at any other
// severity. Only one severity tier stays active per condition.
func (s *Service) raise(asset *catalog.Asset, kind catalog.SensorKind, severity alerts.Severity, rule, message string, now time.Time) {
	id := alerts.BuildID(asset.ID, kind, severity)
	if s.store.FindOpen(id) != nil {
		return
	}
	a := &alerts.Alert{
		ID:         id,
		AssetID:    asset.ID,
		AssetTag:   asset.Tag,
		Severity:   severity,
		SensorKind: kind,
		Message:    message,
		Rule:       rule,
		CreatedAt:  now,
	}
	for _, open := range s.store.OpenByAsset(asset.ID) {
		if open.SensorKind == kind && open.Severity != severity {
			s.store.MarkResolved(open, now)
			metrics.IncAlertEvent("superseded", string(open.Severity))
		}
	}
	s.store.Insert(a)
	metrics.IncAlertEvent("raised", string(severity))
	s.notify(EventRaised, a)
}

func (s *Service) notify(eventType string, a *alerts.Alert) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(context.Background(), AlertEvent{Type: eventType, Alert: a})
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }
