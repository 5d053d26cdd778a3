package application

import (
	"context"
	"testing"
	"time"

	alerts "hvacfleet/internal/alerts/domain"
	alertmemory "hvacfleet/internal/alerts/infrastructure/memory"
	catalog "hvacfleet/internal/catalog/domain"
	telemetry "hvacfleet/internal/telemetry/domain"
)

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

var svcNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func svcAsset() *catalog.Asset {
	return &catalog.Asset{ID: "ahu-1", Tag: "AHU-1", Kind: catalog.KindAirHandler}
}

func filterAt(v float64, at time.Time) *catalog.Sensor {
	return &catalog.Sensor{
		ID: "fdp-1", Tag: "FDP-1", AssetID: "ahu-1",
		Kind: catalog.SensorFilterDP, Unit: "Pa", Online: true,
		LastReading: &catalog.Reading{Value: v, TS: at, Quality: telemetry.QualityGood},
	}
}

func newTestService(t *testing.T) (*Service, *alertmemory.Store) {
	t.Helper()
	store := alertmemory.NewStore()
	svc, err := NewService(store, WithClock(fixedClock{at: svcNow}))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, store
}

func TestThresholdRaisesMediumAlert(t *testing.T) {
	svc, store := newTestService(t)
	svc.EvaluateAsset(svcAsset(), []*catalog.Sensor{filterAt(260, svcNow)}, svcNow)

	open := store.Open()
	if len(open) != 1 {
		t.Fatalf("expected 1 open alert, got %d", len(open))
	}
	a := open[0]
	if a.Severity != alerts.SeverityMedium {
		t.Fatalf("expected medium, got %s", a.Severity)
	}
	if a.ID != alerts.BuildID("ahu-1", catalog.SensorFilterDP, alerts.SeverityMedium) {
		t.Fatalf("unexpected alert id %s", a.ID)
	}
}

func TestSameConditionDoesNotDuplicate(t *testing.T) {
	svc, store := newTestService(t)
	sensors := []*catalog.Sensor{filterAt(260, svcNow)}
	for i := 0; i < 5; i++ {
		svc.EvaluateAsset(svcAsset(), sensors, svcNow.Add(time.Duration(i)*5*time.Minute))
		sensors[0].LastReading.TS = svcNow.Add(time.Duration(i+1) * 5 * time.Minute)
	}
	if n := len(store.Open()); n != 1 {
		t.Fatalf("expected 1 open alert after repeated evaluation, got %d", n)
	}
}

func TestEscalationSupersedesLowerSeverity(t *testing.T) {
	svc, store := newTestService(t)
	svc.EvaluateAsset(svcAsset(), []*catalog.Sensor{filterAt(260, svcNow)}, svcNow)

	later := svcNow.Add(5 * time.Minute)
	svc.EvaluateAsset(svcAsset(), []*catalog.Sensor{filterAt(320, later)}, later)

	open := store.Open()
	if len(open) != 1 {
		t.Fatalf("expected 1 open alert after escalation, got %d", len(open))
	}
	if open[0].Severity != alerts.SeverityHigh {
		t.Fatalf("expected high, got %s", open[0].Severity)
	}

	medium, err := store.Get(alerts.BuildID("ahu-1", catalog.SensorFilterDP, alerts.SeverityMedium))
	if err != nil {
		t.Fatalf("medium alert missing from history: %v", err)
	}
	if !medium.Resolved {
		t.Fatalf("superseded medium alert not resolved")
	}
}

func TestOfflineSensorRaisesMedium(t *testing.T) {
	svc, store := newTestService(t)
	s := filterAt(150, svcNow)
	s.Online = false
	svc.EvaluateAsset(svcAsset(), []*catalog.Sensor{s}, svcNow)

	open := store.Open()
	if len(open) != 1 || open[0].Severity != alerts.SeverityMedium || open[0].Rule != RuleSensorOffline {
		t.Fatalf("expected one medium offline alert, got %+v", open)
	}
}

func TestStaleReadingRaisesLow(t *testing.T) {
	svc, store := newTestService(t)
	s := filterAt(150, svcNow.Add(-10*time.Minute))
	svc.EvaluateAsset(svcAsset(), []*catalog.Sensor{s}, svcNow)

	open := store.Open()
	if len(open) != 1 || open[0].Severity != alerts.SeverityLow || open[0].Rule != RuleStaleData {
		t.Fatalf("expected one low stale alert, got %+v", open)
	}
}

func TestMissingReadingSkipped(t *testing.T) {
	svc, store := newTestService(t)
	s := filterAt(150, svcNow)
	s.LastReading = nil
	svc.EvaluateAsset(svcAsset(), []*catalog.Sensor{s}, svcNow)
	if n := len(store.Open()); n != 0 {
		t.Fatalf("expected no alerts for missing reading, got %d", n)
	}
}

func TestMaintenanceSweep(t *testing.T) {
	svc, store := newTestService(t)
	asset := svcAsset() // air handler, 90 day interval

	svc.MaintenanceSweep(asset, svcNow.AddDate(0, 0, -80), svcNow)
	open := store.Open()
	if len(open) != 1 || open[0].Severity != alerts.SeverityLow || open[0].Rule != RuleMaintenanceDue {
		t.Fatalf("expected low due-soon alert at 80 days, got %+v", open)
	}

	svc.MaintenanceSweep(asset, svcNow.AddDate(0, 0, -100), svcNow)
	open = store.Open()
	if len(open) != 1 || open[0].Severity != alerts.SeverityMedium || open[0].Rule != RuleMaintenanceOverdue {
		t.Fatalf("expected the medium overdue alert to supersede, got %+v", open)
	}

	store2 := alertmemory.NewStore()
	svc2, _ := NewService(store2, WithClock(fixedClock{at: svcNow}))
	svc2.MaintenanceSweep(asset, time.Time{}, svcNow)
	if n := len(store2.Open()); n != 0 {
		t.Fatalf("expected no sweep alert without a maintenance date, got %d", n)
	}
}

func TestLowAlertExpiresAfterTTL(t *testing.T) {
	svc, store := newTestService(t)
	svc.EvaluateAsset(svcAsset(), []*catalog.Sensor{filterAt(150, svcNow.Add(-10*time.Minute))}, svcNow)
	if len(store.Open()) != 1 {
		t.Fatalf("setup: expected one low alert")
	}

	svc.Housekeeping(svcNow.Add(23 * time.Hour))
	if len(store.Open()) != 1 {
		t.Fatalf("low alert expired before its TTL")
	}

	svc.Housekeeping(svcNow.Add(25 * time.Hour))
	if len(store.Open()) != 0 {
		t.Fatalf("low alert not expired after 24h")
	}
}

func TestAutoAcknowledgeAfterTwoHours(t *testing.T) {
	svc, store := newTestService(t)
	svc.EvaluateAsset(svcAsset(), []*catalog.Sensor{filterAt(260, svcNow)}, svcNow)

	svc.Housekeeping(svcNow.Add(90 * time.Minute))
	if store.Open()[0].Acknowledged {
		t.Fatalf("acknowledged before the auto-ack deadline")
	}

	ackAt := svcNow.Add(3 * time.Hour)
	svc.Housekeeping(ackAt)
	a := store.Open()[0]
	if !a.Acknowledged {
		t.Fatalf("not auto-acknowledged after 2h")
	}
	if !a.AcknowledgedAt.Equal(ackAt) {
		t.Fatalf("acknowledged at %v, want %v", a.AcknowledgedAt, ackAt)
	}
	if a.Resolved {
		t.Fatalf("auto-ack must not resolve the alert")
	}
}

func TestAutoAcknowledgeCoversResolvedAlerts(t *testing.T) {
	svc, store := newTestService(t)
	svc.EvaluateAsset(svcAsset(), []*catalog.Sensor{filterAt(260, svcNow)}, svcNow)

	// Escalate after 10 minutes: the medium record resolves by supersession
	// long before its auto-ack deadline.
	later := svcNow.Add(10 * time.Minute)
	svc.EvaluateAsset(svcAsset(), []*catalog.Sensor{filterAt(320, later)}, later)

	ackAt := svcNow.Add(3 * time.Hour)
	svc.Housekeeping(ackAt)

	medium, err := store.Get(alerts.BuildID("ahu-1", catalog.SensorFilterDP, alerts.SeverityMedium))
	if err != nil {
		t.Fatalf("medium alert missing from history: %v", err)
	}
	if !medium.Resolved {
		t.Fatalf("superseded medium alert not resolved")
	}
	if !medium.Acknowledged {
		t.Fatalf("resolved alert not auto-acknowledged after 2h")
	}
	if !medium.AcknowledgedAt.Equal(ackAt) {
		t.Fatalf("acknowledged at %v, want %v", medium.AcknowledgedAt, ackAt)
	}
}

func TestManualAcknowledgeAndResolve(t *testing.T) {
	svc, store := newTestService(t)
	svc.EvaluateAsset(svcAsset(), []*catalog.Sensor{filterAt(260, svcNow)}, svcNow)
	id := store.Open()[0].ID

	a, err := svc.Acknowledge(id)
	if err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}
	if !a.Acknowledged || a.Resolved {
		t.Fatalf("expected acknowledged and unresolved, got %+v", a)
	}

	a, err = svc.Resolve(id)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !a.Resolved {
		t.Fatalf("expected resolved")
	}
	if len(store.Open()) != 0 {
		t.Fatalf("resolved alert still open")
	}

	if _, err := svc.Acknowledge("alert-unknown"); err != alerts.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

type recordingNotifier struct {
	events []AlertEvent
}

func (n *recordingNotifier) Notify(_ context.Context, event AlertEvent) {
	n.events = append(n.events, event)
}

func TestNotifierReceivesLifecycleEvents(t *testing.T) {
	store := alertmemory.NewStore()
	rec := &recordingNotifier{}
	svc, err := NewService(store, WithClock(fixedClock{at: svcNow}), WithNotifier(rec))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	svc.EvaluateAsset(svcAsset(), []*catalog.Sensor{filterAt(260, svcNow)}, svcNow)
	if len(rec.events) != 1 || rec.events[0].Type != EventRaised {
		t.Fatalf("expected one raised event, got %+v", rec.events)
	}

	if _, err := svc.Resolve(rec.events[0].Alert.ID); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(rec.events) != 2 || rec.events[1].Type != EventResolved {
		t.Fatalf("expected a resolved event, got %+v", rec.events)
	}

	// Low alerts report expiry when housekeeping retires them.
	svc.EvaluateAsset(svcAsset(), []*catalog.Sensor{filterAt(150, svcNow.Add(-10*time.Minute))}, svcNow)
	svc.Housekeeping(svcNow.Add(25 * time.Hour))
	last := rec.events[len(rec.events)-1]
	if last.Type != EventExpired {
		t.Fatalf("expected an expired event, got %s", last.Type)
	}
}

func TestReraiseAfterResolutionReusesID(t *testing.T) {
	svc, store := newTestService(t)
	svc.EvaluateAsset(svcAsset(), []*catalog.Sensor{filterAt(260, svcNow)}, svcNow)
	id := store.Open()[0].ID
	if _, err := svc.Resolve(id); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	later := svcNow.Add(10 * time.Minute)
	svc.EvaluateAsset(svcAsset(), []*catalog.Sensor{filterAt(260, later)}, later)

	open := store.Open()
	if len(open) != 1 {
		t.Fatalf("expected condition re-raised, got %d open", len(open))
	}
	if open[0].ID != id {
		t.Fatalf("re-raised alert changed id: %s vs %s", open[0].ID, id)
	}
	if !open[0].CreatedAt.Equal(later) {
		t.Fatalf("re-raised alert kept the old creation time")
	}
	if len(store.All()) != 2 {
		t.Fatalf("history should keep both records, got %d", len(store.All()))
	}
}
