package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	alertapp "hvacfleet/internal/alerts/application"
	alerts "hvacfleet/internal/alerts/domain"
)

type stubClock struct{ at time.Time }

func (c *stubClock) Now() time.Time { return c.at }

type recordingChannel struct {
	mu   sync.Mutex
	sent []string
}

func (c *recordingChannel) Send(_ context.Context, content string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, content)
	return nil
}

func (c *recordingChannel) messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.sent))
	copy(out, c.sent)
	return out
}

func testAlert() *alerts.Alert {
	return &alerts.Alert{
		ID: "alert-123", AssetID: "ahu-01", AssetTag: "AHU-01",
		Severity: alerts.SeverityHigh, SensorKind: "filter_differential_pressure",
		Rule:      "filter-pressure",
		Message:   "AHU-01 filter differential pressure 310.0 Pa exceeds 300 Pa",
		CreatedAt: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestNotifierRendersAndSends(t *testing.T) {
	channel := &recordingChannel{}
	n, err := NewNotifier(channel, nil)
	if err != nil {
		t.Fatalf("NewNotifier: %v", err)
	}

	n.Notify(context.Background(), alertapp.AlertEvent{Type: alertapp.EventRaised, Alert: testAlert()})

	sent := channel.messages()
	if len(sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sent))
	}
	for _, want := range []string{"[Alert Raised]", "AHU-01", "high", "filter-pressure", "Investigate immediately"} {
		if !strings.Contains(sent[0], want) {
			t.Fatalf("message missing %q:\n%s", want, sent[0])
		}
	}
}

func TestMinSeverityFilter(t *testing.T) {
	channel := &recordingChannel{}
	n, err := NewNotifier(channel, nil, WithMinSeverity(alerts.SeverityMedium))
	if err != nil {
		t.Fatalf("NewNotifier: %v", err)
	}

	low := testAlert()
	low.Severity = alerts.SeverityLow
	n.Notify(context.Background(), alertapp.AlertEvent{Type: alertapp.EventRaised, Alert: low})
	if len(channel.messages()) != 0 {
		t.Fatalf("low alert passed the severity filter")
	}

	n.Notify(context.Background(), alertapp.AlertEvent{Type: alertapp.EventRaised, Alert: testAlert()})
	if len(channel.messages()) != 1 {
		t.Fatalf("high alert did not pass the severity filter")
	}
}

func TestCooldownSuppressesRepeats(t *testing.T) {
	channel := &recordingChannel{}
	clock := &stubClock{at: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)}
	n, err := NewNotifier(channel, nil, WithClock(clock), WithCooldown(15*time.Minute))
	if err != nil {
		t.Fatalf("NewNotifier: %v", err)
	}

	event := alertapp.AlertEvent{Type: alertapp.EventRaised, Alert: testAlert()}
	n.Notify(context.Background(), event)
	n.Notify(context.Background(), event)
	if got := len(channel.messages()); got != 1 {
		t.Fatalf("cooldown violated, %d messages", got)
	}

	clock.at = clock.at.Add(20 * time.Minute)
	n.Notify(context.Background(), event)
	if got := len(channel.messages()); got != 2 {
		t.Fatalf("expected resend after cooldown, got %d", got)
	}

	// A different event type for the same alert is not in cooldown.
	n.Notify(context.Background(), alertapp.AlertEvent{Type: alertapp.EventResolved, Alert: testAlert()})
	if got := len(channel.messages()); got != 3 {
		t.Fatalf("resolve event suppressed, got %d", got)
	}
}

func TestDedupeWindowSuppressesIdenticalContent(t *testing.T) {
	channel := &recordingChannel{}
	clock := &stubClock{at: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)}
	n, err := NewNotifier(channel, nil, WithClock(clock), WithDedupeWindow(time.Hour))
	if err != nil {
		t.Fatalf("NewNotifier: %v", err)
	}

	event := alertapp.AlertEvent{Type: alertapp.EventRaised, Alert: testAlert()}
	n.Notify(context.Background(), event)
	clock.at = clock.at.Add(10 * time.Minute)
	n.Notify(context.Background(), event)
	if got := len(channel.messages()); got != 1 {
		t.Fatalf("identical content resent inside the window, %d messages", got)
	}

	changed := testAlert()
	changed.Message = "AHU-01 filter differential pressure 335.0 Pa exceeds 300 Pa"
	n.Notify(context.Background(), alertapp.AlertEvent{Type: alertapp.EventRaised, Alert: changed})
	if got := len(channel.messages()); got != 2 {
		t.Fatalf("changed content suppressed, got %d", got)
	}
}

func TestWebhookChannelPayload(t *testing.T) {
	received := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		var payload struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		received <- payload.Text
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	channel, err := NewWebhookChannel(server.URL)
	if err != nil {
		t.Fatalf("NewWebhookChannel: %v", err)
	}
	if err := channel.Send(context.Background(), "filter alert"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	select {
	case text := <-received:
		if text != "filter alert" {
			t.Fatalf("payload text %q", text)
		}
	case <-time.After(time.Second):
		t.Fatalf("webhook not delivered")
	}
}

func TestWebhookChannelErrors(t *testing.T) {
	if _, err := NewWebhookChannel(""); err == nil {
		t.Fatalf("expected error for empty url")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	channel, err := NewWebhookChannel(server.URL)
	if err != nil {
		t.Fatalf("NewWebhookChannel: %v", err)
	}
	if err := channel.Send(context.Background(), "x"); err == nil {
		t.Fatalf("expected error for non-2xx response")
	}
}

func TestMultiNotifierFansOut(t *testing.T) {
	a := &recordingChannel{}
	b := &recordingChannel{}
	na, _ := NewNotifier(a, nil)
	nb, _ := NewNotifier(b, nil)
	multi := NewMultiNotifier(na, nil, nb)

	multi.Notify(context.Background(), alertapp.AlertEvent{Type: alertapp.EventRaised, Alert: testAlert()})
	if len(a.messages()) != 1 || len(b.messages()) != 1 {
		t.Fatalf("fan-out failed: %d/%d", len(a.messages()), len(b.messages()))
	}
}
