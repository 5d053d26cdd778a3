package notify

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"strings"
	"sync"
	"time"

	alertapp "hvacfleet/internal/alerts/application"
	alerts "hvacfleet/internal/alerts/domain"
)

// Clock provides time for cooldown bookkeeping.
type Clock interface {
	Now() time.Time
}

type sendRecord struct {
	at   time.Time
	hash string
}

// Notifier renders alert events and delivers them through a channel, with
// per-event cooldown and suppression of identical repeats.
type Notifier struct {
	channel      Channel
	template     *Template
	clock        Clock
	minSeverity  alerts.Severity
	cooldown     time.Duration
	dedupeWindow time.Duration

	mu   sync.Mutex
	sent map[string]sendRecord
}

// Option configures the notifier.
type Option func(*Notifier)

// WithClock overrides the default clock.
func WithClock(clock Clock) Option {
	return func(n *Notifier) {
		if clock != nil {
			n.clock = clock
		}
	}
}

// WithMinSeverity drops events below the given severity.
func WithMinSeverity(severity alerts.Severity) Option {
	return func(n *Notifier) {
		n.minSeverity = severity
	}
}

// WithCooldown sets a minimum interval between notifications for the same
// alert and event type.
func WithCooldown(interval time.Duration) Option {
	return func(n *Notifier) {
		if interval > 0 {
			n.cooldown = interval
		}
	}
}

// WithDedupeWindow suppresses identical notifications within the window.
func WithDedupeWindow(window time.Duration) Option {
	return func(n *Notifier) {
		if window > 0 {
			n.dedupeWindow = window
		}
	}
}

// NewNotifier constructs an alert notifier.
func NewNotifier(channel Channel, template *Template, opts ...Option) (*Notifier, error) {
	if channel == nil {
		return nil, errors.New("alert notifier: nil channel")
	}
	if template == nil {
		defaultTemplate, err := NewTemplate("")
		if err != nil {
			return nil, err
		}
		template = defaultTemplate
	}
	n := &Notifier{
		channel:     channel,
		template:    template,
		clock:       systemClock{},
		minSeverity: alerts.SeverityLow,
		sent:        make(map[string]sendRecord),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// Notify implements alertapp.Notifier.
func (n *Notifier) Notify(ctx context.Context, event alertapp.AlertEvent) {
	if n == nil || n.channel == nil || event.Alert == nil {
		return
	}
	a := event.Alert
	if a.Severity.Rank() < n.minSeverity.Rank() {
		return
	}
	content, err := n.template.Render(TemplateData{
		Asset:      a.AssetTag,
		AssetID:    a.AssetID,
		Severity:   string(a.Severity),
		Rule:       a.Rule,
		Message:    a.Message,
		RaisedAt:   a.CreatedAt.UTC().Format(time.RFC3339),
		Event:      event.Type,
		EventLabel: eventLabel(event.Type),
		Suggestion: suggestionFor(a.Severity),
	})
	if err != nil {
		return
	}
	if !n.shouldSend(a.ID, event.Type, content) {
		return
	}
	if err := n.channel.Send(ctx, content); err != nil {
		return
	}
	n.markSent(a.ID, event.Type, content)
}

func eventLabel(event string) string {
	switch event {
	case alertapp.EventRaised:
		return "Raised"
	case alertapp.EventResolved:
		return "Resolved"
	case alertapp.EventExpired:
		return "Expired"
	default:
		return event
	}
}

func suggestionFor(severity alerts.Severity) string {
	switch severity {
	case alerts.SeverityCritical, alerts.SeverityHigh:
		return "Investigate immediately and mitigate risk."
	case alerts.SeverityMedium:
		return "Verify the condition and take action if needed."
	default:
		return "Monitor the condition."
	}
}

func (n *Notifier) shouldSend(alertID, eventType, content string) bool {
	if n.cooldown <= 0 && n.dedupeWindow <= 0 {
		return true
	}
	key := notificationKey(alertID, eventType)
	now := n.clock.Now().UTC()
	hash := hashContent(content)

	n.mu.Lock()
	record, ok := n.sent[key]
	n.mu.Unlock()
	if !ok {
		return true
	}
	if n.cooldown > 0 && now.Sub(record.at) < n.cooldown {
		return false
	}
	if n.dedupeWindow > 0 && record.hash == hash && now.Sub(record.at) < n.dedupeWindow {
		return false
	}
	return true
}

func (n *Notifier) markSent(alertID, eventType, content string) {
	key := notificationKey(alertID, eventType)
	n.mu.Lock()
	n.sent[key] = sendRecord{at: n.clock.Now().UTC(), hash: hashContent(content)}
	n.mu.Unlock()
}

func notificationKey(alertID, eventType string) string {
	return alertID + "|" + strings.TrimSpace(eventType)
}

func hashContent(content string) string {
	sum := sha1.Sum([]byte(content))
	return hex.EncodeToString(sum[:8])
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }
