package alerts

import (
	"crypto/sha1"
	"encoding/hex"
	"time"

	catalog "hvacfleet/internal/catalog/domain"
)

// Severity orders alert severities from Low to Critical.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank maps a severity to an ordinal for comparisons.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

// Alert is a detected rule violation. Records are never deleted, only marked
// resolved, so the full alert history stays queryable. Acknowledgment and
// resolution are independent.
type Alert struct {
	ID             string             `json:"id"`
	AssetID        string             `json:"asset_id"`
	AssetTag       string             `json:"asset_tag"`
	Severity       Severity           `json:"severity"`
	SensorKind     catalog.SensorKind `json:"sensor_kind,omitempty"`
	Message        string             `json:"message"`
	Rule           string             `json:"rule"`
	CreatedAt      time.Time          `json:"created_at"`
	Acknowledged   bool               `json:"acknowledged"`
	AcknowledgedAt time.Time          `json:"acknowledged_at,omitempty"`
	Resolved       bool               `json:"resolved"`
	ResolvedAt     time.Time          `json:"resolved_at,omitempty"`
}

// ConditionKey identifies the underlying condition regardless of severity.
func (a *Alert) ConditionKey() string {
	return a.AssetID + "|" + string(a.SensorKind)
}

// BuildID derives the alert id from the condition triple, so re-raising the
// same condition at the same severity never creates a duplicate while one
// is still unresolved.
func BuildID(assetID string, kind catalog.SensorKind, severity Severity) string {
	sum := sha1.Sum([]byte(assetID + "|" + string(kind) + "|" + string(severity)))
	return "alert-" + hex.EncodeToString(sum[:8])
}
