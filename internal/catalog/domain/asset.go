package catalog

import "time"

// AssetKind identifies the equipment class of an asset.
type AssetKind string

const (
	KindAirHandler   AssetKind = "air_handler"
	KindChiller      AssetKind = "chiller"
	KindVRF          AssetKind = "vrf"
	KindRooftopUnit  AssetKind = "rooftop_unit"
	KindBoiler       AssetKind = "boiler"
	KindCoolingTower AssetKind = "cooling_tower"
)

// AssetStatus is the derived operational state of an asset.
type AssetStatus string

const (
	StatusOK          AssetStatus = "ok"
	StatusMaintenance AssetStatus = "maintenance"
	StatusStopped     AssetStatus = "stopped"
	StatusAlert       AssetStatus = "alert"
)

// Asset is one physical piece of HVAC equipment. HealthScore, Status and
// PowerConsumption are derived every tick; everything else is fixed at
// catalog initialization.
type Asset struct {
	ID               string            `json:"id"`
	Tag              string            `json:"tag"`
	Kind             AssetKind         `json:"kind"`
	Location         string            `json:"location"`
	HealthScore      int               `json:"health_score"`
	Status           AssetStatus       `json:"status"`
	OperatingHours   float64           `json:"operating_hours"`
	LastMaintenance  time.Time         `json:"last_maintenance"`
	Specifications   map[string]string `json:"specifications,omitempty"`
	PowerConsumption float64           `json:"power_consumption"`
}
