package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	alerts "hvacfleet/internal/alerts/domain"
	catalog "hvacfleet/internal/catalog/domain"
)

var reportNow = time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

func reportFixtures() ([]*catalog.Asset, []*alerts.Alert) {
	assets := []*catalog.Asset{
		{
			ID: "ahu-01", Tag: "AHU-01", Kind: catalog.KindAirHandler,
			Location: "roof north", HealthScore: 92, Status: catalog.StatusOK,
			OperatingHours: 12000, PowerConsumption: 5400,
			LastMaintenance: reportNow.AddDate(0, 0, -30),
		},
		{
			ID: "ch-01", Tag: "CH-01", Kind: catalog.KindChiller,
			Location: "plant room", HealthScore: 61, Status: catalog.StatusMaintenance,
			OperatingHours: 41000, PowerConsumption: 98000,
			LastMaintenance: reportNow.AddDate(0, 0, -170),
		},
	}
	history := []*alerts.Alert{
		{
			ID: "alert-1", AssetID: "ch-01", AssetTag: "CH-01",
			Severity: alerts.SeverityMedium, SensorKind: catalog.SensorVibration,
			Rule: "vibration", Message: "CH-01 vibration 4.80 mm/s exceeds 4.5 mm/s",
			CreatedAt: reportNow.Add(-2 * time.Hour),
		},
		{
			ID: "alert-2", AssetID: "ahu-01", AssetTag: "AHU-01",
			Severity: alerts.SeverityLow, SensorKind: catalog.SensorFilterDP,
			Rule: "filter-pressure", Message: "AHU-01 filter differential pressure 210.0 Pa exceeds 200 Pa",
			CreatedAt: reportNow.Add(-30 * time.Hour), Resolved: true,
			ResolvedAt: reportNow.Add(-5 * time.Hour),
		},
	}
	return assets, history
}

func TestBuildFleetPDF(t *testing.T) {
	assets, history := reportFixtures()
	data, err := BuildFleetPDF(assets, history, reportNow)
	if err != nil {
		t.Fatalf("BuildFleetPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a pdf, starts with %q", data[:min(8, len(data))])
	}
}

func TestBuildFleetXLSX(t *testing.T) {
	assets, history := reportFixtures()
	data, err := BuildFleetXLSX(assets, history, reportNow)
	if err != nil {
		t.Fatalf("BuildFleetXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	tag, err := f.GetCellValue("assets", "A2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if tag != "AHU-01" {
		t.Fatalf("assets sheet A2 = %q", tag)
	}
	sev, err := f.GetCellValue("alerts", "B2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if sev != "medium" {
		t.Fatalf("alerts sheet B2 = %q", sev)
	}
}
