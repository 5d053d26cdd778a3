package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	alerts "hvacfleet/internal/alerts/domain"
	catalog "hvacfleet/internal/catalog/domain"
)

// BuildFleetPDF renders a fleet health snapshot with the alert history.
func BuildFleetPDF(assets []*catalog.Asset, history []*alerts.Alert, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "HVAC Fleet Health Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", generatedAt.Format(time.RFC3339)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(30, 6, "Asset", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Kind", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Health", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Status", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Hours", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Energy (kWh)", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, a := range assets {
		pdf.CellFormat(30, 6, a.Tag, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, string(a.Kind), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", a.HealthScore), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, string(a.Status), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.0f", a.OperatingHours), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.1f", a.PowerConsumption), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, "Alert History")
	pdf.Ln(7)
	pdf.CellFormat(30, 6, "Asset", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Severity", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Rule", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Raised", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Resolved", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, al := range history {
		resolved := "open"
		if al.Resolved {
			resolved = "yes"
		}
		pdf.CellFormat(30, 6, al.AssetTag, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, string(al.Severity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, al.Rule, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, al.CreatedAt.Format("2006-01-02 15:04"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, resolved, "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildFleetXLSX renders the same snapshot as a workbook: an assets sheet
// and an alerts sheet.
func BuildFleetXLSX(assets []*catalog.Asset, history []*alerts.Alert, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	assetsSheet := "assets"
	alertsSheet := "alerts"
	f.SetSheetName("Sheet1", assetsSheet)
	f.NewSheet(alertsSheet)

	headers := []string{"Tag", "Kind", "Location", "Health", "Status", "Operating Hours", "Energy (kWh)", "Last Maintenance"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(assetsSheet, cell, h)
	}
	for i, a := range assets {
		row := i + 2
		_ = f.SetCellValue(assetsSheet, fmt.Sprintf("A%d", row), a.Tag)
		_ = f.SetCellValue(assetsSheet, fmt.Sprintf("B%d", row), string(a.Kind))
		_ = f.SetCellValue(assetsSheet, fmt.Sprintf("C%d", row), a.Location)
		_ = f.SetCellValue(assetsSheet, fmt.Sprintf("D%d", row), a.HealthScore)
		_ = f.SetCellValue(assetsSheet, fmt.Sprintf("E%d", row), string(a.Status))
		_ = f.SetCellValue(assetsSheet, fmt.Sprintf("F%d", row), a.OperatingHours)
		_ = f.SetCellValue(assetsSheet, fmt.Sprintf("G%d", row), a.PowerConsumption)
		_ = f.SetCellValue(assetsSheet, fmt.Sprintf("H%d", row), a.LastMaintenance.Format("2006-01-02"))
	}

	alertHeaders := []string{"Asset", "Severity", "Rule", "Message", "Raised", "Acknowledged", "Resolved"}
	for i, h := range alertHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(alertsSheet, cell, h)
	}
	for i, al := range history {
		row := i + 2
		_ = f.SetCellValue(alertsSheet, fmt.Sprintf("A%d", row), al.AssetTag)
		_ = f.SetCellValue(alertsSheet, fmt.Sprintf("B%d", row), string(al.Severity))
		_ = f.SetCellValue(alertsSheet, fmt.Sprintf("C%d", row), al.Rule)
		_ = f.SetCellValue(alertsSheet, fmt.Sprintf("D%d", row), al.Message)
		_ = f.SetCellValue(alertsSheet, fmt.Sprintf("E%d", row), al.CreatedAt.Format(time.RFC3339))
		_ = f.SetCellValue(alertsSheet, fmt.Sprintf("F%d", row), al.Acknowledged)
		_ = f.SetCellValue(alertsSheet, fmt.Sprintf("G%d", row), al.Resolved)
	}

	_ = f.SetCellValue(assetsSheet, "J1", "Generated")
	_ = f.SetCellValue(assetsSheet, "K1", generatedAt.Format(time.RFC3339))

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
