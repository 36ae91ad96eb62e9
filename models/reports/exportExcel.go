package reports

import (
	"fmt"
	"io"
	"net/http"

	"github.com/xuri/excelize/v2"

	"github.com/sellerdesk/recon_backend/models"
)

const (
	reconciliationSheet = "Reconciliation"
	summarySheet        = "Summary"
)

// BuildReconciliationReport renders one engine run as an XLSX workbook:
// the full reconciled table on one sheet and the headline metrics on a
// second. Money cells are written as numbers so spreadsheet formulas work
// on the downloaded file.
func BuildReconciliationReport(records []models.ReconciledRecord, summary models.ReconcileSummary) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(reconciliationSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	// Add headers
	f.SetCellValue(reconciliationSheet, "A1", "Sub Order No")
	f.SetCellValue(reconciliationSheet, "B1", "Final Status")
	f.SetCellValue(reconciliationSheet, "C1", "SKU")
	f.SetCellValue(reconciliationSheet, "D1", "Settlement Amount")
	f.SetCellValue(reconciliationSheet, "E1", "Unit Cost")
	f.SetCellValue(reconciliationSheet, "F1", "Product Cost")
	f.SetCellValue(reconciliationSheet, "G1", "Packaging Cost")
	f.SetCellValue(reconciliationSheet, "H1", "Net Profit")

	// Add data
	for i, r := range records {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(reconciliationSheet, "A"+row, r.OrderID)
		f.SetCellValue(reconciliationSheet, "B"+row, r.FinalStatus)
		f.SetCellValue(reconciliationSheet, "C"+row, r.SKU)
		f.SetCellValue(reconciliationSheet, "D"+row, r.SettlementAmount.InexactFloat64())
		f.SetCellValue(reconciliationSheet, "E"+row, r.UnitCost.InexactFloat64())
		f.SetCellValue(reconciliationSheet, "F"+row, r.ProductCost.InexactFloat64())
		f.SetCellValue(reconciliationSheet, "G"+row, r.PackagingCost.InexactFloat64())
		f.SetCellValue(reconciliationSheet, "H"+row, r.NetProfit.InexactFloat64())
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}
	summaryRows := []struct {
		label string
		value interface{}
	}{
		{"Total Orders", summary.TotalOrders},
		{"Total Settlement", summary.TotalSettlement.InexactFloat64()},
		{"Total Product Cost", summary.TotalProductCost.InexactFloat64()},
		{"Net Profit / Loss", summary.TotalNetProfit.InexactFloat64()},
		{"Avg Profit per Order", summary.AvgProfitPerOrder.InexactFloat64()},
		{"Delivered", summary.DeliveredCount},
		{"Returned", summary.ReturnedCount},
		{"RTO", summary.RTOCount},
		{"Cancelled", summary.CancelledCount},
		{"Cost Entries Loaded", summary.CostEntriesLoaded},
	}
	for i, row := range summaryRows {
		f.SetCellValue(summarySheet, "A"+fmt.Sprint(i+1), row.label)
		f.SetCellValue(summarySheet, "B"+fmt.Sprint(i+1), row.value)
	}

	// excelize creates a default "Sheet1"; drop it so the report opens on
	// the reconciliation table.
	f.DeleteSheet("Sheet1")
	return f, nil
}

// WriteReconciliationReport writes the report workbook to w.
func WriteReconciliationReport(w io.Writer, records []models.ReconciledRecord, summary models.ReconcileSummary) error {
	f, err := BuildReconciliationReport(records, summary)
	if err != nil {
		return err
	}
	return f.Write(w)
}

// ServeReconciliationReport writes the report as a download response.
func ServeReconciliationReport(w http.ResponseWriter, filename string, records []models.ReconciledRecord, summary models.ReconcileSummary) error {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	return WriteReconciliationReport(w, records, summary)
}
