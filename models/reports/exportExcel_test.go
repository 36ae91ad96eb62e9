package reports

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/sellerdesk/recon_backend/models"
)

func sampleRun() ([]models.ReconciledRecord, models.ReconcileSummary) {
	records := []models.ReconciledRecord{
		{
			OrderID:          "A1",
			FinalStatus:      "delivered",
			SKU:              "shirt-red",
			SettlementAmount: decimal.NewFromInt(300),
			UnitCost:         decimal.NewFromInt(40),
			ProductCost:      decimal.NewFromInt(80),
			PackagingCost:    decimal.NewFromInt(5),
			NetProfit:        decimal.NewFromInt(215),
		},
		{
			OrderID:          "A2",
			FinalStatus:      "cancelled",
			SettlementAmount: decimal.Zero,
			UnitCost:         decimal.NewFromInt(20),
			ProductCost:      decimal.Zero,
			PackagingCost:    decimal.NewFromInt(5),
			NetProfit:        decimal.NewFromInt(-5),
		},
	}
	summary := models.ReconcileSummary{
		TotalOrders:       2,
		TotalSettlement:   decimal.NewFromInt(300),
		TotalProductCost:  decimal.NewFromInt(80),
		TotalNetProfit:    decimal.NewFromInt(210),
		AvgProfitPerOrder: decimal.NewFromInt(105),
		DeliveredCount:    1,
		CancelledCount:    1,
		CostEntriesLoaded: 1,
	}
	return records, summary
}

func TestWriteReconciliationReport_RoundTrip(t *testing.T) {
	records, summary := sampleRun()

	var buf bytes.Buffer
	if err := WriteReconciliationReport(&buf, records, summary); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("report does not reopen: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Reconciliation")
	if err != nil {
		t.Fatalf("missing reconciliation sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 data rows, got %d", len(rows))
	}
	if rows[0][0] != "Sub Order No" || rows[0][7] != "Net Profit" {
		t.Fatalf("header row = %v", rows[0])
	}
	if rows[1][0] != "A1" || rows[1][7] != "215" {
		t.Fatalf("A1 row = %v", rows[1])
	}
	if rows[2][1] != "cancelled" || rows[2][7] != "-5" {
		t.Fatalf("A2 row = %v", rows[2])
	}

	summaryRows, err := f.GetRows("Summary")
	if err != nil {
		t.Fatalf("missing summary sheet: %v", err)
	}
	if summaryRows[0][0] != "Total Orders" || summaryRows[0][1] != "2" {
		t.Fatalf("summary row 1 = %v", summaryRows[0])
	}

	// The default Sheet1 must be gone so the report opens on real data.
	for _, name := range f.GetSheetList() {
		if name == "Sheet1" {
			t.Fatalf("default Sheet1 should have been removed")
		}
	}
}
