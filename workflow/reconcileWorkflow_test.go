package workflow

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sellerdesk/recon_backend/models"
)

func sellerScenario() (ReconcileConfig, ReconcileInput) {
	cfg := ReconcileConfig{
		FallbackProductCost: decFromInt(20),
		PackagingCost:       decFromInt(5),
	}
	input := ReconcileInput{
		Orders: sheet("orders.csv",
			[]string{"Sub Order No", "Supplier SKU", "Quantity", "Order Status"},
			[]string{"A1", "shirt-red", "2", "Delivered"},
			[]string{"A2", "shirt-blue", "", "Cancelled"},
		),
		Payments: []*models.Workbook{
			workbook("payments.xlsx",
				sheet("Order Payments",
					[]string{"Sub Order No", "Final Settlement Amount"},
					[]string{"A1", "300"},
					[]string{"Z9", "50"},
				),
			),
		},
		CostSheet: sheet("costs.csv",
			[]string{"SKU", "Cost"},
			[]string{"shirt-red", "40"},
		),
	}
	return cfg, input
}

func TestProcessReconciliationWorkflow_EndToEnd(t *testing.T) {
	cfg, input := sellerScenario()

	result, err := ProcessReconciliationWorkflow(testLogger(), cfg, input)
	if err != nil {
		t.Fatalf("engine run failed: %v", err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("expected one record per order row, got %d", len(result.Records))
	}

	// A1: delivered, SKU in cost sheet at 40, qty 2, paid 300.
	a1 := result.Records[0]
	if a1.OrderID != "A1" {
		t.Fatalf("records must follow order-table row order, got %q first", a1.OrderID)
	}
	if a1.FinalStatus != "delivered" {
		t.Fatalf("A1 status = %q", a1.FinalStatus)
	}
	if !a1.SettlementAmount.Equal(decFromInt(300)) {
		t.Fatalf("A1 amount = %s", a1.SettlementAmount)
	}
	if !a1.ProductCost.Equal(decFromInt(80)) {
		t.Fatalf("A1 product cost = %s, want 80 (40 x 2)", a1.ProductCost)
	}
	if !a1.NetProfit.Equal(decFromInt(215)) {
		t.Fatalf("A1 net profit = %s, want 215", a1.NetProfit)
	}

	// A2: no payment row (amount 0), cancelled so no product cost, but
	// packaging still applies.
	a2 := result.Records[1]
	if a2.FinalStatus != "cancelled" {
		t.Fatalf("A2 status = %q", a2.FinalStatus)
	}
	if !a2.SettlementAmount.IsZero() {
		t.Fatalf("A2 amount = %s, want 0", a2.SettlementAmount)
	}
	if !a2.ProductCost.IsZero() {
		t.Fatalf("A2 product cost = %s, want 0", a2.ProductCost)
	}
	if !a2.NetProfit.Equal(decFromInt(-5)) {
		t.Fatalf("A2 net profit = %s, want -5", a2.NetProfit)
	}
	// A2's SKU is absent from the cost sheet: fallback unit cost recorded
	// even though no product cost was charged.
	if !a2.UnitCost.Equal(decFromInt(20)) {
		t.Fatalf("A2 unit cost = %s, want fallback 20", a2.UnitCost)
	}

	if result.Summary.TotalOrders != 2 {
		t.Fatalf("summary orders = %d", result.Summary.TotalOrders)
	}
	if result.Summary.CostEntriesLoaded != 1 {
		t.Fatalf("cost entries = %d", result.Summary.CostEntriesLoaded)
	}
	if !result.Summary.TotalNetProfit.Equal(decFromInt(210)) {
		t.Fatalf("summary net profit = %s, want 210", result.Summary.TotalNetProfit)
	}
}

func TestProcessReconciliationWorkflow_Idempotent(t *testing.T) {
	cfg, input := sellerScenario()

	first, err := ProcessReconciliationWorkflow(testLogger(), cfg, input)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := ProcessReconciliationWorkflow(testLogger(), cfg, input)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if !reflect.DeepEqual(first.Records, second.Records) {
		t.Fatalf("records differ between identical runs")
	}
	if !reflect.DeepEqual(first.Summary, second.Summary) {
		t.Fatalf("summaries differ between identical runs")
	}
}

func TestProcessReconciliationWorkflow_MissingOrderIDColumnIsFatal(t *testing.T) {
	cfg, input := sellerScenario()
	input.Orders = sheet("orders.csv",
		[]string{"Serial", "Item"},
		[]string{"1", "shirt"},
	)

	_, err := ProcessReconciliationWorkflow(testLogger(), cfg, input)
	if !errors.Is(err, ErrMissingOrderIDColumn) {
		t.Fatalf("expected ErrMissingOrderIDColumn, got %v", err)
	}

	input.Orders = nil
	if _, err := ProcessReconciliationWorkflow(testLogger(), cfg, input); !errors.Is(err, ErrMissingOrderIDColumn) {
		t.Fatalf("nil order table: expected ErrMissingOrderIDColumn, got %v", err)
	}
}

func TestProcessReconciliationWorkflow_PaymentStatusBeatsOrderStatus(t *testing.T) {
	cfg, input := sellerScenario()
	input.Payments = []*models.Workbook{
		workbook("payments.xlsx",
			sheet("s",
				[]string{"Sub Order No", "Final Settlement Amount", "Live Order Status"},
				[]string{"A1", "100", "Return"},
				[]string{"A2", "0", ""},
			),
		),
	}

	result, err := ProcessReconciliationWorkflow(testLogger(), cfg, input)
	if err != nil {
		t.Fatalf("engine run failed: %v", err)
	}
	if got := result.Records[0].FinalStatus; got != "return" {
		t.Fatalf("A1: payment status must beat order status, got %q", got)
	}
	// A2 had a payment row but no payment status: falls back to the order file.
	if got := result.Records[1].FinalStatus; got != "cancelled" {
		t.Fatalf("A2: expected order-side fallback, got %q", got)
	}
}

func TestProcessReconciliationWorkflow_NoSKUColumnUsesFallbackCost(t *testing.T) {
	cfg, input := sellerScenario()
	input.Orders = sheet("orders.csv",
		[]string{"Sub Order No", "Order Status"},
		[]string{"A1", "Delivered"},
	)
	input.CostSheet = nil

	result, err := ProcessReconciliationWorkflow(testLogger(), cfg, input)
	if err != nil {
		t.Fatalf("engine run failed: %v", err)
	}
	r := result.Records[0]
	if !r.UnitCost.Equal(decFromInt(20)) {
		t.Fatalf("unit cost = %s, want fallback 20", r.UnitCost)
	}
	// Delivered with qty defaulting to 1: product cost = fallback.
	if !r.ProductCost.Equal(decFromInt(20)) {
		t.Fatalf("product cost = %s, want 20", r.ProductCost)
	}
}

func TestProcessReconciliationWorkflow_CostWarningDoesNotAbort(t *testing.T) {
	cfg, input := sellerScenario()
	input.CostSheet = sheet("costs.csv",
		[]string{"Item", "Notes"},
		[]string{"shirt-red", "40"},
	)

	result, err := ProcessReconciliationWorkflow(testLogger(), cfg, input)
	if err != nil {
		t.Fatalf("cost warning must not abort the run: %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", result.Warnings)
	}
	// With no usable cost map, A1 takes the fallback: 20 x 2 = 40.
	if !result.Records[0].ProductCost.Equal(decFromInt(40)) {
		t.Fatalf("A1 product cost = %s, want 40", result.Records[0].ProductCost)
	}
}

func TestProcessReconciliationWorkflow_NoPaymentDataAtAll(t *testing.T) {
	cfg, input := sellerScenario()
	input.Payments = nil

	result, err := ProcessReconciliationWorkflow(testLogger(), cfg, input)
	if err != nil {
		t.Fatalf("engine run failed: %v", err)
	}
	for _, r := range result.Records {
		if !r.SettlementAmount.IsZero() {
			t.Fatalf("order %s: amount = %s, want 0", r.OrderID, r.SettlementAmount)
		}
	}
	// Statuses resolve from the order file when payments carry nothing.
	if result.Records[0].FinalStatus != "delivered" {
		t.Fatalf("status fallback broken: %q", result.Records[0].FinalStatus)
	}
}
