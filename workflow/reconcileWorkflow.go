package workflow

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/sellerdesk/recon_backend/config"
	"github.com/sellerdesk/recon_backend/models"
	"github.com/sellerdesk/recon_backend/utils"
)

// ReconcileConfig carries the explicit knobs for one engine run. Passed in
// by the caller rather than read from ambient state so two runs with the
// same inputs are the same run.
type ReconcileConfig struct {
	// FallbackProductCost is used for orders whose SKU is missing from the
	// cost sheet (or that have no SKU at all). Default 0.
	FallbackProductCost decimal.Decimal
	// PackagingCost is charged on every order regardless of status.
	// Default 5.
	PackagingCost decimal.Decimal
}

// ReconcileInput is everything one run consumes. Tables arrive already
// parsed; the engine performs no file I/O.
type ReconcileInput struct {
	Orders    *models.Table
	Payments  []*models.Workbook
	CostSheet *models.Table
}

// ReconcileResult is the full output of one run: the reconciled table, the
// headline summary, and any non-fatal warnings collected along the way.
type ReconcileResult struct {
	Records  []models.ReconciledRecord
	Summary  models.ReconcileSummary
	Warnings []string
}

// ProcessReconciliationWorkflow runs the whole engine: column resolution,
// cost map, payment aggregation, the order/payment left join, status
// resolution, cost and profit calculation, and metrics. One invocation is
// single-threaded, in-memory and stateless; it either returns a complete
// result or a single error with no partial output.
func ProcessReconciliationWorkflow(logger *logrus.Logger, cfg ReconcileConfig, input ReconcileInput) (result *ReconcileResult, err error) {
	// Catch-all: a bad upload must surface as one error, never a crash.
	defer func() {
		if r := recover(); r != nil {
			config.LogError(logger, "reconcileWorkflow.go", "ProcessReconciliationWorkflow", "recovered panic", nil, fmt.Errorf("%v", r))
			result = nil
			err = fmt.Errorf("reconciliation failed: %v", r)
		}
	}()

	if input.Orders == nil {
		return nil, ErrMissingOrderIDColumn
	}

	orderIDCol := FindColumn(input.Orders.Headers, orderIDKeywords)
	if orderIDCol < 0 {
		config.LogError(logger, "reconcileWorkflow.go", "ProcessReconciliationWorkflow", "resolving order id column", input.Orders.Headers, ErrMissingOrderIDColumn)
		return nil, ErrMissingOrderIDColumn
	}
	skuCol := FindColumn(input.Orders.Headers, orderSKUKeywords)
	statusCol := FindColumn(input.Orders.Headers, orderStatusKeywords)
	qtyCol := FindColumn(input.Orders.Headers, quantityKeywords)

	costMap, warnings := BuildCostMap(logger, input.CostSheet)
	payments := AggregatePayments(logger, input.Payments)

	records := make([]models.ReconciledRecord, 0, input.Orders.RowCount())
	for i := 0; i < input.Orders.RowCount(); i++ {
		record := reconcileOrderRow(cfg, input.Orders, i, orderIDCol, skuCol, statusCol, qtyCol, costMap, payments)
		records = append(records, record)
	}

	summary := SummarizeMetrics(records)
	summary.CostEntriesLoaded = len(costMap)

	logger.WithFields(logrus.Fields{
		"orders":           summary.TotalOrders,
		"total_settlement": summary.TotalSettlement.String(),
		"total_net_profit": summary.TotalNetProfit.String(),
		"warnings":         len(warnings),
	}).Info("[reconcile.run]")

	return &ReconcileResult{
		Records:  records,
		Summary:  summary,
		Warnings: warnings,
	}, nil
}

// reconcileOrderRow computes one output row. Orders without a matching
// payment group settle at zero and fall back to the order-side status.
func reconcileOrderRow(cfg ReconcileConfig, orders *models.Table, row, idCol, skuCol, statusCol, qtyCol int, costMap CostMap, payments map[string]*PaymentSummary) models.ReconciledRecord {
	orderID := orders.Cell(row, idCol)

	settlement := decimal.Zero
	paymentStatus := ""
	hasPaymentStatus := false
	if p := payments[orderID]; p != nil {
		settlement = p.Amount
		paymentStatus = p.Status
		hasPaymentStatus = p.HasStatus
	}

	orderStatus := ""
	if statusCol >= 0 {
		orderStatus = orders.Cell(row, statusCol)
	}
	finalStatus := ResolveFinalStatus(paymentStatus, hasPaymentStatus, orderStatus)

	sku := ""
	unitCost := cfg.FallbackProductCost
	if skuCol >= 0 {
		sku = orders.Cell(row, skuCol)
		unitCost = UnitCost(costMap, sku, cfg.FallbackProductCost)
	}

	quantity := decimal.NewFromInt(1)
	if qtyCol >= 0 {
		quantity = utils.CoerceQuantity(orders.Cell(row, qtyCol))
	}

	productCost, netProfit := ComputeCosts(settlement, unitCost, quantity, cfg.PackagingCost, finalStatus)

	return models.ReconciledRecord{
		OrderID:          orderID,
		FinalStatus:      finalStatus,
		SKU:              sku,
		SettlementAmount: settlement,
		UnitCost:         unitCost,
		ProductCost:      productCost,
		PackagingCost:    cfg.PackagingCost,
		NetProfit:        netProfit,
	}
}
