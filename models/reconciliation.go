package models

import "github.com/shopspring/decimal"

// ReconciledRecord is one fully-computed row of the reconciliation output:
// one per order row, immutable once the engine returns it.
// net_profit = settlement_amount - product_cost - packaging_cost.
type ReconciledRecord struct {
	OrderID          string          `json:"order_id"`
	FinalStatus      string          `json:"final_status"`
	SKU              string          `json:"sku,omitempty"`
	SettlementAmount decimal.Decimal `json:"settlement_amount"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	ProductCost      decimal.Decimal `json:"product_cost"`
	PackagingCost    decimal.Decimal `json:"packaging_cost"`
	NetProfit        decimal.Decimal `json:"net_profit"`
}

// ReconcileSummary is the headline view over one reconciled table.
// The four status buckets are counted independently and are not guaranteed
// to be disjoint or exhaustive; that mirrors how sellers read the report.
type ReconcileSummary struct {
	TotalOrders       int             `json:"total_orders"`
	TotalSettlement   decimal.Decimal `json:"total_settlement"`
	TotalProductCost  decimal.Decimal `json:"total_product_cost"`
	TotalNetProfit    decimal.Decimal `json:"total_net_profit"`
	AvgProfitPerOrder decimal.Decimal `json:"avg_profit_per_order"`

	DeliveredCount int `json:"delivered_count"`
	ReturnedCount  int `json:"returned_count"`
	RTOCount       int `json:"rto_count"`
	CancelledCount int `json:"cancelled_count"`

	// CostEntriesLoaded reports how many distinct SKUs the cost sheet
	// contributed, so the caller can confirm the sheet was understood.
	CostEntriesLoaded int `json:"cost_entries_loaded"`
}
