package workflow

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sellerdesk/recon_backend/utils"
)

// costEligibleStatuses: product cost is charged only when the item actually
// left the warehouse. Delivered, exchanged and returned orders all consumed
// inventory (a returned item is rarely resellable); cancelled and RTO
// orders never shipped or came back sealed.
//
// NOTE: this set is intentionally independent of the metrics buckets in
// metrics.go. "exchange" charges cost but has no bucket of its own; left
// as-is pending a decision on unifying the status taxonomy.
var costEligibleStatuses = []string{"delivered", "exchange", "return", "customer return"}

// CostEligible reports whether product cost applies for a final status.
// Substring match, checked once per order: a status like
// "customer return initiated" matches both "return" and "customer return"
// but must charge cost exactly once.
func CostEligible(finalStatus string) bool {
	for _, s := range costEligibleStatuses {
		if strings.Contains(finalStatus, s) {
			return true
		}
	}
	return false
}

// UnitCost looks up the order's normalized SKU in the cost map. Orders
// without a SKU column, or with a SKU the cost sheet does not know, use the
// configured fallback.
func UnitCost(costMap CostMap, sku string, fallback decimal.Decimal) decimal.Decimal {
	normalized := utils.NormalizeSKU(sku)
	if normalized == "" {
		return fallback
	}
	if cost, ok := costMap[normalized]; ok {
		return cost
	}
	return fallback
}

// ComputeCosts derives (product cost, net profit) for one order. Pure;
// no cross-order state.
//
//	product cost = unit cost x quantity, or 0 when the status is not
//	               cost-eligible
//	net profit   = settlement - product cost - packaging cost
func ComputeCosts(settlement, unitCost, quantity, packagingCost decimal.Decimal, finalStatus string) (productCost, netProfit decimal.Decimal) {
	productCost = decimal.Zero
	if CostEligible(finalStatus) {
		productCost = unitCost.Mul(quantity)
	}
	netProfit = settlement.Sub(productCost).Sub(packagingCost)
	return productCost, netProfit
}
