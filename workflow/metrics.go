package workflow

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sellerdesk/recon_backend/models"
)

// Status buckets for the headline counts. Counted independently: a status
// could in principle fall into more than one bucket, and no deduplication
// is performed across buckets. See the NOTE in profit.go about this
// taxonomy diverging from the cost-eligibility set.
var (
	deliveredStatusKeywords = []string{"delivered"}
	returnedStatusKeywords  = []string{"return", "customerreturn"}
	rtoStatusKeywords       = []string{"rto", "undelivered"}
	cancelledStatusKeywords = []string{"cancel"}
)

func statusMatchesAny(status string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(status, k) {
			return true
		}
	}
	return false
}

// SummarizeMetrics aggregates a reconciled table into the headline figures.
// Average profit is zero for an empty table.
func SummarizeMetrics(records []models.ReconciledRecord) models.ReconcileSummary {
	summary := models.ReconcileSummary{
		TotalOrders:       len(records),
		TotalSettlement:   decimal.Zero,
		TotalProductCost:  decimal.Zero,
		TotalNetProfit:    decimal.Zero,
		AvgProfitPerOrder: decimal.Zero,
	}

	for _, r := range records {
		summary.TotalSettlement = summary.TotalSettlement.Add(r.SettlementAmount)
		summary.TotalProductCost = summary.TotalProductCost.Add(r.ProductCost)
		summary.TotalNetProfit = summary.TotalNetProfit.Add(r.NetProfit)

		if statusMatchesAny(r.FinalStatus, deliveredStatusKeywords) {
			summary.DeliveredCount++
		}
		if statusMatchesAny(r.FinalStatus, returnedStatusKeywords) {
			summary.ReturnedCount++
		}
		if statusMatchesAny(r.FinalStatus, rtoStatusKeywords) {
			summary.RTOCount++
		}
		if statusMatchesAny(r.FinalStatus, cancelledStatusKeywords) {
			summary.CancelledCount++
		}
	}

	if summary.TotalOrders > 0 {
		summary.AvgProfitPerOrder = summary.TotalNetProfit.DivRound(decimal.NewFromInt(int64(summary.TotalOrders)), 4)
	}
	return summary
}
