package workflow

import "strings"

// Column resolution for heterogeneous marketplace exports. Every source
// names its columns differently ("Sub Order No", "sub_order_no",
// "Sub.Order.No"), so matching happens on a normalized form and is driven
// by per-field keyword lists rather than exact names.

// Keyword sets per semantic field, in priority order.
var (
	orderIDKeywords       = []string{"suborder", "orderid"}
	orderSKUKeywords      = []string{"sku", "style", "productid"}
	orderStatusKeywords   = []string{"orderstatus", "status"}
	quantityKeywords      = []string{"quantity", "qty"}
	paymentIDKeywords     = []string{"suborder"}
	paymentAmountKeywords = []string{"finalsettlement", "settlementamount", "netamount"}
	paymentStatusKeywords = []string{"liveorderstatus", "orderstatus"}
	costSKUKeywords       = []string{"sku", "style", "design", "productid"}
	costValueKeywords     = []string{"cost", "price", "rate", "amount", "purchase"}
)

// NormalizeHeader case-folds a header name and strips spaces, underscores
// and periods, so "Final Settlement Amount" and "final_settlement_amount"
// resolve identically. Cell values are never normalized, only headers.
func NormalizeHeader(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "")
	name = strings.ReplaceAll(name, "_", "")
	name = strings.ReplaceAll(name, ".", "")
	return name
}

// NormalizeHeaders maps NormalizeHeader over a header row.
func NormalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = NormalizeHeader(h)
	}
	return out
}

// FindColumn returns the index of the first header, in original column
// order, whose normalized form contains any of the keywords as a substring.
// Returns -1 when no header matches. Pure: neither input is modified.
func FindColumn(headers []string, keywords []string) int {
	for i, h := range headers {
		n := NormalizeHeader(h)
		for _, k := range keywords {
			if strings.Contains(n, k) {
				return i
			}
		}
	}
	return -1
}
