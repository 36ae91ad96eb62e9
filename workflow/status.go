package workflow

import "strings"

// StatusUnknown is assigned when neither the payment files nor the order
// file carry a lifecycle status for an order.
const StatusUnknown = "unknown"

// ResolveFinalStatus picks the single authoritative lifecycle status for an
// order. The settlement report reflects what actually happened to the
// shipment, so a payment-side status always beats the order-side one; the
// order file is only a fallback. Total: never returns "".
func ResolveFinalStatus(paymentStatus string, hasPaymentStatus bool, orderStatus string) string {
	if hasPaymentStatus && strings.TrimSpace(paymentStatus) != "" {
		return strings.ToLower(paymentStatus)
	}
	if strings.TrimSpace(orderStatus) != "" {
		return strings.ToLower(orderStatus)
	}
	return StatusUnknown
}
