package workflow

import "testing"

func TestResolveFinalStatus_PaymentSideWins(t *testing.T) {
	// The settlement report reflects what actually happened; it beats the
	// order file even when the two disagree.
	got := ResolveFinalStatus("Return", true, "Delivered")
	if got != "return" {
		t.Fatalf("payment status must win and be case-folded, got %q", got)
	}
}

func TestResolveFinalStatus_OrderSideFallback(t *testing.T) {
	if got := ResolveFinalStatus("", false, "Shipped"); got != "shipped" {
		t.Fatalf("expected order-side fallback, got %q", got)
	}
}

func TestResolveFinalStatus_Unknown(t *testing.T) {
	if got := ResolveFinalStatus("", false, ""); got != StatusUnknown {
		t.Fatalf("expected %q, got %q", StatusUnknown, got)
	}
	// Whitespace-only statuses count as absent.
	if got := ResolveFinalStatus("  ", true, "   "); got != StatusUnknown {
		t.Fatalf("expected %q for blank statuses, got %q", StatusUnknown, got)
	}
}

func TestResolveFinalStatus_IsTotal(t *testing.T) {
	inputs := []struct {
		p    string
		hasP bool
		o    string
	}{
		{"", false, ""},
		{"RTO", true, ""},
		{"", true, "Cancelled"},
		{"Exchange", true, "Delivered"},
	}
	for _, in := range inputs {
		if got := ResolveFinalStatus(in.p, in.hasP, in.o); got == "" {
			t.Fatalf("ResolveFinalStatus(%q,%v,%q) returned empty string", in.p, in.hasP, in.o)
		}
	}
}
