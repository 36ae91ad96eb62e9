package workflow

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/sellerdesk/recon_backend/models"
	"github.com/sellerdesk/recon_backend/utils"
)

// PaymentSummary is the per-order result of aggregating every payment row
// across all uploaded files and sheets.
type PaymentSummary struct {
	Amount decimal.Decimal
	// Status is the last non-empty payment-side status seen for the order.
	// HasStatus distinguishes "no payment status anywhere" from "".
	Status    string
	HasStatus bool
}

// paymentRow is one usable settlement line pulled out of a sheet.
type paymentRow struct {
	orderID string
	amount  decimal.Decimal
	status  string
}

// headerOutcome enumerates the two-attempt header strategy for payment
// sheets: some settlement exports put a banner row above the real header.
type headerOutcome int

const (
	headerAsIs headerOutcome = iota
	headerShifted
	headerUnusable
)

// resolvePaymentHeader decides whether a sheet's declared header row is
// usable, should be replaced by the first data row, or is beyond repair.
// The sheet is usable when some normalized header contains "suborder".
func resolvePaymentHeader(sheet *models.Table) (*models.Table, headerOutcome) {
	if FindColumn(sheet.Headers, paymentIDKeywords) >= 0 {
		return sheet, headerAsIs
	}
	// One-time fallback: only worth trying when at least one data row
	// remains after promoting a row to header.
	if sheet.RowCount() > 2 {
		shifted := sheet.ShiftHeader()
		if FindColumn(shifted.Headers, paymentIDKeywords) >= 0 {
			return shifted, headerShifted
		}
	}
	return nil, headerUnusable
}

// collectSheetPayments extracts usable settlement rows from one sheet.
// Returns nil when the sheet is skipped; a skipped sheet never affects
// its siblings.
func collectSheetPayments(sheet *models.Table) []paymentRow {
	if sheet == nil || sheet.RowCount() < 2 {
		return nil
	}

	usable, outcome := resolvePaymentHeader(sheet)
	if outcome == headerUnusable {
		return nil
	}

	idCol := FindColumn(usable.Headers, paymentIDKeywords)
	amountCol := FindColumn(usable.Headers, paymentAmountKeywords)
	if idCol < 0 || amountCol < 0 {
		return nil
	}
	statusCol := FindColumn(usable.Headers, paymentStatusKeywords)

	rows := make([]paymentRow, 0, usable.RowCount())
	for i := 0; i < usable.RowCount(); i++ {
		orderID := usable.Cell(i, idCol)
		if orderID == "" {
			continue
		}
		row := paymentRow{
			orderID: orderID,
			amount:  utils.CoerceDecimal(usable.Cell(i, amountCol)),
		}
		if statusCol >= 0 {
			row.status = usable.Cell(i, statusCol)
		}
		rows = append(rows, row)
	}
	return rows
}

// AggregatePayments merges any number of payment workbooks into one
// per-order settlement summary: amounts are summed across every file and
// sheet (partial settlements and adjustments are separate lines), and the
// last non-empty status wins. Malformed sheets are logged and skipped.
func AggregatePayments(logger *logrus.Logger, workbooks []*models.Workbook) map[string]*PaymentSummary {
	summary := map[string]*PaymentSummary{}
	sheetsUsed, sheetsSkipped := 0, 0

	for _, wb := range workbooks {
		if wb == nil {
			continue
		}
		for _, sheet := range wb.Sheets {
			rows := collectSheetPayments(sheet)
			if rows == nil {
				sheetsSkipped++
				continue
			}
			sheetsUsed++
			for _, row := range rows {
				s := summary[row.orderID]
				if s == nil {
					s = &PaymentSummary{Amount: decimal.Zero}
					summary[row.orderID] = s
				}
				s.Amount = s.Amount.Add(row.amount)
				if row.status != "" {
					s.Status = row.status
					s.HasStatus = true
				}
			}
		}
	}

	logger.WithFields(logrus.Fields{
		"sheets_used":    sheetsUsed,
		"sheets_skipped": sheetsSkipped,
		"orders":         len(summary),
	}).Info("[reconcile.payments]")
	return summary
}
