package workflow

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sellerdesk/recon_backend/models"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func decFromInt(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func sheet(name string, headers []string, rows ...[]string) *models.Table {
	return &models.Table{Name: name, Headers: headers, Rows: rows}
}

func workbook(name string, sheets ...*models.Table) *models.Workbook {
	return &models.Workbook{Name: name, Sheets: sheets}
}
