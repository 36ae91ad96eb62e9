package workflow

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/sellerdesk/recon_backend/config"
	"github.com/sellerdesk/recon_backend/models"
	"github.com/sellerdesk/recon_backend/utils"
)

// CostMap maps a normalized SKU to its unit cost.
type CostMap map[string]decimal.Decimal

// WarningCostColumnsUnresolved is surfaced when a cost sheet was supplied
// but its SKU/cost columns could not be identified. The run continues with
// the fallback product cost only.
const WarningCostColumnsUnresolved = "cost sheet must have recognizable SKU and Cost columns; using fallback product cost for all orders"

// BuildCostMap turns an optional cost sheet into a SKU -> unit cost lookup.
// A nil table yields an empty map with no warning. Unresolvable columns
// yield an empty map plus WarningCostColumnsUnresolved. Duplicate SKUs are
// last-write-wins; non-numeric costs coerce to zero.
func BuildCostMap(logger *logrus.Logger, table *models.Table) (CostMap, []string) {
	costMap := CostMap{}
	if table == nil {
		return costMap, nil
	}

	skuCol := FindColumn(table.Headers, costSKUKeywords)
	costCol := FindColumn(table.Headers, costValueKeywords)
	if skuCol < 0 || costCol < 0 {
		config.LogError(logger, "costmap.go", "BuildCostMap", "resolving cost sheet columns", table.Headers, errCostColumnsUnresolved)
		return costMap, []string{WarningCostColumnsUnresolved}
	}

	for i := range table.Rows {
		sku := utils.NormalizeSKU(table.Cell(i, skuCol))
		if sku == "" {
			continue
		}
		costMap[sku] = utils.CoerceDecimal(table.Cell(i, costCol))
	}

	logger.WithFields(logrus.Fields{
		"sheet":        table.Name,
		"cost_entries": len(costMap),
	}).Info("[reconcile.costmap]")
	return costMap, nil
}
