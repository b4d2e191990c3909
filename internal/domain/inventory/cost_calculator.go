package inventory

import "github.com/shopspring/decimal"

// AverageCost implements the weighted average cost rule (domain service).
// NewCost = ((CurrentStock * CurrentCost) + (QtyIn * UnitCostIn)) / (CurrentStock + QtyIn)
func AverageCost(currentStock, currentCost, qtyIn, unitCostIn decimal.Decimal) decimal.Decimal {
	sum := currentStock.Add(qtyIn)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := currentStock.Mul(currentCost).Add(qtyIn.Mul(unitCostIn))
	return num.Div(sum)
}
