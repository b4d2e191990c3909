package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/inventory"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAverageCost(t *testing.T) {
	cases := []struct {
		name                                         string
		currentStock, currentCost, qtyIn, unitCostIn string
		want                                         string
	}{
		{
			name:         "blends old and new cost by quantity",
			currentStock: "10", currentCost: "100",
			qtyIn: "10", unitCostIn: "200",
			want: "150",
		},
		{
			name:         "small receipt barely moves the average",
			currentStock: "90", currentCost: "100",
			qtyIn: "10", unitCostIn: "200",
			want: "110",
		},
		{
			name:         "first receipt on empty stock takes the unit cost",
			currentStock: "0", currentCost: "0",
			qtyIn: "25", unitCostIn: "42.50",
			want: "42.50",
		},
		{
			name:         "same cost in keeps the average",
			currentStock: "7", currentCost: "99.99",
			qtyIn: "3", unitCostIn: "99.99",
			want: "99.99",
		},
		{
			name:         "fractional quantities",
			currentStock: "1.5", currentCost: "80",
			qtyIn: "0.5", unitCostIn: "120",
			want: "90",
		},
		{
			name:         "zero total quantity yields zero, not a division error",
			currentStock: "0", currentCost: "150",
			qtyIn: "0", unitCostIn: "200",
			want: "0",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := inventory.AverageCost(d(tc.currentStock), d(tc.currentCost), d(tc.qtyIn), d(tc.unitCostIn))
			assert.True(t, got.Equal(d(tc.want)), "want %s, got %s", tc.want, got)
		})
	}
}

func TestAverageCost_NoFloatDrift(t *testing.T) {
	// 3 units at 0.10 plus 3 units at 0.20 must average to exactly 0.15.
	got := inventory.AverageCost(d("3"), d("0.10"), d("3"), d("0.20"))
	assert.True(t, got.Equal(d("0.15")), "got %s", got)
}
