package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateBreakdown(t *testing.T) {
	b := CalculateBreakdown([]Row{{Hours: 10, Rate: 100}}, 10)

	assert.Equal(t, float64(1000), b.Subtotal)
	assert.Equal(t, float64(100), b.DiscountAmount)
	assert.Equal(t, float64(900), b.SubtotalAfterDiscount)
	assert.Equal(t, float64(90), b.GST)
	assert.Equal(t, float64(990), b.GrandTotal)
}

func TestCalculateBreakdownZeroDiscount(t *testing.T) {
	rows := []Row{
		{Hours: 8, Rate: 365},
		{Hours: 6, Rate: 110},
		{Hours: 8, Rate: 210},
	}
	b := CalculateBreakdown(rows, 0)

	want := 8*365 + 6*110 + 8*210.0
	assert.Equal(t, want, b.Subtotal)
	assert.Equal(t, float64(0), b.DiscountAmount)
	assert.Equal(t, b.Subtotal, b.SubtotalAfterDiscount)
	assert.InDelta(t, b.SubtotalAfterDiscount*1.10, b.GrandTotal, 1e-9)
}

func TestCalculateBreakdownTreatsGarbledNumbersAsZero(t *testing.T) {
	b := CalculateBreakdown([]Row{
		{Hours: math.NaN(), Rate: 100},
		{Hours: 5, Rate: math.Inf(1)},
		{Hours: 5, Rate: 100},
	}, math.NaN())

	assert.Equal(t, float64(500), b.Subtotal)
	assert.Equal(t, float64(0), b.DiscountAmount)
	assert.Equal(t, float64(550), b.GrandTotal)
}

func TestCalculateBreakdownEmptyRows(t *testing.T) {
	b := CalculateBreakdown(nil, 25)

	assert.Equal(t, float64(0), b.Subtotal)
	assert.Equal(t, float64(0), b.GrandTotal)
}

func TestCalculateBreakdownKeepsPrecision(t *testing.T) {
	b := CalculateBreakdown([]Row{{Hours: 1.5, Rate: 333.33}}, 7.5)

	subtotal := 1.5 * 333.33
	after := subtotal - subtotal*0.075
	assert.InDelta(t, after*1.10, b.GrandTotal, 1e-9)
}
