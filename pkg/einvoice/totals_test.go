package einvoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func item(qty, price, vat float64) LineItem {
	return LineItem{
		Description: "Consulting",
		Quantity:    NumberFromFloat(qty),
		Price:       NumberFromFloat(price),
		VAT:         NumberFromFloat(vat),
	}
}

func TestComputeTotalsStandard(t *testing.T) {
	totals := ComputeTotals([]LineItem{item(2, 100, 19)}, false)

	assert.Equal(t, "200.00", Money(totals.Subtotal))
	assert.Equal(t, "38.00", Money(totals.TotalVAT))
	assert.Equal(t, "238.00", Money(totals.Total))
}

func TestComputeTotalsReverseChargeZeroesVAT(t *testing.T) {
	totals := ComputeTotals([]LineItem{item(2, 100, 19), item(1, 50, 7)}, true)

	assert.Equal(t, "250.00", Money(totals.Subtotal))
	assert.Equal(t, "0.00", Money(totals.TotalVAT))
	assert.Equal(t, "250.00", Money(totals.Total))
}

func TestComputeTotalsMixedRates(t *testing.T) {
	totals := ComputeTotals([]LineItem{item(1, 100, 19), item(1, 100, 7)}, false)

	assert.Equal(t, "200.00", Money(totals.Subtotal))
	assert.Equal(t, "26.00", Money(totals.TotalVAT))
	assert.Equal(t, "226.00", Money(totals.Total))
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil, false)

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.TotalVAT.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestTotalInvariantHoldsWithoutMidCalculationRounding(t *testing.T) {
	// 3 * 0.10 at 19% accumulates exact decimals; rounding happens only
	// at presentation time.
	items := []LineItem{item(3, 0.10, 19), item(7, 0.07, 19)}
	totals := ComputeTotals(items, false)

	assert.Equal(t, totals.Total, totals.Subtotal.Add(totals.TotalVAT))
	assert.Equal(t, "0.79", Money(totals.Subtotal))
}

func TestLineVATUsesStoredRate(t *testing.T) {
	li := item(2, 100, 7)
	assert.Equal(t, "14.00", Money(li.VATAmount(false)))
	assert.Equal(t, "0.00", Money(li.VATAmount(true)))
}
