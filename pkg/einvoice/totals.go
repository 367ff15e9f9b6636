package einvoice

import "github.com/shopspring/decimal"

// Totals holds the document-level monetary sums. The decimals are
// unrounded; rounding to two places happens once, at serialization.
type Totals struct {
	Subtotal decimal.Decimal
	TotalVAT decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals accumulates line totals and VAT in input order. Under
// reverse charge every line's VAT is forced to zero regardless of the
// stored per-line rate.
func ComputeTotals(items []LineItem, reverseCharge bool) Totals {
	subtotal := decimal.Zero
	totalVAT := decimal.Zero

	for _, item := range items {
		subtotal = subtotal.Add(item.Total())
		totalVAT = totalVAT.Add(item.VATAmount(reverseCharge))
	}

	return Totals{
		Subtotal: subtotal,
		TotalVAT: totalVAT,
		Total:    subtotal.Add(totalVAT),
	}
}

// Money formats an amount for presentation: exactly two decimal places,
// rounded half away from zero.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
