package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thingylabs/invoice-api/pkg/einvoice"
)

func testInvoice() einvoice.Invoice {
	return einvoice.Invoice{
		InvoiceNumber:  "250831-001",
		InvoiceDate:    "2025-08-31",
		CompanyName:    "Acme GmbH",
		CompanyAddress: "Main St 1\n12345 Berlin",
		CompanyTaxID:   "DE123456789",
		ClientName:     "Client AG",
		ClientAddress:  "Side St 2\n54321 Hamburg",
		LineItems: []einvoice.LineItem{{
			Description: "Consulting",
			Quantity:    einvoice.NumberFromFloat(2),
			Price:       einvoice.NumberFromFloat(100),
			VAT:         einvoice.NumberFromFloat(19),
		}},
	}
}

func TestRenderContainsInvoiceData(t *testing.T) {
	out, err := Render(testInvoice())
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "250831-001")
	assert.Contains(t, s, "Acme GmbH")
	assert.Contains(t, s, "Client AG")
	assert.Contains(t, s, "Consulting")
	assert.Contains(t, s, "200.00")
	assert.Contains(t, s, "38.00")
	assert.Contains(t, s, "238.00")
	assert.NotContains(t, s, "Reverse Charge")
}

func TestRenderEscapesMarkup(t *testing.T) {
	inv := testInvoice()
	inv.ClientName = `<script>alert("x")</script>`

	out, err := Render(inv)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>")
}

func TestRenderReverseCharge(t *testing.T) {
	inv := testInvoice()
	inv.ReverseCharge = true

	out, err := Render(inv)
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "Reverse Charge")
	assert.Contains(t, s, "RC")
	assert.Contains(t, s, "0.00")
	assert.Contains(t, s, "200.00")
}

func TestRenderEmptyFormStillRenders(t *testing.T) {
	out, err := Render(einvoice.Invoice{})
	require.NoError(t, err)
	assert.Contains(t, string(out), "INVOICE")
}
