package ubl

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thingylabs/invoice-api/pkg/einvoice"
)

func testInvoice() einvoice.Invoice {
	return einvoice.Invoice{
		InvoiceNumber:    "250831-001",
		InvoiceDate:      "2025-08-31",
		CompanyName:      "Acme GmbH",
		CompanyAddress:   "Main St 1\n12345 Berlin",
		CompanyEmail:     "billing@acme.example",
		CompanyPhone:     "+49 30 1234567",
		CompanyTaxID:     "DE123456789",
		CompanyRegNumber: "HRB 12345",
		CompanyBankInfo:  "DE89370400440532013000\nCOBADEFFXXX",
		ClientName:       "Client AG",
		ClientAddress:    "Side St 2\n54321 Hamburg",
		PaymentTerms:     14,
		LineItems: []einvoice.LineItem{{
			Description: "Consulting",
			Quantity:    einvoice.NumberFromFloat(2),
			Price:       einvoice.NumberFromFloat(100),
			VAT:         einvoice.NumberFromFloat(19),
		}},
	}
}

func wellFormed(t *testing.T, out []byte) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(out))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		require.NoError(t, err)
	}
}

func TestGenerateStandardInvoice(t *testing.T) {
	out, err := Generate(testInvoice(), einvoice.AddressPolicyStrict)
	require.NoError(t, err)
	wellFormed(t, out)

	s := string(out)
	assert.Contains(t, s, `xmlns:ubl="urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"`)
	assert.Contains(t, s, "<cbc:CustomizationID>urn:cen.eu:en16931:2017#compliant#urn:xoev-de:kosit:standard:xrechnung_3.0</cbc:CustomizationID>")
	assert.Contains(t, s, "<cbc:InvoiceTypeCode>380</cbc:InvoiceTypeCode>")
	assert.Contains(t, s, "<cbc:ID>250831-001</cbc:ID>")
	assert.Contains(t, s, "<cbc:IssueDate>2025-08-31</cbc:IssueDate>")
	assert.Contains(t, s, "<cbc:DueDate>2025-09-14</cbc:DueDate>")
	assert.Contains(t, s, "<cbc:StreetName>Main St 1</cbc:StreetName>")
	assert.Contains(t, s, "<cbc:PostalZone>12345</cbc:PostalZone>")
	assert.Contains(t, s, "<cbc:IdentificationCode>DE</cbc:IdentificationCode>")
	assert.Contains(t, s, `<cbc:TaxAmount currencyID="EUR">38.00</cbc:TaxAmount>`)
	assert.Contains(t, s, `<cbc:PayableAmount currencyID="EUR">238.00</cbc:PayableAmount>`)
	assert.Contains(t, s, "<cbc:ID>DE89370400440532013000</cbc:ID>")
	assert.NotContains(t, s, "TaxExemptionReason")
}

func TestGenerateIdempotent(t *testing.T) {
	inv := testInvoice()
	first, err := Generate(inv, einvoice.AddressPolicyStrict)
	require.NoError(t, err)
	second, err := Generate(inv, einvoice.AddressPolicyStrict)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateReverseCharge(t *testing.T) {
	inv := testInvoice()
	inv.ReverseCharge = true
	inv.ClientAddress = "Side St 2\n54321 Hamburg\nFrance"

	out, err := Generate(inv, einvoice.AddressPolicyStrict)
	require.NoError(t, err)
	wellFormed(t, out)

	s := string(out)
	assert.Contains(t, s, "<cbc:Note>"+einvoice.ReverseChargeNote+"</cbc:Note>")
	assert.Contains(t, s, "<cbc:ID>Z</cbc:ID>")
	assert.Contains(t, s, "<cbc:Percent>0</cbc:Percent>")
	assert.Contains(t, s, "<cbc:IdentificationCode>France</cbc:IdentificationCode>")
	// Exemption reason at header and line level.
	assert.Equal(t, 2, strings.Count(s, "<cbc:TaxExemptionReason>Reverse charge</cbc:TaxExemptionReason>"))
	assert.Contains(t, s, `<cbc:TaxAmount currencyID="EUR">0.00</cbc:TaxAmount>`)
	assert.Contains(t, s, `<cbc:PayableAmount currencyID="EUR">200.00</cbc:PayableAmount>`)
}

func TestGenerateEscapesReservedCharacters(t *testing.T) {
	inv := testInvoice()
	inv.LineItems[0].Description = `R&D <"fast"> 'x'`

	out, err := Generate(inv, einvoice.AddressPolicyStrict)
	require.NoError(t, err)
	wellFormed(t, out)

	s := string(out)
	assert.Contains(t, s, "R&amp;D")
	assert.Contains(t, s, "&lt;")
	assert.NotContains(t, s, `<"fast">`)
}

func TestGenerateOmitsPaymentMeansWithoutIBAN(t *testing.T) {
	inv := testInvoice()
	inv.CompanyBankInfo = ""

	out, err := Generate(inv, einvoice.AddressPolicyStrict)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "PaymentMeans")
}

func TestGenerateLineIDsArePositional(t *testing.T) {
	inv := testInvoice()
	inv.LineItems = append(inv.LineItems, einvoice.LineItem{
		Description: "Support",
		Quantity:    einvoice.NumberFromFloat(1),
		Price:       einvoice.NumberFromFloat(50),
		VAT:         einvoice.NumberFromFloat(19),
	})

	out, err := Generate(inv, einvoice.AddressPolicyStrict)
	require.NoError(t, err)

	s := string(out)
	assert.Less(t, strings.Index(s, "<cbc:Name>Consulting</cbc:Name>"), strings.Index(s, "<cbc:Name>Support</cbc:Name>"))
	assert.Contains(t, s, "<cbc:ID>1</cbc:ID>")
	assert.Contains(t, s, "<cbc:ID>2</cbc:ID>")
}

func TestGenerateLenientPolicyAcceptsMissingPostalCode(t *testing.T) {
	inv := testInvoice()
	inv.ClientAddress = "Side St 2\nHamburg"

	_, err := Generate(inv, einvoice.AddressPolicyStrict)
	require.Error(t, err)

	out, err := Generate(inv, einvoice.AddressPolicyLenient)
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "<cbc:CityName>Hamburg</cbc:CityName>")
	assert.NotContains(t, s, "<cbc:PostalZone>Hamburg</cbc:PostalZone>")
}

func TestGenerateRejectsUnparseableAddress(t *testing.T) {
	inv := testInvoice()
	inv.ClientAddress = "just one line"

	_, err := Generate(inv, einvoice.AddressPolicyStrict)
	require.Error(t, err)

	var addrErr *einvoice.InvalidAddressError
	assert.ErrorAs(t, err, &addrErr)
}
