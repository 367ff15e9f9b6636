// Package ubl assembles XRechnung-compliant UBL invoices.
//
// The document is built as a typed element tree and marshalled with
// encoding/xml, so element order is fixed and every text node is escaped
// unconditionally.
package ubl

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/thingylabs/invoice-api/pkg/einvoice"
)

const (
	customizationID = "urn:cen.eu:en16931:2017#compliant#urn:xoev-de:kosit:standard:xrechnung_3.0"
	profileID       = "urn:fdc:peppol.eu:2017:poacc:billing:01:1.0"

	nsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	nsCac     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	nsCbc     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"

	currency = "EUR"
)

func amount(s string) xmlAmount {
	return xmlAmount{Value: s, CurrencyID: currency}
}

// Generate assembles the XRechnung/UBL document for a validated snapshot.
// The address policy must be the same one the snapshot was validated
// with, so an address that passed validation always assembles. It is a
// pure transform: the same snapshot always yields byte-identical output.
func Generate(inv einvoice.Invoice, policy einvoice.AddressPolicy) ([]byte, error) {
	seller, err := einvoice.ParseAddress(inv.CompanyAddress, policy)
	if err != nil {
		return nil, fmt.Errorf("seller address: %w", err)
	}
	buyer, err := einvoice.ParseAddress(inv.ClientAddress, policy)
	if err != nil {
		return nil, fmt.Errorf("buyer address: %w", err)
	}

	totals := einvoice.ComputeTotals(inv.LineItems, inv.ReverseCharge)
	class := einvoice.Classify(inv.ReverseCharge, einvoice.DialectUBL)
	issueDate := einvoice.NormalizeDate(inv.InvoiceDate)

	doc := &xmlInvoice{
		Ubl:              nsInvoice,
		Cac:              nsCac,
		Cbc:              nsCbc,
		CustomizationID:  customizationID,
		ProfileID:        profileID,
		ID:               inv.InvoiceNumber,
		IssueDate:        issueDate,
		DueDate:          inv.EffectiveDueDate(),
		InvoiceTypeCode:  "380",
		DocumentCurrency: currency,
		TaxCurrency:      currency,
		AccountingCost:   inv.InvoiceNumber,
	}

	if inv.Notes != "" {
		doc.Notes = append(doc.Notes, inv.Notes)
	}
	if inv.ReverseCharge {
		doc.Notes = append(doc.Notes, einvoice.ReverseChargeNote)
		doc.TaxPointDate = issueDate
	}

	start := einvoice.NormalizeDate(inv.DeliveryDateStart)
	end := einvoice.NormalizeDate(inv.DeliveryDateEnd)
	if start != "" || end != "" {
		doc.InvoicePeriod = &xmlInvoicePeriod{StartDate: start, EndDate: end}
	}

	doc.SupplierParty = xmlSupplierParty{
		Party: xmlParty{
			PartyName:     inv.CompanyName,
			PostalAddress: postalAddress(seller),
			PartyTaxScheme: &xmlPartyTaxScheme{
				CompanyID: inv.CompanyTaxID,
				TaxScheme: xmlTaxScheme{ID: "VAT"},
			},
			LegalEntity: xmlLegalEntity{
				RegistrationName: inv.CompanyName,
				CompanyID:        inv.CompanyRegNumber,
			},
		},
	}
	if inv.CompanyPhone != "" || inv.CompanyEmail != "" {
		doc.SupplierParty.Party.Contact = &xmlContact{
			Telephone:      inv.CompanyPhone,
			ElectronicMail: inv.CompanyEmail,
		}
	}

	doc.CustomerParty = xmlCustomerParty{
		Party: xmlParty{
			PartyName:     inv.ClientName,
			PostalAddress: postalAddress(buyer),
			LegalEntity:   xmlLegalEntity{RegistrationName: inv.ClientName},
		},
	}

	// Payment means is omitted entirely without an IBAN.
	if iban, bic := inv.BankDetails(); iban != "" {
		means := &xmlPaymentMeans{
			PaymentMeansCode: "58",
			PaymentID:        inv.InvoiceNumber,
			PayeeFinancialAccount: xmlFinancialAccount{
				ID: iban,
			},
		}
		if bic != "" {
			means.PayeeFinancialAccount.Branch = &xmlFinancialInstitutionBranch{ID: bic}
		}
		doc.PaymentMeans = means
	}

	if inv.PaymentTerms > 0 {
		doc.PaymentTerms = &xmlPaymentTerms{
			Note: fmt.Sprintf("Payment within %d days", inv.PaymentTerms),
		}
	}

	doc.TaxTotal = xmlTaxTotal{
		TaxAmount: amount(einvoice.Money(totals.TotalVAT)),
		TaxSubtotal: []xmlTaxSubtotal{{
			TaxableAmount: amount(einvoice.Money(totals.Subtotal)),
			TaxAmount:     amount(einvoice.Money(totals.TotalVAT)),
			TaxCategory:   taxCategory(class, class.RatePercent.String()),
		}},
	}

	doc.MonetaryTotal = xmlMonetaryTotal{
		LineExtensionAmount: amount(einvoice.Money(totals.Subtotal)),
		TaxExclusiveAmount:  amount(einvoice.Money(totals.Subtotal)),
		TaxInclusiveAmount:  amount(einvoice.Money(totals.Total)),
		PayableAmount:       amount(einvoice.Money(totals.Total)),
	}

	for i, item := range inv.LineItems {
		name := item.Description
		if name == "" {
			name = "Item"
		}
		doc.InvoiceLines = append(doc.InvoiceLines, xmlInvoiceLine{
			ID:                  strconv.Itoa(i + 1),
			InvoicedQuantity:    xmlQuantity{Value: item.Quantity.Decimal().String(), UnitCode: "C62"},
			LineExtensionAmount: amount(einvoice.Money(item.Total())),
			Item: xmlItem{
				Description:           item.Description,
				Name:                  name,
				ClassifiedTaxCategory: taxCategory(class, einvoice.LineRate(item, inv.ReverseCharge).String()),
			},
			Price: xmlPrice{
				PriceAmount:  amount(einvoice.Money(item.Price.Decimal())),
				BaseQuantity: xmlQuantity{Value: "1", UnitCode: "C62"},
			},
		})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal ubl invoice: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

func postalAddress(parts einvoice.AddressParts) xmlPostalAddress {
	return xmlPostalAddress{
		StreetName: parts.Street,
		CityName:   parts.City,
		PostalZone: parts.PostalCode,
		Country:    xmlCountry{IdentificationCode: parts.Country},
	}
}

func taxCategory(class einvoice.TaxClass, percent string) xmlTaxCategory {
	return xmlTaxCategory{
		ID:              class.CategoryCode,
		Percent:         percent,
		ExemptionReason: class.ExemptionReason,
		TaxScheme:       xmlTaxScheme{ID: "VAT"},
	}
}
