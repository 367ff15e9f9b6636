// Package cii assembles ZUGFeRD / Factur-X CrossIndustryInvoice documents.
//
// Same construction discipline as the UBL assembler: a typed element tree
// marshalled with encoding/xml, fixed element order, unconditional
// escaping. Dates use the UN/CEFACT compact form (format 102, YYYYMMDD).
package cii

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/thingylabs/invoice-api/pkg/einvoice"
)

const (
	guidelineID = "urn:factur-x.eu:1p0:extended"

	nsRsm = "urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"
	nsRam = "urn:un:unece:uncefact:data:standard:ReusableAggregateBusinessInformationEntity:100"
	nsUdt = "urn:un:unece:uncefact:data:standard:UnqualifiedDataType:100"
	nsQdt = "urn:un:unece:uncefact:data:standard:QualifiedDataType:100"

	currency = "EUR"
)

// compactDate converts an ISO date to the format="102" form.
func compactDate(iso string) string {
	return strings.ReplaceAll(iso, "-", "")
}

func udtDate(iso string) xmlUdtDate {
	return xmlUdtDate{DateTimeString: xmlDateTimeString{Value: compactDate(iso), Format: "102"}}
}

// Generate assembles the ZUGFeRD/CII document for a validated snapshot.
// The address policy must be the same one the snapshot was validated
// with, so an address that passed validation always assembles.
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
	class := einvoice.Classify(inv.ReverseCharge, einvoice.DialectCII)
	issueDate := einvoice.NormalizeDate(inv.InvoiceDate)

	doc := &xmlCrossIndustryInvoice{
		Rsm: nsRsm,
		Ram: nsRam,
		Udt: nsUdt,
		Qdt: nsQdt,
		Context: xmlExchangedDocumentContext{
			GuidelineParameter: xmlDocumentContextParameter{ID: guidelineID},
		},
		Document: xmlExchangedDocument{
			ID:            inv.InvoiceNumber,
			TypeCode:      "380",
			IssueDateTime: udtDate(issueDate),
		},
	}

	if inv.Notes != "" {
		doc.Document.Notes = append(doc.Document.Notes, xmlNote{Content: inv.Notes})
	}
	if inv.ReverseCharge {
		doc.Document.Notes = append(doc.Document.Notes, xmlNote{Content: einvoice.ReverseChargeNote})
	}

	for i, item := range inv.LineItems {
		name := item.Description
		if name == "" {
			name = "Item"
		}
		doc.Transaction.LineItems = append(doc.Transaction.LineItems, xmlLineItem{
			LineDocument: xmlLineDocument{LineID: strconv.Itoa(i + 1)},
			Product: xmlTradeProduct{
				Name:        name,
				Description: item.Description,
			},
			Agreement: xmlLineAgreement{
				NetPrice: xmlTradePrice{ChargeAmount: einvoice.Money(item.Price.Decimal())},
			},
			Delivery: xmlLineDelivery{
				BilledQuantity: xmlQuantity{Value: item.Quantity.Decimal().String(), UnitCode: "C62"},
			},
			Settlement: xmlLineSettlement{
				TradeTax: xmlTradeTax{
					TypeCode:              class.TypeCode,
					ExemptionReason:       class.ExemptionReason,
					CategoryCode:          class.CategoryCode,
					RateApplicablePercent: einvoice.LineRate(item, inv.ReverseCharge).String(),
				},
				Summation: xmlLineMonetarySummary{LineTotalAmount: einvoice.Money(item.Total())},
			},
		})
	}

	doc.Transaction.Agreement = xmlTradeAgreement{
		Seller: xmlTradeParty{
			Name:          inv.CompanyName,
			PostalAddress: postalAddress(seller),
			TaxRegistration: &xmlTaxRegistration{
				ID: xmlSchemedID{Value: inv.CompanyTaxID, SchemeID: "VA"},
			},
		},
		Buyer: xmlTradeParty{
			Name:          inv.ClientName,
			PostalAddress: postalAddress(buyer),
		},
	}

	start := einvoice.NormalizeDate(inv.DeliveryDateStart)
	end := einvoice.NormalizeDate(inv.DeliveryDateEnd)
	if start != "" {
		doc.Transaction.Delivery.DeliveryEvent = &xmlDeliveryEvent{
			OccurrenceDateTime: udtDate(start),
		}
	}

	settlement := xmlTradeSettlement{
		PaymentReference: inv.InvoiceNumber,
		InvoiceCurrency:  currency,
		TradeTax: xmlTradeTax{
			CalculatedAmount:      einvoice.Money(totals.TotalVAT),
			TypeCode:              class.TypeCode,
			ExemptionReason:       class.ExemptionReason,
			BasisAmount:           einvoice.Money(totals.Subtotal),
			CategoryCode:          class.CategoryCode,
			RateApplicablePercent: class.RatePercent.String(),
		},
		ReferencedInvoice: xmlInvoiceReferencedDoc{
			IssuerAssignedID: inv.InvoiceNumber,
			FormattedIssueDateTime: xmlQdtDate{
				DateTimeString: xmlDateTimeString{Value: compactDate(issueDate), Format: "102"},
			},
		},
		AccountingAccount: xmlAccountingAccount{ID: inv.InvoiceNumber},
		Summation: xmlHeaderMonetarySummary{
			LineTotalAmount:     einvoice.Money(totals.Subtotal),
			TaxBasisTotalAmount: einvoice.Money(totals.Subtotal),
			TaxTotalAmount:      xmlCurrency{Value: einvoice.Money(totals.TotalVAT), CurrencyID: currency},
			GrandTotalAmount:    einvoice.Money(totals.Total),
			DuePayableAmount:    einvoice.Money(totals.Total),
		},
	}

	if start != "" && end != "" {
		settlement.BillingPeriod = &xmlBillingPeriod{
			StartDateTime: udtDate(start),
			EndDateTime:   udtDate(end),
		}
	}

	if iban, bic := inv.BankDetails(); iban != "" {
		means := &xmlPaymentMeans{
			TypeCode:     "58",
			PayeeAccount: xmlCreditorAccount{IBANID: iban},
		}
		if bic != "" {
			means.PayeeInstitution = &xmlCreditorInstitution{BICID: bic}
		}
		settlement.PaymentMeans = means
	}

	if due := inv.EffectiveDueDate(); due != "" {
		terms := &xmlPaymentTerms{DueDateDateTime: &xmlUdtDate{
			DateTimeString: xmlDateTimeString{Value: compactDate(due), Format: "102"},
		}}
		if inv.PaymentTerms > 0 {
			terms.Description = fmt.Sprintf("Payment within %d days", inv.PaymentTerms)
		}
		settlement.PaymentTerms = terms
	}

	doc.Transaction.Settlement = settlement

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal cii invoice: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

func postalAddress(parts einvoice.AddressParts) xmlPostalAddress {
	return xmlPostalAddress{
		PostcodeCode: parts.PostalCode,
		LineOne:      parts.Street,
		CityName:     parts.City,
		CountryID:    parts.Country,
	}
}
