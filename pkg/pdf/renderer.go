// Package pdf renders an invoice snapshot to an A4 PDF document.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/thingylabs/invoice-api/pkg/einvoice"
)

const (
	pageMargin = 15.0
	lineHeight = 5.0
)

// Renderer produces PDF documents from invoice snapshots.
type Renderer struct{}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render lays out the invoice on a single A4 page and returns the PDF
// bytes. Addresses are parsed leniently so a half-typed form still
// produces a document.
func (r *Renderer) Render(inv einvoice.Invoice) ([]byte, error) {
	totals := einvoice.ComputeTotals(inv.LineItems, inv.ReverseCharge)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.AddPage()
	pageWidth, _ := pdf.GetPageSize()
	contentWidth := pageWidth - 2*pageMargin

	// Company header.
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentWidth, 7, inv.CompanyName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if inv.CompanyTagline != "" {
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(contentWidth, lineHeight, inv.CompanyTagline, "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	for _, line := range addressLines(inv.CompanyAddress) {
		pdf.CellFormat(contentWidth, lineHeight, line, "", 1, "L", false, 0, "")
	}
	if inv.CompanyEmail != "" {
		pdf.CellFormat(contentWidth, lineHeight, inv.CompanyEmail, "", 1, "L", false, 0, "")
	}
	if inv.CompanyPhone != "" {
		pdf.CellFormat(contentWidth, lineHeight, inv.CompanyPhone, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Title and document references.
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(contentWidth, 10, "INVOICE", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	refCell(pdf, contentWidth, "Invoice number", inv.InvoiceNumber)
	refCell(pdf, contentWidth, "Invoice date", einvoice.NormalizeDate(inv.InvoiceDate))
	refCell(pdf, contentWidth, "Due date", inv.EffectiveDueDate())
	if start := einvoice.NormalizeDate(inv.DeliveryDateStart); start != "" {
		period := start
		if end := einvoice.NormalizeDate(inv.DeliveryDateEnd); end != "" {
			period += " to " + end
		}
		refCell(pdf, contentWidth, "Delivery period", period)
	}
	pdf.Ln(4)

	// Bill-to block.
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentWidth, lineHeight, "Bill to", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentWidth, lineHeight, inv.ClientName, "", 1, "L", false, 0, "")
	for _, line := range addressLines(inv.ClientAddress) {
		pdf.CellFormat(contentWidth, lineHeight, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Line-item table.
	colDesc := contentWidth - 80
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(colDesc, 7, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(18, 7, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(22, 7, "Unit price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(15, 7, "VAT", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 7, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range inv.LineItems {
		vat := item.VAT.Decimal().String() + "%"
		if inv.ReverseCharge {
			vat = "RC"
		}
		pdf.CellFormat(colDesc, 6, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(18, 6, item.Quantity.Decimal().String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(22, 6, einvoice.Money(item.Price.Decimal()), "1", 0, "R", false, 0, "")
		pdf.CellFormat(15, 6, vat, "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, einvoice.Money(item.Total()), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	// Totals, right-aligned.
	totalRow(pdf, contentWidth, "Subtotal", einvoice.Money(totals.Subtotal), false)
	totalRow(pdf, contentWidth, "VAT", einvoice.Money(totals.TotalVAT), false)
	totalRow(pdf, contentWidth, "Total", einvoice.Money(totals.Total), true)
	pdf.Ln(4)

	if inv.ReverseCharge {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(contentWidth, lineHeight, einvoice.ReverseChargeNote, "", "L", false)
		pdf.Ln(2)
	}

	// Payment block.
	iban, bic := inv.BankDetails()
	if iban != "" || inv.PaymentTerms > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentWidth, lineHeight, "Payment", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		if inv.PaymentTerms > 0 {
			pdf.CellFormat(contentWidth, lineHeight, fmt.Sprintf("Payment within %d days", inv.PaymentTerms), "", 1, "L", false, 0, "")
		}
		if iban != "" {
			pdf.CellFormat(contentWidth, lineHeight, "IBAN: "+iban, "", 1, "L", false, 0, "")
		}
		if bic != "" {
			pdf.CellFormat(contentWidth, lineHeight, "BIC: "+bic, "", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
	}

	if inv.Notes != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(contentWidth, lineHeight, inv.Notes, "", "L", false)
		pdf.Ln(2)
	}

	// Footer with tax details and representative.
	pdf.SetY(-30)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(110, 110, 110)
	footer := "VAT ID: " + inv.CompanyTaxID
	if inv.CompanyRegNumber != "" {
		footer += "  |  Reg. no: " + inv.CompanyRegNumber
	}
	if inv.CompanyRepresentative != "" {
		footer += "  |  " + inv.CompanyRepresentative
	}
	pdf.CellFormat(contentWidth, 4, footer, "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func addressLines(raw string) []string {
	parts, err := einvoice.ParseAddress(raw, einvoice.AddressPolicyLenient)
	if err != nil {
		return nil
	}
	lines := []string{parts.Street}
	if parts.PostalCode != "" {
		lines = append(lines, parts.PostalCode+" "+parts.City)
	} else if parts.City != "" {
		lines = append(lines, parts.City)
	}
	if parts.Country != "DE" {
		lines = append(lines, parts.Country)
	}
	return lines
}

func refCell(pdf *gofpdf.Fpdf, width float64, label, value string) {
	if value == "" {
		return
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(35, lineHeight, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(width-35, lineHeight, value, "", 1, "L", false, 0, "")
}

func totalRow(pdf *gofpdf.Fpdf, width float64, label, value string, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, 10)
	pdf.CellFormat(width-45, 6, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(25, 6, label, "", 0, "R", false, 0, "")
	pdf.CellFormat(20, 6, value+" EUR", "", 1, "R", false, 0, "")
}
