// Package preview renders an invoice snapshot to the HTML fragment shown
// in the browser's live preview pane. html/template escapes all form
// values, so pasted markup never reaches the pane as markup.
package preview

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/thingylabs/invoice-api/pkg/einvoice"
)

//go:embed template.html
var templateFS embed.FS

var previewTmpl = template.Must(template.ParseFS(templateFS, "template.html"))

type lineView struct {
	Description string
	Quantity    string
	Price       string
	VAT         string
	Amount      string
}

type previewView struct {
	Invoice       einvoice.Invoice
	InvoiceDate   string
	DueDate       string
	ServicePeriod string
	Lines         []lineView
	Subtotal      string
	TotalVAT      string
	Total         string
}

// Render returns the preview HTML for the snapshot. There is no failure
// mode for incomplete input: missing fields simply render empty.
func Render(inv einvoice.Invoice) ([]byte, error) {
	totals := einvoice.ComputeTotals(inv.LineItems, inv.ReverseCharge)

	view := previewView{
		Invoice:     inv,
		InvoiceDate: einvoice.NormalizeDate(inv.InvoiceDate),
		DueDate:     inv.EffectiveDueDate(),
		Subtotal:    einvoice.Money(totals.Subtotal),
		TotalVAT:    einvoice.Money(totals.TotalVAT),
		Total:       einvoice.Money(totals.Total),
	}

	start := einvoice.NormalizeDate(inv.DeliveryDateStart)
	end := einvoice.NormalizeDate(inv.DeliveryDateEnd)
	switch {
	case start != "" && end != "" && start != end:
		view.ServicePeriod = start + " - " + end
	case start != "":
		view.ServicePeriod = start
	}

	for _, item := range inv.LineItems {
		vat := item.VAT.Decimal().String() + "%"
		if inv.ReverseCharge {
			vat = "RC"
		}
		view.Lines = append(view.Lines, lineView{
			Description: item.Description,
			Quantity:    item.Quantity.Decimal().String(),
			Price:       einvoice.Money(item.Price.Decimal()),
			VAT:         vat,
			Amount:      einvoice.Money(item.Total()),
		})
	}

	var buf bytes.Buffer
	if err := previewTmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("render preview: %w", err)
	}
	return buf.Bytes(), nil
}
