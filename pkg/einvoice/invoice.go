// Package einvoice holds the canonical invoice snapshot and the mapping
// logic shared by every export format: address decomposition, monetary
// totals, tax classification and pre-assembly validation.
package einvoice

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the full form snapshot the browser posts for every export.
// Field names mirror the form fields, so the JSON body binds directly.
type Invoice struct {
	InvoiceNumber     string `json:"invoiceNumber"`
	InvoiceDate       string `json:"invoiceDate"`
	DueDate           string `json:"dueDate"`
	DeliveryDateStart string `json:"deliveryDateStart"`
	DeliveryDateEnd   string `json:"deliveryDateEnd"`

	CompanyName           string `json:"companyName"`
	CompanyAddress        string `json:"companyAddress"`
	CompanyEmail          string `json:"companyEmail"`
	CompanyPhone          string `json:"companyPhone"`
	CompanyTaxID          string `json:"companyTaxId"`
	CompanyRegNumber      string `json:"companyRegNumber"`
	CompanyBankInfo       string `json:"companyBankInfo"`
	CompanyRepresentative string `json:"companyRepresentative"`
	CompanyTagline        string `json:"companyTagline"`

	ClientName    string `json:"clientName"`
	ClientAddress string `json:"clientAddress"`

	ReverseCharge bool       `json:"reverseCharge"`
	PaymentTerms  int        `json:"paymentTerms"`
	Notes         string     `json:"notes"`
	LineItems     []LineItem `json:"lineItems"`
}

// LineItem is a single invoice position. Quantity, price and VAT are
// lenient numbers: the form may post them as JSON numbers or strings,
// and malformed values degrade to zero instead of failing the export.
type LineItem struct {
	Description string `json:"description"`
	Quantity    Number `json:"quantity"`
	Price       Number `json:"price"`
	VAT         Number `json:"vat"`
}

// Total returns quantity * price, unrounded.
func (li LineItem) Total() decimal.Decimal {
	return li.Quantity.Decimal().Mul(li.Price.Decimal())
}

// VATAmount returns the VAT portion of the line, zero under reverse charge.
func (li LineItem) VATAmount(reverseCharge bool) decimal.Decimal {
	if reverseCharge {
		return decimal.Zero
	}
	return li.Total().Mul(li.VAT.Decimal().Shift(-2))
}

// Number is a decimal that tolerates the loose typing of form data:
// JSON numbers, numeric strings, and garbage (which becomes zero).
type Number struct {
	d decimal.Decimal
}

// NumberFromFloat builds a Number from a float64.
func NumberFromFloat(f float64) Number {
	return Number{d: decimal.NewFromFloat(f)}
}

// Decimal returns the underlying decimal value.
func (n Number) Decimal() decimal.Decimal {
	return n.d
}

func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.d.String()), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			n.d = decimal.Zero
			return nil
		}
		s = strings.TrimSpace(s)
	}
	if s == "" || s == "null" {
		n.d = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		// Malformed input degrades to zero, matching the leniency the
		// totals contract requires.
		n.d = decimal.Zero
		return nil
	}
	n.d = d
	return nil
}

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// NormalizeDate coerces a date string to ISO YYYY-MM-DD. Already-ISO input
// passes through; a handful of common formats are parsed; anything else
// yields the empty string.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if isoDateRe.MatchString(s) {
		return s
	}
	for _, layout := range []string{"02.01.2006", "02/01/2006", "2006/01/02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// EffectiveDueDate returns the due date, deriving it from the invoice date
// plus payment terms when the form left it empty.
func (inv Invoice) EffectiveDueDate() string {
	if d := NormalizeDate(inv.DueDate); d != "" {
		return d
	}
	issue := NormalizeDate(inv.InvoiceDate)
	if issue == "" || inv.PaymentTerms <= 0 {
		return ""
	}
	t, err := time.Parse("2006-01-02", issue)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, inv.PaymentTerms).Format("2006-01-02")
}

// BankDetails returns IBAN and BIC from the multi-line bank info block.
// Line 1 is the IBAN, line 2 (if present) the BIC.
func (inv Invoice) BankDetails() (iban, bic string) {
	var lines []string
	for _, raw := range strings.Split(inv.CompanyBankInfo, "\n") {
		if l := strings.TrimSpace(raw); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) > 0 {
		iban = lines[0]
	}
	if len(lines) > 1 {
		bic = lines[1]
	}
	return iban, bic
}

// ExportFilename returns the download name for the given extension,
// falling back to "new" when the invoice has no number yet.
func (inv Invoice) ExportFilename(ext string) string {
	number := strings.TrimSpace(inv.InvoiceNumber)
	if number == "" {
		number = "new"
	}
	return "Invoice-" + number + "." + ext
}
