package einvoice

import (
	"fmt"
	"strings"
)

// FieldViolation is a single validation failure, addressed by form field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the complete list of violations found in one
// pass over the snapshot, so the caller can display all of them at once.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	fields := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		fields[i] = v.Field
	}
	return "invalid invoice: " + strings.Join(fields, ", ")
}

// MissingFields returns the names of all fields reported missing.
func (e *ValidationError) MissingFields() []string {
	var fields []string
	for _, v := range e.Violations {
		if strings.HasSuffix(v.Message, "is required") {
			fields = append(fields, v.Field)
		}
	}
	return fields
}

// ValidateOptions tunes the pre-export validation pass.
type ValidateOptions struct {
	// AddressPolicy is applied to both seller and buyer addresses.
	AddressPolicy AddressPolicy
	// StrictLines additionally rejects line items with an empty
	// description or a non-positive quantity or price.
	StrictLines bool
}

// Validate checks every mandatory field and both addresses in a single
// pass and returns a ValidationError listing all violations, never just
// the first. A nil return means the snapshot is safe to assemble.
func Validate(inv Invoice, opts ValidateOptions) error {
	var violations []FieldViolation

	required := []struct {
		field string
		value string
	}{
		{"invoiceNumber", inv.InvoiceNumber},
		{"invoiceDate", inv.InvoiceDate},
		{"companyName", inv.CompanyName},
		{"companyAddress", inv.CompanyAddress},
		{"companyTaxId", inv.CompanyTaxID},
		{"clientName", inv.ClientName},
		{"clientAddress", inv.ClientAddress},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			violations = append(violations, FieldViolation{Field: r.field, Message: r.field + " is required"})
		}
	}

	if len(inv.LineItems) == 0 {
		violations = append(violations, FieldViolation{Field: "lineItems", Message: "lineItems is required"})
	}

	if strings.TrimSpace(inv.InvoiceDate) != "" && NormalizeDate(inv.InvoiceDate) == "" {
		violations = append(violations, FieldViolation{Field: "invoiceDate", Message: "invoiceDate is not a valid date"})
	}

	if strings.TrimSpace(inv.CompanyAddress) != "" {
		if _, err := ParseAddress(inv.CompanyAddress, opts.AddressPolicy); err != nil {
			violations = append(violations, FieldViolation{Field: "companyAddress", Message: err.Error()})
		}
	}
	if strings.TrimSpace(inv.ClientAddress) != "" {
		if _, err := ParseAddress(inv.ClientAddress, opts.AddressPolicy); err != nil {
			violations = append(violations, FieldViolation{Field: "clientAddress", Message: err.Error()})
		}
	}

	if opts.StrictLines {
		for i, item := range inv.LineItems {
			field := fmt.Sprintf("lineItems[%d]", i)
			if strings.TrimSpace(item.Description) == "" {
				violations = append(violations, FieldViolation{Field: field, Message: "description must not be empty"})
			}
			if item.Quantity.Decimal().Sign() <= 0 {
				violations = append(violations, FieldViolation{Field: field, Message: "quantity must be positive"})
			}
			if item.Price.Decimal().Sign() <= 0 {
				violations = append(violations, FieldViolation{Field: field, Message: "price must be positive"})
			}
		}
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
