package einvoice

import "github.com/shopspring/decimal"

// Dialect selects the target e-invoice syntax. The two dialects disagree
// on the reverse-charge category code, so classification is parameterized
// rather than hard-coded per call site.
type Dialect int

const (
	// DialectUBL is XRechnung / OASIS UBL.
	DialectUBL Dialect = iota
	// DialectCII is ZUGFeRD / UN/CEFACT CrossIndustryInvoice.
	DialectCII
)

// ReverseChargeNote is the fixed document-level note emitted whenever the
// invoice is zero-rated under the reverse-charge mechanism.
const ReverseChargeNote = "Reverse charge: VAT liability transfers to the recipient of this invoice"

// TaxClass is the derived tax coding for a document.
type TaxClass struct {
	// CategoryCode is the EN16931 tax category: S for standard rate,
	// Z (UBL) or AE (CII) under reverse charge.
	CategoryCode string
	// TypeCode is the settlement tax type: VAT, or AE for reverse charge.
	TypeCode string
	// RatePercent is the default document rate; forced to 0 under
	// reverse charge.
	RatePercent decimal.Decimal
	// ExemptionReason is attached at header and line level under reverse
	// charge, empty otherwise.
	ExemptionReason string
}

// Classify derives the document tax coding for the given dialect.
func Classify(reverseCharge bool, dialect Dialect) TaxClass {
	if !reverseCharge {
		return TaxClass{
			CategoryCode: "S",
			TypeCode:     "VAT",
			RatePercent:  decimal.NewFromInt(19),
		}
	}

	category := "Z"
	if dialect == DialectCII {
		category = "AE"
	}
	return TaxClass{
		CategoryCode:    category,
		TypeCode:        "AE",
		RatePercent:     decimal.Zero,
		ExemptionReason: "Reverse charge",
	}
}

// LineRate returns the VAT percent to serialize for a line: the stored
// rate, or 0 whenever the document is reverse charged.
func LineRate(item LineItem, reverseCharge bool) decimal.Decimal {
	if reverseCharge {
		return decimal.Zero
	}
	return item.VAT.Decimal()
}
