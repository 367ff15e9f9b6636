package entity

import "time"

// InvoiceSequence is the per-day invoice counter. DatePrefix is the
// YYMMDD issue date; Counter is the last number handed out for that day,
// so numbering restarts at 001 each day.
type InvoiceSequence struct {
	DatePrefix string    `gorm:"size:6;primary_key" json:"date_prefix"`
	Counter    int       `gorm:"not null;default:0" json:"counter"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the table name for the InvoiceSequence model
func (InvoiceSequence) TableName() string {
	return "invoice_sequences"
}
