package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyProfile holds the issuing company's details. A single row: the
// tool serves one company, and every new invoice is prefilled from it.
type CompanyProfile struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name                string    `gorm:"size:255" json:"name"`
	Address             string    `gorm:"type:text" json:"address"`
	Email               string    `gorm:"size:255" json:"email"`
	Phone               string    `gorm:"size:50" json:"phone"`
	TaxID               string    `gorm:"size:50;column:tax_id" json:"tax_id"`
	RegNumber           string    `gorm:"size:50" json:"reg_number"`
	BankInfo            string    `gorm:"type:text" json:"bank_info"`
	Representative      string    `gorm:"size:255" json:"representative"`
	Tagline             string    `gorm:"size:255" json:"tagline"`
	DefaultPaymentTerms int       `gorm:"default:14" json:"default_payment_terms"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating the profile
func (p *CompanyProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CompanyProfile model
func (CompanyProfile) TableName() string {
	return "company_profiles"
}
