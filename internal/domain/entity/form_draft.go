package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FormDraft is the persisted snapshot of the in-progress invoice form.
// Data holds the raw JSON body exactly as the browser posted it, so the
// form restores field-for-field on reload. A single row.
type FormDraft struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Data      string    `gorm:"type:text" json:"data"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating the draft
func (d *FormDraft) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FormDraft model
func (FormDraft) TableName() string {
	return "form_drafts"
}
