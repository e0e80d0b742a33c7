package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Rate holds the precious-metal prices for one calendar date. Date is the
// ISO form "2006-01-02" in UTC.
type Rate struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Date string    `gorm:"uniqueIndex;not null;type:varchar(10)" json:"date"`

	GoldRatePerGram   decimal.Decimal `gorm:"type:decimal(12,2)" json:"goldRatePerGram"`
	SilverRatePerGram decimal.Decimal `gorm:"type:decimal(12,2)" json:"silverRatePerGram"`
	EnteredManually   bool            `gorm:"default:false" json:"enteredManually"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (r *Rate) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
