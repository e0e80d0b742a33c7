package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer is denormalized onto the invoice; the business has no separate
// customer registry.
type Customer struct {
	Name    string `gorm:"not null" json:"name"`
	Phone   string `gorm:"not null" json:"phone"`
	Address string `json:"address"`
}

type Invoice struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	InvoiceNumber string   `gorm:"uniqueIndex;not null" json:"invoiceNumber"`
	Customer      Customer `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`

	Subtotal   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	TaxAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"taxAmount"`
	GrandTotal decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"grandTotal"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

type InvoiceItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`

	Category string          `gorm:"not null" json:"category"` // e.g. "Yellow Gold 18K", "Diamond"
	ItemName string          `json:"itemName"`
	Weight   decimal.Decimal `gorm:"type:decimal(10,3);not null" json:"weight"` // grams
	UnitRate decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unitRate"`
	Amount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`

	// Display-only gemstone attributes, carried through to listings and PDFs
	Clarity string `json:"clarity,omitempty"`
	Carat   string `json:"carat,omitempty"`
	Color   string `json:"color,omitempty"`
}

func (i *InvoiceItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
