package models

import "time"

// InvoiceSequence is the per-year invoice number counter. One row per
// calendar year (UTC), LastValue is the last issued sequence number.
// Reservation happens through an atomic upsert, never a count query.
type InvoiceSequence struct {
	Year      int   `gorm:"primaryKey;autoIncrement:false" json:"year"`
	LastValue int64 `gorm:"not null;default:0" json:"lastValue"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
