package services

import (
	"fmt"
	"time"

	"jewelbill-backend/utils"

	"gorm.io/gorm"
)

// ReserveInvoiceNumber atomically reserves the next invoice number for the
// UTC calendar year of at. The counter row is created lazily on first use of
// a year and the increment-and-read happens in a single upsert statement, so
// concurrent callers can never be handed the same sequence value. Running on
// the caller's transaction means a failed invoice insert rolls the
// reservation back with it.
func ReserveInvoiceNumber(tx *gorm.DB, at time.Time) (string, error) {
	year := utils.YearScope(at)

	var lastValue int64
	err := tx.Raw(`
		INSERT INTO invoice_sequences (year, last_value, created_at, updated_at)
		VALUES (?, 1, ?, ?)
		ON CONFLICT (year) DO UPDATE SET last_value = last_value + 1, updated_at = ?
		RETURNING last_value`,
		year, at, at, at,
	).Scan(&lastValue).Error
	if err != nil {
		return "", fmt.Errorf("reserve invoice number for %d: %w", year, err)
	}

	return FormatInvoiceNumber(year, lastValue), nil
}

// FormatInvoiceNumber renders INV-<year>-<seq> with the sequence zero-padded
// to at least 4 digits; wider sequences keep their natural width.
func FormatInvoiceNumber(year int, seq int64) string {
	return fmt.Sprintf("INV-%d-%04d", year, seq)
}
