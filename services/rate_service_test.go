package services

import (
	"errors"
	"testing"
	"time"

	"jewelbill-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func TestRollForward(t *testing.T) {
	now := time.Date(2025, 4, 29, 0, 5, 0, 0, time.UTC)

	t.Run("Carries yesterday's rate", func(t *testing.T) {
		db := testDB(t)
		svc := NewRateService(db)

		previous := models.Rate{
			Date:              "2025-04-28",
			GoldRatePerGram:   decimal.NewFromFloat(289.50),
			SilverRatePerGram: decimal.NewFromFloat(3.45),
			EnteredManually:   true,
		}
		if err := db.Create(&previous).Error; err != nil {
			t.Fatalf("seed rate: %v", err)
		}

		if err := svc.RollForward(now); err != nil {
			t.Fatalf("RollForward: %v", err)
		}

		var carried models.Rate
		if err := db.Where("date = ?", "2025-04-29").First(&carried).Error; err != nil {
			t.Fatalf("carried rate not found: %v", err)
		}
		if !carried.GoldRatePerGram.Equal(previous.GoldRatePerGram) {
			t.Errorf("gold rate = %s, want %s", carried.GoldRatePerGram, previous.GoldRatePerGram)
		}
		if carried.EnteredManually {
			t.Error("carried rate should not be marked as entered manually")
		}
	})

	t.Run("Keeps manually entered rate", func(t *testing.T) {
		db := testDB(t)
		svc := NewRateService(db)

		today := models.Rate{
			Date:            "2025-04-29",
			GoldRatePerGram: decimal.NewFromFloat(295.00),
			EnteredManually: true,
		}
		if err := db.Create(&today).Error; err != nil {
			t.Fatalf("seed rate: %v", err)
		}

		if err := svc.RollForward(now); err != nil {
			t.Fatalf("RollForward: %v", err)
		}

		var stored models.Rate
		if err := db.Where("date = ?", "2025-04-29").First(&stored).Error; err != nil {
			t.Fatalf("rate not found: %v", err)
		}
		if !stored.GoldRatePerGram.Equal(today.GoldRatePerGram) {
			t.Errorf("gold rate = %s, want %s", stored.GoldRatePerGram, today.GoldRatePerGram)
		}
	})

	t.Run("No previous rate is not an error", func(t *testing.T) {
		db := testDB(t)
		svc := NewRateService(db)

		if err := svc.RollForward(now); err != nil {
			t.Fatalf("RollForward: %v", err)
		}

		var stored models.Rate
		err := db.Where("date = ?", "2025-04-29").First(&stored).Error
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Errorf("expected no rate for today, got err=%v", err)
		}
	})
}
