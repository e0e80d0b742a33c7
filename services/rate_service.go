// services/rate_service.go
package services

import (
	"errors"
	"time"

	"jewelbill-backend/models"
	"jewelbill-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// RateService carries the previous day's gold/silver rates forward when no
// rate has been entered for the current day, so invoice entry always has a
// price to prefill.
type RateService struct {
	db *gorm.DB
}

func NewRateService(db *gorm.DB) *RateService {
	return &RateService{db: db}
}

func (s *RateService) StartScheduler() {
	c := cron.New()

	// Shortly after midnight UTC
	c.AddFunc("5 0 * * *", func() {
		if err := s.RollForward(time.Now()); err != nil {
			log.Error().Err(err).Msg("rate roll-forward failed")
		}
	})

	c.Start()
	log.Info().Msg("rate scheduler started")
}

// RollForward copies yesterday's rate onto today's date unless today already
// has one. Auto-carried rates are marked as not entered manually.
func (s *RateService) RollForward(now time.Time) error {
	today := utils.ISODate(now)
	yesterday := utils.ISODate(now.AddDate(0, 0, -1))

	var existing models.Rate
	err := s.db.Where("date = ?", today).First(&existing).Error
	if err == nil {
		return nil // today's rate already present
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var previous models.Rate
	if err := s.db.Where("date = ?", yesterday).First(&previous).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().Str("date", yesterday).Msg("no previous rate to carry forward")
			return nil
		}
		return err
	}

	carried := models.Rate{
		Date:              today,
		GoldRatePerGram:   previous.GoldRatePerGram,
		SilverRatePerGram: previous.SilverRatePerGram,
		EnteredManually:   false,
	}
	if err := s.db.Create(&carried).Error; err != nil {
		return err
	}

	log.Info().Str("date", today).Msg("carried previous day's rates forward")
	return nil
}
