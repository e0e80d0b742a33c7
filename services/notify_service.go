// services/notify_service.go
package services

import (
	"fmt"
	"strings"
	"time"

	"jewelbill-backend/config"
	"jewelbill-backend/models"

	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// NotifyService sends the customer a short message when their invoice is
// created. Best effort: a delivery failure is logged, never surfaced to the
// creation request.
type NotifyService struct {
	db     *gorm.DB
	cfg    *config.App
	client *twilio.RestClient
}

func NewNotifyService(db *gorm.DB, cfg *config.App) *NotifyService {
	return &NotifyService{
		db:  db,
		cfg: cfg,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		}),
	}
}

func (s *NotifyService) Enabled() bool {
	return s.cfg.NotifyCustomers && s.cfg.TwilioAccountSID != ""
}

func (s *NotifyService) SendInvoiceCreated(invoice *models.Invoice) {
	if !s.Enabled() {
		return
	}

	message := fmt.Sprintf("Dear %s, thank you for your purchase. Invoice %s for %s %s has been issued by %s.",
		invoice.Customer.Name, invoice.InvoiceNumber,
		s.cfg.Currency, invoice.GrandTotal.StringFixed(2), s.cfg.CompanyName)

	// WhatsApp for E.164 numbers, plain SMS otherwise
	channel := "sms"
	to := invoice.Customer.Phone
	from := s.cfg.TwilioPhoneNumber
	if strings.HasPrefix(invoice.Customer.Phone, "+") && s.cfg.TwilioWhatsAppNumber != "" {
		channel = "whatsapp"
		to = "whatsapp:" + invoice.Customer.Phone
		from = "whatsapp:" + s.cfg.TwilioWhatsAppNumber
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(message)

	status := "sent"
	errorMsg := ""
	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Error().Err(err).Str("phone", invoice.Customer.Phone).Msg("invoice notification failed")
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Info().Str("sid", *resp.Sid).Str("invoice", invoice.InvoiceNumber).Msg("invoice notification sent")
	}

	entry := models.NotificationLog{
		InvoiceID:    invoice.ID,
		Channel:      channel,
		Destination:  invoice.Customer.Phone,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		SentAt:       time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Error().Err(err).Str("invoice", invoice.InvoiceNumber).Msg("failed to log notification")
	}
}
