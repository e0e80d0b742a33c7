package config

import (
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

// App holds all runtime configuration. Tax rate and letterhead values are
// deliberately kept here instead of being embedded at call sites.
type App struct {
	Port           string
	TaxRatePercent decimal.Decimal
	Currency       string

	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyTRN     string

	NotifyCustomers      bool
	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioPhoneNumber    string
	TwilioWhatsAppNumber string
}

var app *App

// Get returns the process-wide configuration, loading it on first use.
func Get() *App {
	if app == nil {
		app = Load()
	}
	return app
}

func Load() *App {
	return &App{
		Port:           getEnv("PORT", "8080"),
		TaxRatePercent: getEnvAsDecimal("TAX_RATE_PERCENT", "5"),
		Currency:       getEnv("CURRENCY", "AED"),

		CompanyName:    getEnv("COMPANY_NAME", "Jewel Trading LLC"),
		CompanyAddress: getEnv("COMPANY_ADDRESS", "Gold Souk, Deira, Dubai, UAE"),
		CompanyPhone:   getEnv("COMPANY_PHONE", "+971-4-0000000"),
		CompanyTRN:     getEnv("COMPANY_TRN", ""),

		NotifyCustomers:      getEnvAsBool("NOTIFY_CUSTOMERS", false),
		TwilioAccountSID:     getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:      getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioPhoneNumber:    getEnv("TWILIO_PHONE_NUMBER", ""),
		TwilioWhatsAppNumber: getEnv("TWILIO_WHATSAPP_NUMBER", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDecimal(key, defaultValue string) decimal.Decimal {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		d, _ = decimal.NewFromString(defaultValue)
	}
	return d
}
