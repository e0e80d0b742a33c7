// controllers/invoice.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"jewelbill-backend/config"
	"jewelbill-backend/models"
	"jewelbill-backend/services"
	"jewelbill-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceItemInput defines the structure for an invoice line item
type InvoiceItemInput struct {
	Category string           `json:"category" binding:"required"`
	ItemName string           `json:"itemName"`
	Weight   decimal.Decimal  `json:"weight"`
	UnitRate decimal.Decimal  `json:"unitRate"`
	Amount   *decimal.Decimal `json:"amount"`
	Clarity  string           `json:"clarity"`
	Carat    string           `json:"carat"`
	Color    string           `json:"color"`
}

// CreateInvoiceInput defines the expected JSON structure for creating an invoice
type CreateInvoiceInput struct {
	Customer struct {
		Name    string `json:"name" binding:"required"`
		Phone   string `json:"phone" binding:"required"`
		Address string `json:"address"`
	} `json:"customer" binding:"required"`
	Items []InvoiceItemInput `json:"items" binding:"required,min=1"`

	// Client-computed totals, accepted for cross-checking only
	Subtotal   *decimal.Decimal `json:"subtotal"`
	TaxAmount  *decimal.Decimal `json:"taxAmount"`
	GrandTotal *decimal.Decimal `json:"grandTotal"`
}

var notifier *services.NotifyService

func invoiceNotifier() *services.NotifyService {
	if notifier == nil {
		notifier = services.NewNotifyService(config.DB, config.Get())
	}
	return notifier
}

// CreateInvoice validates the submitted invoice, recomputes every derived
// value server-side and persists it under a freshly reserved invoice number.
func CreateInvoice(c *gin.Context) {
	var input CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Customer.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer phone number")
		return
	}

	items := make([]models.InvoiceItem, 0, len(input.Items))
	for _, in := range input.Items {
		item := models.InvoiceItem{
			Category: in.Category,
			ItemName: in.ItemName,
			Weight:   in.Weight,
			UnitRate: in.UnitRate,
			Clarity:  in.Clarity,
			Carat:    in.Carat,
			Color:    in.Color,
		}
		// Omitted amounts are filled in; submitted ones must agree with
		// weight * rate.
		if in.Amount != nil {
			item.Amount = *in.Amount
		} else {
			item.Amount = services.ItemAmount(in.Weight, in.UnitRate)
		}
		items = append(items, item)
	}

	if err := services.ValidateItems(items); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	appCfg := config.Get()
	totals := services.CalculateTotals(items, appCfg.TaxRatePercent)

	if mismatch(input.Subtotal, totals.Subtotal) ||
		mismatch(input.TaxAmount, totals.TaxAmount) ||
		mismatch(input.GrandTotal, totals.GrandTotal) {
		utils.RespondWithError(c, http.StatusBadRequest, services.ErrTotalsMismatch.Error())
		return
	}

	invoice := models.Invoice{
		Customer: models.Customer{
			Name:    input.Customer.Name,
			Phone:   input.Customer.Phone,
			Address: input.Customer.Address,
		},
		Subtotal:   totals.Subtotal,
		TaxAmount:  totals.TaxAmount,
		GrandTotal: totals.GrandTotal,
		Items:      items,
	}

	// A duplicate invoice number means we lost a race on the unique index;
	// retry once with a fresh reservation before giving up.
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		err = persistInvoice(&invoice)
		if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice")
		return
	}

	go invoiceNotifier().SendInvoiceCreated(&invoice)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Invoice created successfully",
		"invoice": invoice,
	})
}

// persistInvoice reserves the next number and inserts the invoice in one
// transaction, so a failed insert rolls the reservation back.
func persistInvoice(invoice *models.Invoice) error {
	now := time.Now().UTC()
	return config.DB.Transaction(func(tx *gorm.DB) error {
		number, err := services.ReserveInvoiceNumber(tx, now)
		if err != nil {
			return err
		}
		invoice.ID = uuid.Nil
		for i := range invoice.Items {
			invoice.Items[i].ID = uuid.Nil
		}
		invoice.InvoiceNumber = number
		invoice.CreatedAt = now
		return tx.Create(invoice).Error
	})
}

func mismatch(submitted *decimal.Decimal, computed decimal.Decimal) bool {
	return submitted != nil && !submitted.Equal(computed)
}

// GetInvoices retrieves all invoices, newest first
func GetInvoices(c *gin.Context) {
	var invoices []models.Invoice
	if err := config.DB.Preload("Items").
		Order("created_at DESC").
		Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// GetInvoice retrieves a specific invoice by ID
func GetInvoice(c *gin.Context) {
	invoice, ok := findInvoice(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// GetInvoicePDF renders an invoice as a downloadable PDF document
func GetInvoicePDF(c *gin.Context) {
	invoice, ok := findInvoice(c)
	if !ok {
		return
	}

	data, err := services.RenderInvoicePDF(invoice, config.Get())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to render PDF")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="Invoice_`+invoice.InvoiceNumber+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func findInvoice(c *gin.Context) (*models.Invoice, bool) {
	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return nil, false
	}

	var invoice models.Invoice
	if err := config.DB.Preload("Items").
		Where("id = ?", invoiceUUID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}

	return &invoice, true
}
