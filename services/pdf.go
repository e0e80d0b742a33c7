// services/pdf.go
package services

import (
	"bytes"
	"fmt"
	"time"

	"jewelbill-backend/config"
	"jewelbill-backend/models"

	"github.com/jung-kurt/gofpdf"
)

// RenderInvoicePDF produces an A4 tax invoice document. Letterhead values
// come from the config struct, never from literals here.
func RenderInvoicePDF(invoice *models.Invoice, cfg *config.App) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Letterhead
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, cfg.CompanyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, cfg.CompanyAddress, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, "Tel: "+cfg.CompanyPhone, "", 1, "C", false, 0, "")
	if cfg.CompanyTRN != "" {
		pdf.CellFormat(0, 5, "TRN: "+cfg.CompanyTRN, "", 1, "C", false, 0, "")
	}
	pdf.Ln(2)
	pdf.SetDrawColor(180, 150, 50)
	pdf.SetLineWidth(0.6)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "TAX INVOICE", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// Invoice meta and bill-to
	metaY := pdf.GetY()
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(22, 6, "Bill To:")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(90, 5, invoice.Customer.Name)
	pdf.Ln(5)
	pdf.Cell(90, 5, invoice.Customer.Phone)
	pdf.Ln(5)
	if invoice.Customer.Address != "" {
		pdf.MultiCell(90, 5, invoice.Customer.Address, "", "L", false)
	}

	pdf.SetXY(120, metaY)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(30, 6, "Invoice No:")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(45, 6, invoice.InvoiceNumber)
	pdf.SetXY(120, metaY+6)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(30, 6, "Date:")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(45, 6, invoice.CreatedAt.UTC().Format("02 Jan 2006"))
	pdf.Ln(14)

	// Items table
	type col struct {
		title string
		width float64
		align string
	}
	cols := []col{
		{"#", 8, "C"},
		{"Category", 33, "L"},
		{"Item", 30, "L"},
		{"Weight (g)", 20, "R"},
		{"Clarity", 16, "C"},
		{"Carat", 14, "C"},
		{"Color", 14, "C"},
		{"Rate", 22, "R"},
		{"Amount", 23, "R"},
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(245, 240, 225)
	for _, c := range cols {
		pdf.CellFormat(c.width, 7, c.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for i, item := range invoice.Items {
		row := []string{
			fmt.Sprintf("%d", i+1),
			item.Category,
			item.ItemName,
			item.Weight.StringFixed(3),
			item.Clarity,
			item.Carat,
			item.Color,
			item.UnitRate.StringFixed(2),
			item.Amount.StringFixed(2),
		}
		for j, c := range cols {
			pdf.CellFormat(c.width, 6, row[j], "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	// Totals box, right aligned
	totals := []struct {
		label string
		value string
	}{
		{"Subtotal", cfg.Currency + " " + invoice.Subtotal.StringFixed(2)},
		{fmt.Sprintf("VAT (%s%%)", cfg.TaxRatePercent.String()), cfg.Currency + " " + invoice.TaxAmount.StringFixed(2)},
		{"Grand Total", cfg.Currency + " " + invoice.GrandTotal.StringFixed(2)},
	}
	for i, t := range totals {
		pdf.SetX(120)
		if i == len(totals)-1 {
			pdf.SetFont("Helvetica", "B", 11)
		} else {
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.CellFormat(40, 7, t.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, t.value, "", 1, "R", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 5, "Thank you for your business!", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(0, 4, fmt.Sprintf("Generated on %s", time.Now().UTC().Format(time.RFC1123)), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}
