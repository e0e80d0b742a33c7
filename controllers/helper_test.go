package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"jewelbill-backend/config"
	"jewelbill-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.Rate{},
		&models.InvoiceSequence{},
		&models.NotificationLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	config.DB = db
}

// testRouter wires the handlers directly, without auth middleware, so each
// handler is exercised in isolation.
func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.POST("/api/users/login", Login)
	r.POST("/api/invoices", CreateInvoice)
	r.GET("/api/invoices", GetInvoices)
	r.GET("/api/invoices/:id", GetInvoice)
	r.GET("/api/invoices/:id/pdf", GetInvoicePDF)
	r.GET("/api/rates", GetRate)
	r.PUT("/api/rates", UpdateRate)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func sampleInvoiceBody() map[string]interface{} {
	return map[string]interface{}{
		"customer": map[string]interface{}{
			"name":    "Ayesha Khan",
			"phone":   "+971501234567",
			"address": "Apt 12, Marina Walk, Dubai",
		},
		"items": []map[string]interface{}{
			{
				"category": "Yellow Gold 18K",
				"itemName": "Bangle",
				"weight":   "10",
				"unitRate": "250.555",
			},
		},
	}
}

func configDBCount(model interface{}, count *int64) error {
	return config.DB.Model(model).Count(count).Error
}

func mustStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, want, w.Body.String())
	}
}
