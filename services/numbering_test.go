package services

import (
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"jewelbill-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	// Serialize access so concurrent reservations exercise the upsert, not
	// sqlite's file locking
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.InvoiceSequence{}, &models.Rate{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func TestFormatInvoiceNumber(t *testing.T) {
	tests := []struct {
		year int
		seq  int64
		want string
	}{
		{2025, 1, "INV-2025-0001"},
		{2025, 42, "INV-2025-0042"},
		{2025, 9999, "INV-2025-9999"},
		{2025, 10000, "INV-2025-10000"}, // width grows past 4 digits
		{2026, 123456, "INV-2026-123456"},
	}

	for _, tt := range tests {
		if got := FormatInvoiceNumber(tt.year, tt.seq); got != tt.want {
			t.Errorf("FormatInvoiceNumber(%d, %d) = %q, want %q", tt.year, tt.seq, got, tt.want)
		}
	}
}

func TestReserveInvoiceNumberSequential(t *testing.T) {
	db := testDB(t)
	at := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	want := []string{"INV-2025-0001", "INV-2025-0002", "INV-2025-0003"}
	for _, w := range want {
		got, err := ReserveInvoiceNumber(db, at)
		if err != nil {
			t.Fatalf("ReserveInvoiceNumber: %v", err)
		}
		if got != w {
			t.Errorf("got %q, want %q", got, w)
		}
	}
}

func TestReserveInvoiceNumberYearBoundary(t *testing.T) {
	db := testDB(t)

	lastOfYear := time.Date(2025, 12, 31, 23, 59, 59, 999_000_000, time.UTC)
	firstOfYear := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	got, err := ReserveInvoiceNumber(db, lastOfYear)
	if err != nil {
		t.Fatalf("ReserveInvoiceNumber: %v", err)
	}
	if got != "INV-2025-0001" {
		t.Errorf("end of 2025: got %q, want INV-2025-0001", got)
	}

	got, err = ReserveInvoiceNumber(db, firstOfYear)
	if err != nil {
		t.Fatalf("ReserveInvoiceNumber: %v", err)
	}
	if got != "INV-2026-0001" {
		t.Errorf("start of 2026: got %q, want INV-2026-0001", got)
	}
}

func TestReserveInvoiceNumberScopeIsUTC(t *testing.T) {
	db := testDB(t)

	// 2026-01-01T03:00+04:00 is still 2025-12-31 in UTC
	gulf := time.FixedZone("GST", 4*3600)
	at := time.Date(2026, 1, 1, 3, 0, 0, 0, gulf)

	got, err := ReserveInvoiceNumber(db, at)
	if err != nil {
		t.Fatalf("ReserveInvoiceNumber: %v", err)
	}
	if got != "INV-2025-0001" {
		t.Errorf("got %q, want INV-2025-0001", got)
	}
}

func TestReserveInvoiceNumberWidthGrowsPast9999(t *testing.T) {
	db := testDB(t)

	if err := db.Create(&models.InvoiceSequence{Year: 2025, LastValue: 9999}).Error; err != nil {
		t.Fatalf("seed sequence: %v", err)
	}

	got, err := ReserveInvoiceNumber(db, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ReserveInvoiceNumber: %v", err)
	}
	if got != "INV-2025-10000" {
		t.Errorf("got %q, want INV-2025-10000", got)
	}
}

func TestReserveInvoiceNumberConcurrent(t *testing.T) {
	db := testDB(t)
	at := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	const n = 50
	numbers := make([]string, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			numbers[i], errs[i] = ReserveInvoiceNumber(db, at)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("reservation %d failed: %v", i, err)
		}
	}

	sort.Strings(numbers)
	for i := 0; i < n; i++ {
		want := FormatInvoiceNumber(2025, int64(i+1))
		if numbers[i] != want {
			t.Fatalf("sequence not dense and duplicate-free: position %d is %q, want %q", i, numbers[i], want)
		}
	}
}
