package service

import (
	"context"
	"encoding/base64"
	"errors"
	"math"
	"os"
	"testing"

	"go-itops-portal/internal/model"
	"go-itops-portal/internal/repository"

	"gorm.io/gorm"
)

type stubRates struct {
	rate float64
	err  error
}

func (s stubRates) USDRate(ctx context.Context, currency string) (float64, error) {
	return s.rate, s.err
}

func newInvoiceService(t *testing.T, rates stubRates) (InvoiceService, *gorm.DB) {
	t.Helper()
	db := testDB(t)
	return NewInvoiceService(repository.NewInvoiceRepo(db), rates, db, testHub(), t.TempDir()), db
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestInvoiceCreateComputesTotals(t *testing.T) {
	svc, _ := newInvoiceService(t, stubRates{rate: 80})

	invoice, err := svc.Create(&model.InvoiceRequest{
		VendorName:    "Acme Corp",
		InvoiceNumber: "INV-001",
		InvoiceDate:   "2026-08-01",
		Items: []model.InvoiceItemRequest{
			{ItemName: "Laptop", Quantity: 2, Price: 100, TaxPercentage: 18},
			{ItemName: "Mouse", Quantity: 1, Price: 50, TaxPercentage: 0},
		},
	}, "tester")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// 2*100*1.18 + 1*50 = 286
	if !almostEqual(invoice.TotalAmount, 286) {
		t.Errorf("total = %v, want 286", invoice.TotalAmount)
	}
	if !almostEqual(invoice.TotalAmountUSD, 286.0/80) {
		t.Errorf("usd total = %v, want %v", invoice.TotalAmountUSD, 286.0/80)
	}
	if len(invoice.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(invoice.Items))
	}
	if !almostEqual(invoice.Items[0].ItemAmount, 236) {
		t.Errorf("item amount = %v, want 236", invoice.Items[0].ItemAmount)
	}
}

func TestInvoiceCreateZeroUSDOnRateFailure(t *testing.T) {
	svc, _ := newInvoiceService(t, stubRates{err: errors.New("rate service down")})

	invoice, err := svc.Create(&model.InvoiceRequest{
		VendorName:    "Acme Corp",
		InvoiceNumber: "INV-002",
		InvoiceDate:   "2026-08-01",
		Items:         []model.InvoiceItemRequest{{ItemName: "Laptop", Quantity: 1, Price: 100}},
	}, "tester")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if invoice.TotalAmountUSD != 0 {
		t.Errorf("usd total = %v, want 0 on fetch failure", invoice.TotalAmountUSD)
	}
	if invoice.TotalAmount != 100 {
		t.Errorf("source total = %v, want 100 regardless of rate failure", invoice.TotalAmount)
	}
}

func TestInvoiceCreateValidation(t *testing.T) {
	svc, _ := newInvoiceService(t, stubRates{rate: 80})

	tests := []struct {
		name string
		req  *model.InvoiceRequest
	}{
		{
			name: "missing vendor",
			req:  &model.InvoiceRequest{InvoiceNumber: "INV-003", InvoiceDate: "2026-08-01", Items: []model.InvoiceItemRequest{{ItemName: "X", Quantity: 1}}},
		},
		{
			name: "no items",
			req:  &model.InvoiceRequest{VendorName: "Acme", InvoiceNumber: "INV-003", InvoiceDate: "2026-08-01"},
		},
		{
			name: "zero quantity",
			req:  &model.InvoiceRequest{VendorName: "Acme", InvoiceNumber: "INV-003", InvoiceDate: "2026-08-01", Items: []model.InvoiceItemRequest{{ItemName: "X", Quantity: 0}}},
		},
		{
			name: "negative price",
			req:  &model.InvoiceRequest{VendorName: "Acme", InvoiceNumber: "INV-003", InvoiceDate: "2026-08-01", Items: []model.InvoiceItemRequest{{ItemName: "X", Quantity: 1, Price: -5}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(tt.req, "tester")
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestInvoiceDuplicateNumber(t *testing.T) {
	svc, _ := newInvoiceService(t, stubRates{rate: 80})

	req := &model.InvoiceRequest{
		VendorName:    "Acme Corp",
		InvoiceNumber: "INV-001",
		InvoiceDate:   "2026-08-01",
		Items:         []model.InvoiceItemRequest{{ItemName: "Laptop", Quantity: 1, Price: 100}},
	}
	if _, err := svc.Create(req, "tester"); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := svc.Create(req, "tester")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestInvoiceFileStoreAndDownload(t *testing.T) {
	svc, _ := newInvoiceService(t, stubRates{rate: 80})

	content := []byte("fake pdf bytes")
	invoice, err := svc.Create(&model.InvoiceRequest{
		VendorName:        "Acme Corp",
		InvoiceNumber:     "INV-001",
		InvoiceDate:       "2026-08-01",
		Items:             []model.InvoiceItemRequest{{ItemName: "Laptop", Quantity: 1, Price: 100}},
		InvoiceFileBase64: base64.StdEncoding.EncodeToString(content),
		InvoiceFileName:   "invoice.pdf",
	}, "tester")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if invoice.InvoiceFilePath == "" {
		t.Fatal("file path not recorded")
	}

	path, err := svc.FilePath(invoice.ID)
	if err != nil {
		t.Fatalf("file path: %v", err)
	}
	stored, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(stored) != string(content) {
		t.Errorf("stored file content mismatch")
	}

	// delete removes both the row and the file
	if _, err := svc.Delete(invoice.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file should be removed with the invoice, stat err = %v", err)
	}
}

func TestInvoiceRejectsBadBase64(t *testing.T) {
	svc, _ := newInvoiceService(t, stubRates{rate: 80})

	_, err := svc.Create(&model.InvoiceRequest{
		VendorName:        "Acme Corp",
		InvoiceNumber:     "INV-001",
		InvoiceDate:       "2026-08-01",
		Items:             []model.InvoiceItemRequest{{ItemName: "Laptop", Quantity: 1, Price: 100}},
		InvoiceFileBase64: "not/base64!!",
		InvoiceFileName:   "invoice.pdf",
	}, "tester")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestInvoiceUpdateRewritesItems(t *testing.T) {
	svc, db := newInvoiceService(t, stubRates{rate: 80})

	invoice, err := svc.Create(&model.InvoiceRequest{
		VendorName:    "Acme Corp",
		InvoiceNumber: "INV-001",
		InvoiceDate:   "2026-08-01",
		Items: []model.InvoiceItemRequest{
			{ItemName: "Laptop", Quantity: 1, Price: 100},
			{ItemName: "Mouse", Quantity: 1, Price: 50},
		},
	}, "tester")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(invoice.ID, &model.InvoiceRequest{
		VendorName:    "Acme Corp",
		InvoiceNumber: "INV-001",
		InvoiceDate:   "2026-08-02",
		Items:         []model.InvoiceItemRequest{{ItemName: "Dock", Quantity: 1, Price: 200}},
	}, "tester")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !almostEqual(updated.TotalAmount, 200) {
		t.Errorf("total = %v, want 200", updated.TotalAmount)
	}

	var count int64
	db.Model(&model.InvoiceItem{}).Where("invoice_id = ?", invoice.ID).Count(&count)
	if count != 1 {
		t.Errorf("item rows = %d, want 1 (old items must be replaced)", count)
	}
}
