package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go-itops-portal/internal/exchange"
	"go-itops-portal/internal/model"
	"go-itops-portal/internal/repository"
	"go-itops-portal/internal/ws"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Source currency for invoice totals; the stored USD total converts from it.
const invoiceCurrency = "INR"

type InvoiceService interface {
	GetAll() ([]model.Invoice, error)
	GetByID(id uuid.UUID) (*model.Invoice, error)
	Create(req *model.InvoiceRequest, actor string) (*model.Invoice, error)
	Update(id uuid.UUID, req *model.InvoiceRequest, actor string) (*model.Invoice, error)
	Delete(id uuid.UUID) (int64, error)
	FilePath(id uuid.UUID) (string, error)
}

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	rates       exchange.RateSource
	db          *gorm.DB
	hub         *ws.Hub
	uploadsDir  string
}

func NewInvoiceService(invoiceRepo repository.InvoiceRepository, rates exchange.RateSource, db *gorm.DB, hub *ws.Hub, uploadsDir string) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		rates:       rates,
		db:          db,
		hub:         hub,
		uploadsDir:  uploadsDir,
	}
}

func (s *invoiceService) GetAll() ([]model.Invoice, error) {
	return s.invoiceRepo.FindAll()
}

func (s *invoiceService) GetByID(id uuid.UUID) (*model.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(id)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) Create(req *model.InvoiceRequest, actor string) (*model.Invoice, error) {
	if err := validateInvoiceRequest(req); err != nil {
		return nil, err
	}

	if existing, _ := s.invoiceRepo.FindByNumber(req.InvoiceNumber); existing != nil && existing.ID != uuid.Nil {
		return nil, validationErrf("invoice number '%s' already exists", req.InvoiceNumber)
	}

	items, total := buildItems(req.Items)
	totalUSD := s.convertToUSD(total)

	filePath, err := s.storeFile(req)
	if err != nil {
		return nil, err
	}

	invoice := &model.Invoice{
		InvoiceNumber:   req.InvoiceNumber,
		VendorName:      req.VendorName,
		InvoiceDate:     req.InvoiceDate,
		TotalAmount:     total,
		TotalAmountUSD:  totalUSD,
		InvoiceFilePath: filePath,
		Items:           items,
	}
	invoice.CreatedBy = actor
	invoice.UpdatedBy = actor

	// GORM inserts the invoice and its items in one transaction.
	if err := s.db.Create(invoice).Error; err != nil {
		s.removeFile(filePath)
		return nil, err
	}

	s.hub.Publish("invoice_created", "it_expenses", invoice)
	return invoice, nil
}

func (s *invoiceService) Update(id uuid.UUID, req *model.InvoiceRequest, actor string) (*model.Invoice, error) {
	if err := validateInvoiceRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.invoiceRepo.FindByID(id)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.InvoiceNumber != existing.InvoiceNumber {
		if dup, _ := s.invoiceRepo.FindByNumber(req.InvoiceNumber); dup != nil && dup.ID != uuid.Nil && dup.ID != existing.ID {
			return nil, validationErrf("invoice number '%s' already exists", req.InvoiceNumber)
		}
	}

	items, total := buildItems(req.Items)
	totalUSD := s.convertToUSD(total)

	newFilePath, err := s.storeFile(req)
	if err != nil {
		return nil, err
	}
	oldFilePath := existing.InvoiceFilePath

	err = s.db.Transaction(func(tx *gorm.DB) error {
		existing.VendorName = req.VendorName
		existing.InvoiceNumber = req.InvoiceNumber
		existing.InvoiceDate = req.InvoiceDate
		existing.TotalAmount = total
		existing.TotalAmountUSD = totalUSD
		if newFilePath != "" {
			existing.InvoiceFilePath = newFilePath
		}
		existing.UpdatedBy = actor
		existing.Items = nil

		if err := tx.Omit("Items").Save(existing).Error; err != nil {
			return err
		}
		return s.invoiceRepo.ReplaceItems(tx, existing.ID, items)
	})
	if err != nil {
		s.removeFile(newFilePath)
		return nil, err
	}

	if newFilePath != "" && oldFilePath != "" {
		s.removeFile(oldFilePath)
	}
	existing.Items = items

	s.hub.Publish("invoice_updated", "it_expenses", existing)
	return existing, nil
}

func (s *invoiceService) Delete(id uuid.UUID) (int64, error) {
	invoice, err := s.invoiceRepo.FindByID(id)
	if err != nil {
		if notFound(err) {
			return 0, nil
		}
		return 0, err
	}

	changes, err := s.invoiceRepo.Delete(id)
	if err != nil {
		return 0, err
	}
	if changes > 0 {
		s.removeFile(invoice.InvoiceFilePath)
		s.hub.Publish("invoice_deleted", "it_expenses", map[string]interface{}{"id": id})
	}
	return changes, nil
}

// FilePath returns the stored upload path for the download endpoint.
func (s *invoiceService) FilePath(id uuid.UUID) (string, error) {
	invoice, err := s.invoiceRepo.FindByID(id)
	if err != nil {
		if notFound(err) {
			return "", ErrNotFound
		}
		return "", err
	}
	if invoice.InvoiceFilePath == "" {
		return "", ErrNotFound
	}
	if _, err := os.Stat(invoice.InvoiceFilePath); err != nil {
		return "", ErrNotFound
	}
	return invoice.InvoiceFilePath, nil
}

// convertToUSD fetches the live rate with a short deadline. A fetch failure
// degrades to a zero converted total rather than blocking the write.
func (s *invoiceService) convertToUSD(total float64) float64 {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rate, err := s.rates.USDRate(ctx, invoiceCurrency)
	if err != nil {
		zap.L().Warn("exchange rate fetch failed, storing zero USD total", zap.Error(err))
		return 0
	}
	return total / rate
}

// storeFile decodes an inline base64 upload into the uploads dir with a
// timestamp-prefixed name. Returns "" when no file was supplied.
func (s *invoiceService) storeFile(req *model.InvoiceRequest) (string, error) {
	if req.InvoiceFileBase64 == "" || req.InvoiceFileName == "" {
		return "", nil
	}

	data, err := base64.StdEncoding.DecodeString(req.InvoiceFileBase64)
	if err != nil {
		return "", validationErrf("invoice file is not valid base64")
	}

	if err := os.MkdirAll(s.uploadsDir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(req.InvoiceFileName))
	path := filepath.Join(s.uploadsDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (s *invoiceService) removeFile(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		zap.L().Warn("failed to remove invoice file", zap.String("path", path), zap.Error(err))
	}
}

func buildItems(reqs []model.InvoiceItemRequest) ([]model.InvoiceItem, float64) {
	items := make([]model.InvoiceItem, 0, len(reqs))
	var total float64
	for _, r := range reqs {
		amount := r.Amount()
		total += amount
		items = append(items, model.InvoiceItem{
			ItemName:      r.ItemName,
			Quantity:      r.Quantity,
			Price:         r.Price,
			TaxPercentage: r.TaxPercentage,
			ItemAmount:    amount,
		})
	}
	return items, total
}

func validateInvoiceRequest(req *model.InvoiceRequest) error {
	if req.VendorName == "" || req.InvoiceNumber == "" || req.InvoiceDate == "" {
		return validationErrf("vendor_name, invoice_number, and invoice_date are required")
	}
	if len(req.Items) == 0 {
		return validationErrf("at least one item is required")
	}
	for _, item := range req.Items {
		if item.ItemName == "" {
			return validationErrf("item_name is required for each item")
		}
		if item.Quantity <= 0 {
			return validationErrf("quantity must be positive for item '%s'", item.ItemName)
		}
		if item.Price < 0 || item.TaxPercentage < 0 {
			return validationErrf("price and tax_percentage cannot be negative for item '%s'", item.ItemName)
		}
	}
	return nil
}
