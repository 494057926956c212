package repository

import (
	"go-itops-portal/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	FindAll() ([]model.Invoice, error)
	FindByID(id uuid.UUID) (*model.Invoice, error)
	FindByNumber(number string) (*model.Invoice, error)
	// ReplaceItems deletes and reinserts an invoice's line items. It takes a
	// tx so the caller can pair it with the invoice-row write atomically.
	ReplaceItems(tx *gorm.DB, invoiceID uuid.UUID, items []model.InvoiceItem) error
	Delete(id uuid.UUID) (int64, error)
}

type invoiceRepo struct {
	db *gorm.DB
}

func NewInvoiceRepo(db *gorm.DB) InvoiceRepository {
	return &invoiceRepo{db}
}

func (r *invoiceRepo) FindAll() ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.db.Preload("Items").
		Order("invoice_date DESC, created_at DESC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepo) FindByID(id uuid.UUID) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := r.db.Preload("Items").First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepo) FindByNumber(number string) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := r.db.First(&invoice, "invoice_number = ?", number).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepo) ReplaceItems(tx *gorm.DB, invoiceID uuid.UUID, items []model.InvoiceItem) error {
	if err := tx.Delete(&model.InvoiceItem{}, "invoice_id = ?", invoiceID).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].InvoiceID = invoiceID
		if err := tx.Create(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *invoiceRepo) Delete(id uuid.UUID) (int64, error) {
	// Line items cascade on the foreign key.
	res := r.db.Delete(&model.Invoice{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
