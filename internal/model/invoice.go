package model

import "github.com/google/uuid"

// Invoice is a vendor expense invoice with its line items. Totals are
// computed server-side; TotalAmountUSD comes from a live exchange rate at
// write time and falls back to zero when the rate cannot be fetched.
type Invoice struct {
	BaseModel
	InvoiceNumber   string  `gorm:"type:varchar(100);uniqueIndex;not null" json:"invoice_number" validate:"required"`
	VendorName      string  `gorm:"type:varchar(255);not null" json:"vendor_name" validate:"required"`
	InvoiceDate     string  `gorm:"type:varchar(10);not null" json:"invoice_date" validate:"required"`
	TotalAmount     float64 `gorm:"not null" json:"total_amount"`
	TotalAmountUSD  float64 `json:"total_amount_usd"`
	InvoiceFilePath string  `gorm:"type:varchar(512)" json:"invoice_file_path"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
}

func (Invoice) TableName() string {
	return "invoices"
}

type InvoiceItem struct {
	BaseModel
	InvoiceID     uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ItemName      string    `gorm:"type:varchar(255);not null" json:"item_name"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	Price         float64   `gorm:"not null" json:"price"`
	TaxPercentage float64   `gorm:"not null" json:"tax_percentage"`
	ItemAmount    float64   `gorm:"not null" json:"item_amount"`
}

func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// InvoiceItemRequest is a line item as submitted by the client. Amounts are
// ignored if supplied; the service recomputes them.
type InvoiceItemRequest struct {
	ItemName      string  `json:"item_name"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	TaxPercentage float64 `json:"tax_percentage"`
}

// Amount is quantity x price x (1 + tax/100).
func (r InvoiceItemRequest) Amount() float64 {
	return float64(r.Quantity) * r.Price * (1 + r.TaxPercentage/100)
}

// InvoiceRequest is the create/update payload, optionally carrying an inline
// base64 file upload.
type InvoiceRequest struct {
	VendorName        string               `json:"vendor_name"`
	InvoiceNumber     string               `json:"invoice_number"`
	InvoiceDate       string               `json:"invoice_date"`
	Items             []InvoiceItemRequest `json:"items"`
	InvoiceFileBase64 string               `json:"invoice_file_base64"`
	InvoiceFileName   string               `json:"invoice_file_name"`
}
