package service

import (
	"fmt"
	"strconv"

	"go-itops-portal/internal/csvimport"
	"go-itops-portal/internal/model"
	"go-itops-portal/internal/repository"
	"go-itops-portal/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockService interface {
	GetAll() ([]model.StockItem, error)
	GetByID(id uuid.UUID) (*model.StockItem, error)
	ItemNames() ([]string, error)
	Create(item *model.StockItem, actor string) error
	Update(id uuid.UUID, req *model.StockItem, actor string) (*model.StockItem, error)
	Delete(id uuid.UUID) (int64, error)
	BulkImport(csvData, actor string) (*BulkResult, error)
}

type stockService struct {
	stockRepo repository.StockRepository
	db        *gorm.DB
	hub       *ws.Hub
}

func NewStockService(stockRepo repository.StockRepository, db *gorm.DB, hub *ws.Hub) StockService {
	return &stockService{stockRepo: stockRepo, db: db, hub: hub}
}

func (s *stockService) GetAll() ([]model.StockItem, error) {
	return s.stockRepo.FindAll()
}

func (s *stockService) GetByID(id uuid.UUID) (*model.StockItem, error) {
	item, err := s.stockRepo.FindByID(id)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *stockService) ItemNames() ([]string, error) {
	return s.stockRepo.DistinctItemNames()
}

func (s *stockService) Create(item *model.StockItem, actor string) error {
	if err := validateStruct(item); err != nil {
		return err
	}

	// Balance is derived, never taken from the client. It may go negative
	// when assignments outrun recorded purchases.
	item.RecomputeBalance()
	item.CreatedBy = actor
	item.UpdatedBy = actor
	if err := s.stockRepo.Create(item); err != nil {
		return err
	}

	s.hub.Publish("stock_created", "stock", item)
	return nil
}

func (s *stockService) Update(id uuid.UUID, req *model.StockItem, actor string) (*model.StockItem, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	existing, err := s.stockRepo.FindByID(id)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	existing.ItemName = req.ItemName
	existing.PurchaseQty = req.PurchaseQty
	existing.AssignQty = req.AssignQty
	existing.RecomputeBalance()
	existing.UpdatedBy = actor

	if err := s.stockRepo.Update(existing); err != nil {
		return nil, err
	}

	s.hub.Publish("stock_updated", "stock", existing)
	return existing, nil
}

func (s *stockService) Delete(id uuid.UUID) (int64, error) {
	changes, err := s.stockRepo.Delete(id)
	if err != nil {
		return 0, err
	}
	if changes > 0 {
		s.hub.Publish("stock_deleted", "stock", map[string]interface{}{"id": id})
	}
	return changes, nil
}

// BulkImport inserts stock rows all-or-nothing, recomputing every balance
// server-side.
func (s *stockService) BulkImport(csvData, actor string) (*BulkResult, error) {
	rows, err := csvimport.Parse(csvData)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	items := make([]*model.StockItem, 0, len(rows))
	var rowErrors []string

	for _, row := range rows {
		name := row.Get("item_name", "item name")
		purchaseStr := row.Get("purchase_qty", "purchase quantity")
		assignStr := row.Get("assign_qty", "assign quantity")

		if name == "" {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: item_name is required", row.Line))
			continue
		}
		purchaseQty, err := strconv.Atoi(purchaseStr)
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: purchase_qty must be a number", row.Line))
			continue
		}
		assignQty, err := strconv.Atoi(assignStr)
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: assign_qty must be a number", row.Line))
			continue
		}

		item := &model.StockItem{
			ItemName:    name,
			PurchaseQty: purchaseQty,
			AssignQty:   assignQty,
		}
		item.RecomputeBalance()
		item.CreatedBy = actor
		item.UpdatedBy = actor
		items = append(items, item)
	}

	if len(rowErrors) > 0 {
		return &BulkResult{RowErrors: rowErrors}, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			if err := tx.Create(item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hub.Publish("stock_imported", "stock", map[string]interface{}{"count": len(items)})
	return &BulkResult{Inserted: len(items)}, nil
}
