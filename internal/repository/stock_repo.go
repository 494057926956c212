package repository

import (
	"go-itops-portal/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockRepository interface {
	Create(item *model.StockItem) error
	FindAll() ([]model.StockItem, error)
	FindByID(id uuid.UUID) (*model.StockItem, error)
	Update(item *model.StockItem) error
	Delete(id uuid.UUID) (int64, error)
	DistinctItemNames() ([]string, error)
}

type stockRepo struct {
	db *gorm.DB
}

func NewStockRepo(db *gorm.DB) StockRepository {
	return &stockRepo{db}
}

func (r *stockRepo) Create(item *model.StockItem) error {
	return r.db.Create(item).Error
}

func (r *stockRepo) FindAll() ([]model.StockItem, error) {
	var items []model.StockItem
	err := r.db.Order("item_name ASC").Find(&items).Error
	return items, err
}

func (r *stockRepo) FindByID(id uuid.UUID) (*model.StockItem, error) {
	var item model.StockItem
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *stockRepo) Update(item *model.StockItem) error {
	return r.db.Save(item).Error
}

func (r *stockRepo) Delete(id uuid.UUID) (int64, error) {
	res := r.db.Delete(&model.StockItem{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *stockRepo) DistinctItemNames() ([]string, error) {
	var names []string
	err := r.db.Model(&model.StockItem{}).
		Distinct("item_name").
		Order("item_name ASC").
		Pluck("item_name", &names).Error
	return names, err
}
