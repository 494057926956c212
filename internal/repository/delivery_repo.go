package repository

import (
	"go-itops-portal/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeliveryRepository interface {
	Create(delivery *model.Delivery) error
	FindAll() ([]model.Delivery, error)
	FindByID(id uuid.UUID) (*model.Delivery, error)
	Update(delivery *model.Delivery) error
	Delete(id uuid.UUID) (int64, error)
}

type deliveryRepo struct {
	db *gorm.DB
}

func NewDeliveryRepo(db *gorm.DB) DeliveryRepository {
	return &deliveryRepo{db}
}

func (r *deliveryRepo) Create(delivery *model.Delivery) error {
	return r.db.Create(delivery).Error
}

func (r *deliveryRepo) FindAll() ([]model.Delivery, error) {
	var deliveries []model.Delivery
	err := r.db.Order("created_at DESC").Find(&deliveries).Error
	return deliveries, err
}

func (r *deliveryRepo) FindByID(id uuid.UUID) (*model.Delivery, error) {
	var delivery model.Delivery
	if err := r.db.First(&delivery, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &delivery, nil
}

func (r *deliveryRepo) Update(delivery *model.Delivery) error {
	return r.db.Save(delivery).Error
}

func (r *deliveryRepo) Delete(id uuid.UUID) (int64, error) {
	res := r.db.Delete(&model.Delivery{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
