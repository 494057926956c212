package repository

import (
	"go-itops-portal/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NewHireRepository interface {
	Create(hire *model.NewHire) error
	FindAll() ([]model.NewHire, error)
	FindByID(id uuid.UUID) (*model.NewHire, error)
	Update(hire *model.NewHire) error
	Delete(id uuid.UUID) (int64, error)
}

type newHireRepo struct {
	db *gorm.DB
}

func NewNewHireRepo(db *gorm.DB) NewHireRepository {
	return &newHireRepo{db}
}

func (r *newHireRepo) Create(hire *model.NewHire) error {
	return r.db.Create(hire).Error
}

func (r *newHireRepo) FindAll() ([]model.NewHire, error) {
	var hires []model.NewHire
	err := r.db.Order("created_at DESC").Find(&hires).Error
	return hires, err
}

func (r *newHireRepo) FindByID(id uuid.UUID) (*model.NewHire, error) {
	var hire model.NewHire
	if err := r.db.First(&hire, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &hire, nil
}

func (r *newHireRepo) Update(hire *model.NewHire) error {
	return r.db.Save(hire).Error
}

func (r *newHireRepo) Delete(id uuid.UUID) (int64, error) {
	res := r.db.Delete(&model.NewHire{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
