package repository

import (
	"go-itops-portal/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssetRepository interface {
	Create(asset *model.Asset) error
	FindAll() ([]model.Asset, error)
	FindByID(id uuid.UUID) (*model.Asset, error)
	FindByTag(tag string) (*model.Asset, error)
	Delete(id uuid.UUID) (int64, error)
}

type assetRepo struct {
	db *gorm.DB
}

func NewAssetRepo(db *gorm.DB) AssetRepository {
	return &assetRepo{db}
}

func (r *assetRepo) Create(asset *model.Asset) error {
	return r.db.Create(asset).Error
}

func (r *assetRepo) FindAll() ([]model.Asset, error) {
	var assets []model.Asset
	err := r.db.Order("created_at DESC").Find(&assets).Error
	return assets, err
}

func (r *assetRepo) FindByID(id uuid.UUID) (*model.Asset, error) {
	var asset model.Asset
	if err := r.db.First(&asset, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepo) FindByTag(tag string) (*model.Asset, error) {
	var asset model.Asset
	if err := r.db.First(&asset, "asset_tag = ?", tag).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepo) Delete(id uuid.UUID) (int64, error) {
	res := r.db.Delete(&model.Asset{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
