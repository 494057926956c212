package repository

import (
	"go-itops-portal/internal/model"

	"gorm.io/gorm"
)

// HistoryRepository is insert-only. The audit trail is written by the
// lifecycle workflows and never read back by application logic.
type HistoryRepository interface {
	Record(tx *gorm.DB, entries ...*model.AssetHistory) error
}

type historyRepo struct {
	db *gorm.DB
}

func NewHistoryRepo(db *gorm.DB) HistoryRepository {
	return &historyRepo{db}
}

// Record appends history rows using the caller's transaction so audit
// entries commit or roll back with the workflow that produced them.
func (r *historyRepo) Record(tx *gorm.DB, entries ...*model.AssetHistory) error {
	for _, e := range entries {
		if err := tx.Create(e).Error; err != nil {
			return err
		}
	}
	return nil
}
