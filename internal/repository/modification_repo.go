package repository

import (
	"github.com/ServEase-Innovations/payments/internal/models"

	"gorm.io/gorm"
)

type ModificationRepository struct {
	db *gorm.DB
}

func NewModificationRepository(db *gorm.DB) *ModificationRepository {
	return &ModificationRepository{db: db}
}

func (r *ModificationRepository) WithTx(tx *gorm.DB) *ModificationRepository {
	return &ModificationRepository{db: tx}
}

func (r *ModificationRepository) Create(m *models.EngagementModification) error {
	return r.db.Create(m).Error
}

func (r *ModificationRepository) ListByEngagementIDs(ids []uint) ([]models.EngagementModification, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.EngagementModification
	err := r.db.Where("engagement_id IN ?", ids).Order("created_at DESC").Find(&list).Error
	return list, err
}
