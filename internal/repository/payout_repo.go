package repository

import (
	"github.com/ServEase-Innovations/payments/internal/models"

	"gorm.io/gorm"
)

type PayoutRepository struct {
	db *gorm.DB
}

func NewPayoutRepository(db *gorm.DB) *PayoutRepository {
	return &PayoutRepository{db: db}
}

func (r *PayoutRepository) WithTx(tx *gorm.DB) *PayoutRepository {
	return &PayoutRepository{db: tx}
}

func (r *PayoutRepository) Create(p *models.Payout) error {
	return r.db.Create(p).Error
}

func (r *PayoutRepository) GetByEngagementID(engagementID uint) (*models.Payout, error) {
	var p models.Payout
	if err := r.db.Where("engagement_id = ?", engagementID).Order("created_at DESC").First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PayoutRepository) Save(p *models.Payout) error {
	return r.db.Save(p).Error
}

// ListByProviderID returns a provider's payouts oldest first, optionally
// bounded to a created_at window.
// HistoryByProviderID returns every payout for the provider, newest first,
// for the ledger-style payment history view.
func (r *PayoutRepository) HistoryByProviderID(providerID uint) ([]models.Payout, error) {
	var list []models.Payout
	err := r.db.Where("provider_id = ?", providerID).
		Order("created_at DESC, id DESC").Find(&list).Error
	return list, err
}

func (r *PayoutRepository) ListByProviderID(providerID uint, from, to *string) ([]models.Payout, error) {
	q := r.db.Where("provider_id = ?", providerID)
	if from != nil && to != nil {
		q = q.Where("created_at BETWEEN ? AND ?", *from, *to)
	}
	var list []models.Payout
	err := q.Order("created_at ASC").Find(&list).Error
	return list, err
}
