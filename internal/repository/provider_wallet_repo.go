package repository

import (
	"github.com/ServEase-Innovations/payments/internal/models"

	"gorm.io/gorm"
)

type ProviderWalletRepository struct {
	db *gorm.DB
}

func NewProviderWalletRepository(db *gorm.DB) *ProviderWalletRepository {
	return &ProviderWalletRepository{db: db}
}

func (r *ProviderWalletRepository) WithTx(tx *gorm.DB) *ProviderWalletRepository {
	return &ProviderWalletRepository{db: tx}
}

func (r *ProviderWalletRepository) GetByProviderID(providerID uint) (*models.ProviderWallet, error) {
	var w models.ProviderWallet
	if err := r.db.Where("provider_id = ?", providerID).First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *ProviderWalletRepository) GetOrCreate(providerID uint) (*models.ProviderWallet, error) {
	w, err := r.GetByProviderID(providerID)
	if err == nil {
		return w, nil
	}
	w = &models.ProviderWallet{ProviderID: providerID, Balance: 0, SecurityDepositCollected: 0}
	if err := r.db.Create(w).Error; err != nil {
		return nil, err
	}
	return w, nil
}

func (r *ProviderWalletRepository) Save(w *models.ProviderWallet) error {
	return r.db.Save(w).Error
}
