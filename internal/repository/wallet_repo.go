package repository

import (
	"github.com/ServEase-Innovations/payments/internal/models"

	"gorm.io/gorm"
)

type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) WithTx(tx *gorm.DB) *WalletRepository {
	return &WalletRepository{db: tx}
}

func (r *WalletRepository) GetByCustomerID(customerID uint) (*models.Wallet, error) {
	var w models.Wallet
	if err := r.db.Where("customer_id = ?", customerID).First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WalletRepository) GetOrCreate(customerID uint) (*models.Wallet, error) {
	w, err := r.GetByCustomerID(customerID)
	if err == nil {
		return w, nil
	}
	w = &models.Wallet{CustomerID: customerID, Balance: 0}
	if err := r.db.Create(w).Error; err != nil {
		return nil, err
	}
	return w, nil
}

func (r *WalletRepository) Save(w *models.Wallet) error {
	return r.db.Save(w).Error
}

func (r *WalletRepository) CreateTransaction(t *models.WalletTransaction) error {
	return r.db.Create(t).Error
}

// RecentTransactions returns the latest ledger entries for a wallet, newest
// first.
func (r *WalletRepository) RecentTransactions(walletID uint, ownerRole string, limit int) ([]models.WalletTransaction, error) {
	var list []models.WalletTransaction
	err := r.db.Where("wallet_id = ? AND owner_role = ?", walletID, ownerRole).
		Order("created_at DESC, id DESC").Limit(limit).Find(&list).Error
	return list, err
}

// TransactionsInOrder returns every ledger entry for a wallet in creation
// order, for balance replay.
func (r *WalletRepository) TransactionsInOrder(walletID uint, ownerRole string) ([]models.WalletTransaction, error) {
	var list []models.WalletTransaction
	err := r.db.Where("wallet_id = ? AND owner_role = ?", walletID, ownerRole).
		Order("created_at ASC, id ASC").Find(&list).Error
	return list, err
}
