package models

import (
	"time"
)

// WalletTransaction is one immutable ledger entry. Rows are only ever
// appended; replaying them in creation order reproduces the wallet balance.
type WalletTransaction struct {
	ID           uint    `gorm:"primaryKey" json:"transaction_id"`
	WalletID     uint    `gorm:"not null;index:idx_wallet_txns_owner" json:"wallet_id"`
	OwnerRole    string  `gorm:"size:20;not null;index:idx_wallet_txns_owner" json:"owner_role"` // CUSTOMER or PROVIDER
	EngagementID *uint   `gorm:"index" json:"engagement_id,omitempty"`
	Type         string  `gorm:"size:20;not null" json:"transaction_type"` // CREDIT, DEBIT, REFUND, ADJUSTMENT
	Amount       float64 `gorm:"not null" json:"amount"`
	Description  string  `gorm:"type:text" json:"description"`
	BalanceAfter float64 `gorm:"not null" json:"balance_after"`

	CreatedAt time.Time `json:"created_at"`
}

func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}

const (
	OwnerCustomer = "CUSTOMER"
	OwnerProvider = "PROVIDER"
)
