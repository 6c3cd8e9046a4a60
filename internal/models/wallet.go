package models

import (
	"time"
)

// Wallet is a customer wallet. Created lazily on the first ledger entry.
type Wallet struct {
	ID         uint    `gorm:"primaryKey" json:"wallet_id"`
	CustomerID uint    `gorm:"uniqueIndex;not null" json:"customer_id"`
	Balance    float64 `gorm:"not null;default:0" json:"balance"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Wallet) TableName() string {
	return "wallets"
}

// ProviderWallet carries the provider's running balance plus the security
// deposit withheld from payouts, capped at domain.SecurityDepositCap.
type ProviderWallet struct {
	ID                       uint    `gorm:"primaryKey" json:"wallet_id"`
	ProviderID               uint    `gorm:"uniqueIndex;not null" json:"provider_id"`
	Balance                  float64 `gorm:"not null;default:0" json:"balance"`
	SecurityDepositCollected float64 `gorm:"not null;default:0" json:"security_deposit_collected"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProviderWallet) TableName() string {
	return "provider_wallets"
}
