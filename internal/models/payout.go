package models

import (
	"time"
)

type Payout struct {
	ID           uint    `gorm:"primaryKey" json:"payout_id"`
	ProviderID   uint    `gorm:"not null;index" json:"provider_id"`
	EngagementID uint    `gorm:"not null;index" json:"engagement_id"`
	GrossAmount  float64 `gorm:"not null" json:"gross_amount"`
	ProviderFee  float64 `gorm:"not null" json:"provider_fee"` // security deposit deduction for this engagement
	TDSAmount    float64 `gorm:"not null;default:0" json:"tds_amount"`
	NetAmount    float64 `gorm:"not null" json:"net_amount"`
	PayoutMode   string  `gorm:"size:50" json:"payout_mode"`
	Status       string  `gorm:"size:50;not null;index" json:"status"` // INITIATED, SUCCESS, FAILED

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Payout) TableName() string {
	return "payouts"
}
