package models

import (
	"time"
)

type Payment struct {
	ID             uint    `gorm:"primaryKey" json:"payment_id"`
	EngagementID   uint    `gorm:"not null;uniqueIndex" json:"engagement_id"`
	BaseAmount     float64 `gorm:"not null" json:"base_amount"`
	PlatformFee    float64 `gorm:"not null" json:"platform_fee"`
	GST            float64 `gorm:"not null" json:"gst"`
	TotalAmount    float64 `gorm:"not null" json:"total_amount"`
	PaymentMode    string  `gorm:"size:50" json:"payment_mode"`
	GatewayOrderID string  `gorm:"size:255;index" json:"gateway_order_id"`
	TransactionID  string  `gorm:"size:255" json:"transaction_id"`
	Status         string  `gorm:"size:50;not null;index" json:"status"` // PENDING, SUCCESS, FAILED

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}
