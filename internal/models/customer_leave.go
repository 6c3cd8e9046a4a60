package models

import (
	"time"
)

type CustomerLeave struct {
	ID             uint    `gorm:"primaryKey" json:"leave_id"`
	CustomerID     uint    `gorm:"not null;index" json:"customer_id"`
	EngagementID   uint    `gorm:"not null;index" json:"engagement_id"`
	LeaveType      string  `gorm:"size:50" json:"leave_type"`
	LeaveStartDate string  `gorm:"size:10;not null" json:"leave_start_date"` // YYYY-MM-DD
	LeaveEndDate   string  `gorm:"size:10;not null" json:"leave_end_date"`
	TotalDays      int     `gorm:"not null" json:"total_days"`
	RefundAmount   float64 `gorm:"not null" json:"refund_amount"`
	Status         string  `gorm:"size:50;not null" json:"status"` // APPROVED, CANCELLED

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CustomerLeave) TableName() string {
	return "customer_leaves"
}
