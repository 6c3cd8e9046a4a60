package models

import (
	"time"
)

// Engagement is a booking contract between a customer and a (possibly
// not-yet-assigned) service provider. ProviderID is nil exactly while
// AssignmentStatus is UNASSIGNED.
type Engagement struct {
	ID               uint    `gorm:"primaryKey" json:"engagement_id"`
	CustomerID       uint    `gorm:"not null;index" json:"customer_id"`
	ProviderID       *uint   `gorm:"index" json:"provider_id"`
	Responsibilities string  `gorm:"type:text" json:"responsibilities"` // JSON array of strings
	BookingType      string  `gorm:"size:50;not null" json:"booking_type"`
	ServiceType      string  `gorm:"size:50" json:"service_type"`
	BaseAmount       float64 `gorm:"not null" json:"base_amount"`
	StartDate        string  `gorm:"size:10;not null" json:"start_date"` // YYYY-MM-DD
	EndDate          string  `gorm:"size:10;not null" json:"end_date"`
	StartTime        string  `gorm:"size:5;not null" json:"start_time"` // HH:MM
	EndTime          string  `gorm:"size:5;not null" json:"end_time"`
	TaskStatus       string  `gorm:"size:50;default:'NOT_STARTED'" json:"task_status"`
	AssignmentStatus string  `gorm:"size:20;not null;index" json:"assignment_status"`
	Active           bool    `gorm:"default:true" json:"active"`

	// Vacation bookkeeping for the most recent leave on this engagement.
	VacationStartDate *string `gorm:"size:10" json:"vacation_start_date,omitempty"`
	VacationEndDate   *string `gorm:"size:10" json:"vacation_end_date,omitempty"`
	LeaveDays         int     `gorm:"default:0" json:"leave_days"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Engagement) TableName() string {
	return "engagements"
}
