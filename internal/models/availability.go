package models

import (
	"time"
)

// ProviderAvailability is one reserved calendar day for a provider. Multi-day
// engagements get one row per covered day; leave flips rows to FREE.
type ProviderAvailability struct {
	ID           uint   `gorm:"primaryKey" json:"availability_id"`
	ProviderID   uint   `gorm:"not null;index:idx_availability_provider_date" json:"provider_id"`
	EngagementID uint   `gorm:"not null;index" json:"engagement_id"`
	Date         string `gorm:"size:10;not null;index:idx_availability_provider_date" json:"date"` // YYYY-MM-DD
	StartTime    string `gorm:"size:5;not null" json:"start_time"`                                 // HH:MM
	EndTime      string `gorm:"size:5;not null" json:"end_time"`
	Status       string `gorm:"size:20;not null" json:"status"` // BOOKED, FREE

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProviderAvailability) TableName() string {
	return "provider_availability"
}
