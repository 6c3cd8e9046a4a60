package models

import (
	"time"
)

// EngagementModification is the append-only audit trail of mutating actions.
type EngagementModification struct {
	ID               uint   `gorm:"primaryKey" json:"modification_id"`
	EngagementID     uint   `gorm:"not null;index" json:"engagement_id"`
	ModificationType string `gorm:"size:50;not null" json:"modification_type"` // FIELD_UPDATE, EXTEND, SHORTEN, RESCHEDULE, CANCEL, VACATION, VACATION_CANCELLED
	ModifiedByID     *uint  `json:"modified_by_id,omitempty"`
	ModifiedByRole   string `gorm:"size:20" json:"modified_by_role"` // customer, provider, admin
	Payload          string `gorm:"type:text" json:"payload"`        // JSON snapshot of the change

	CreatedAt time.Time `json:"modified_at"`
}

func (EngagementModification) TableName() string {
	return "engagement_modifications"
}
