package repository

import (
	"github.com/ServEase-Innovations/payments/internal/domain"
	"github.com/ServEase-Innovations/payments/internal/models"

	"gorm.io/gorm"
)

type LeaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

func (r *LeaveRepository) WithTx(tx *gorm.DB) *LeaveRepository {
	return &LeaveRepository{db: tx}
}

func (r *LeaveRepository) Create(l *models.CustomerLeave) error {
	return r.db.Create(l).Error
}

// LatestApproved returns the most recent APPROVED leave on an engagement, or
// gorm.ErrRecordNotFound.
func (r *LeaveRepository) LatestApproved(engagementID uint) (*models.CustomerLeave, error) {
	var l models.CustomerLeave
	err := r.db.Where("engagement_id = ? AND status = ?", engagementID, domain.LeaveStatusApproved).
		Order("created_at DESC, id DESC").First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LeaveRepository) Save(l *models.CustomerLeave) error {
	return r.db.Save(l).Error
}
