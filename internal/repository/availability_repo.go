package repository

import (
	"github.com/ServEase-Innovations/payments/internal/domain"
	"github.com/ServEase-Innovations/payments/internal/models"

	"gorm.io/gorm"
)

type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

func (r *AvailabilityRepository) WithTx(tx *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: tx}
}

// HasConflict reports whether any BOOKED reservation for the provider on the
// given date overlaps [startTime, endTime). Adjacent ranges (existing end ==
// new start) do not conflict. Times are HH:MM strings, which compare
// correctly as text.
func (r *AvailabilityRepository) HasConflict(providerID uint, date, startTime, endTime string) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProviderAvailability{}).
		Where("provider_id = ? AND date = ? AND status = ?", providerID, date, domain.AvailabilityBooked).
		Where("start_time < ? AND ? < end_time", endTime, startTime).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AvailabilityRepository) CreateRows(rows []models.ProviderAvailability) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.Create(&rows).Error
}

// SetStatusForRange flips an engagement's reservation rows between BOOKED and
// FREE for every date in [startDate, endDate], and returns how many rows
// changed.
func (r *AvailabilityRepository) SetStatusForRange(engagementID uint, startDate, endDate, from, to string) (int64, error) {
	res := r.db.Model(&models.ProviderAvailability{}).
		Where("engagement_id = ? AND date BETWEEN ? AND ? AND status = ?", engagementID, startDate, endDate, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *AvailabilityRepository) ListByEngagementID(engagementID uint) ([]models.ProviderAvailability, error) {
	var list []models.ProviderAvailability
	err := r.db.Where("engagement_id = ?", engagementID).Order("date ASC").Find(&list).Error
	return list, err
}
