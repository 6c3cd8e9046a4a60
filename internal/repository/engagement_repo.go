package repository

import (
	"github.com/ServEase-Innovations/payments/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EngagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) *EngagementRepository {
	return &EngagementRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *EngagementRepository) WithTx(tx *gorm.DB) *EngagementRepository {
	return &EngagementRepository{db: tx}
}

func (r *EngagementRepository) Create(e *models.Engagement) error {
	return r.db.Create(e).Error
}

func (r *EngagementRepository) GetByID(id uint) (*models.Engagement, error) {
	var e models.Engagement
	if err := r.db.First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// GetForUpdate loads the engagement under an exclusive row lock so that
// concurrent acceptance attempts serialize on it.
func (r *EngagementRepository) GetForUpdate(id uint) (*models.Engagement, error) {
	var e models.Engagement
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EngagementRepository) Save(e *models.Engagement) error {
	return r.db.Save(e).Error
}

// UpdateColumns applies an already-whitelisted column map.
func (r *EngagementRepository) UpdateColumns(id uint, cols map[string]interface{}) (int64, error) {
	res := r.db.Model(&models.Engagement{}).Where("id = ?", id).Updates(cols)
	return res.RowsAffected, res.Error
}

func (r *EngagementRepository) List() ([]models.Engagement, error) {
	var list []models.Engagement
	err := r.db.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *EngagementRepository) ListByCustomerID(customerID uint) ([]models.Engagement, error) {
	var list []models.Engagement
	err := r.db.Where("customer_id = ?", customerID).Order("start_date ASC").Find(&list).Error
	return list, err
}

// ListByProviderID returns a provider's engagements, optionally filtered by
// task status and by start-date month (both bounds YYYY-MM-DD, inclusive).
func (r *EngagementRepository) ListByProviderID(providerID uint, taskStatus, monthStart, monthEnd string) ([]models.Engagement, error) {
	q := r.db.Where("provider_id = ?", providerID)
	if taskStatus != "" {
		q = q.Where("task_status = ?", taskStatus)
	}
	if monthStart != "" && monthEnd != "" {
		q = q.Where("start_date BETWEEN ? AND ?", monthStart, monthEnd)
	}
	var list []models.Engagement
	err := q.Order("start_date DESC, start_time ASC").Find(&list).Error
	return list, err
}

func (r *EngagementRepository) Delete(id uint) (int64, error) {
	res := r.db.Delete(&models.Engagement{}, id)
	return res.RowsAffected, res.Error
}
