package repository

import (
	"github.com/ServEase-Innovations/payments/internal/models"

	"gorm.io/gorm"
)

type ProviderRepository struct {
	db *gorm.DB
}

func NewProviderRepository(db *gorm.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

func (r *ProviderRepository) GetByID(id uint) (*models.ServiceProvider, error) {
	var p models.ServiceProvider
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListActiveWithLocation returns active providers that have reported
// coordinates, for discovery fan-out.
func (r *ProviderRepository) ListActiveWithLocation() ([]models.ServiceProvider, error) {
	var list []models.ServiceProvider
	err := r.db.Where("active = ? AND latitude IS NOT NULL AND longitude IS NOT NULL", true).Find(&list).Error
	return list, err
}

func (r *ProviderRepository) GetCustomer(id uint) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
