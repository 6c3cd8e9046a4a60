package repository

import (
	"github.com/ServEase-Innovations/payments/internal/models"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) WithTx(tx *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: tx}
}

func (r *PaymentRepository) Create(p *models.Payment) error {
	return r.db.Create(p).Error
}

func (r *PaymentRepository) GetByEngagementID(engagementID uint) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.Where("engagement_id = ?", engagementID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByGatewayOrderID(orderID string) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.Where("gateway_order_id = ?", orderID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) Save(p *models.Payment) error {
	return r.db.Save(p).Error
}
