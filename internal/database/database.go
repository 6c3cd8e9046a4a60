package database

import (
	"github.com/ServEase-Innovations/payments/config"
	"github.com/ServEase-Innovations/payments/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Customer{},
		&models.ServiceProvider{},
		&models.Engagement{},
		&models.Payment{},
		&models.Wallet{},
		&models.ProviderWallet{},
		&models.WalletTransaction{},
		&models.Payout{},
		&models.ProviderAvailability{},
		&models.EngagementModification{},
		&models.CustomerLeave{},
	)
}
