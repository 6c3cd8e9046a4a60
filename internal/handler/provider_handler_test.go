package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ServEase-Innovations/payments/internal/domain"
	"github.com/ServEase-Innovations/payments/internal/models"
	"github.com/ServEase-Innovations/payments/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newProviderHandler(t *testing.T) (*ProviderHandler, *gorm.DB) {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.ServiceProvider{}, &models.Payout{}, &models.ProviderWallet{}, &models.Engagement{}))

	h := NewProviderHandler(
		repository.NewProviderRepository(db),
		repository.NewPayoutRepository(db),
		repository.NewProviderWalletRepository(db),
		repository.NewEngagementRepository(db),
	)
	return h, db
}

func TestPaymentHistoryNewestFirst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, db := newProviderHandler(t)

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	payouts := []models.Payout{
		{ProviderID: 7, EngagementID: 1, GrossAmount: 3000, ProviderFee: 300, NetAmount: 2700, Status: domain.PayoutStatusInitiated, CreatedAt: base},
		{ProviderID: 7, EngagementID: 2, GrossAmount: 2000, ProviderFee: 200, NetAmount: 1800, Status: domain.PayoutStatusSuccess, CreatedAt: base.Add(48 * time.Hour)},
		{ProviderID: 8, EngagementID: 3, GrossAmount: 1000, ProviderFee: 100, NetAmount: 900, Status: domain.PayoutStatusInitiated, CreatedAt: base},
	}
	require.NoError(t, db.Create(&payouts).Error)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	c.Request = httptest.NewRequest("GET", "/api/v1/providers/7/payment-history", nil)
	h.PaymentHistory(c)

	require.Equal(t, 200, w.Code)
	var resp struct {
		Success bool `json:"success"`
		History []struct {
			EngagementID uint    `json:"engagement_id"`
			Type         string  `json:"type"`
			Amount       float64 `json:"amount"`
			Description  string  `json:"description"`
			Status       string  `json:"status"`
		} `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.History, 2)

	// Newest payout first, rendered as a credit ledger row.
	assert.Equal(t, uint(2), resp.History[0].EngagementID)
	assert.Equal(t, domain.TxnCredit, resp.History[0].Type)
	assert.InDelta(t, 1800.0, resp.History[0].Amount, 1e-9)
	assert.Equal(t, "Payout for engagement #2", resp.History[0].Description)
	assert.Equal(t, domain.PayoutStatusSuccess, resp.History[0].Status)
	assert.Equal(t, uint(1), resp.History[1].EngagementID)
}

func TestPaymentHistoryInvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _ := newProviderHandler(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	c.Request = httptest.NewRequest("GET", "/api/v1/providers/abc/payment-history", nil)
	h.PaymentHistory(c)
	assert.Equal(t, 400, w.Code)
}
