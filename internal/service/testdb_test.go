package service

import (
	"strings"
	"testing"

	"github.com/ServEase-Innovations/payments/internal/database"
	"github.com/ServEase-Innovations/payments/internal/repository"
	"github.com/ServEase-Innovations/payments/pkg/gateway"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// sqlite has no FOR UPDATE; drop the locking clause before SQL is built
	db.Callback().Query().Before("gorm:query").Register("sqlite_skip_locking", func(d *gorm.DB) {
		delete(d.Statement.Clauses, "FOR")
	})
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type testEnv struct {
	db       *gorm.DB
	gw       *gateway.FakeClient
	ledger   *LedgerService
	bookings *BookingService
	leaves   *LeaveService

	wallets  *repository.WalletRepository
	pwallets *repository.ProviderWalletRepository
	payouts  *repository.PayoutRepository
	avail    *repository.AvailabilityRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	gw := gateway.NewFakeClient("test-secret")
	ledger := NewLedgerService(db, gw, "development")
	discovery := NewDiscoveryService(repository.NewProviderRepository(db), 5)
	return &testEnv{
		db:       db,
		gw:       gw,
		ledger:   ledger,
		bookings: NewBookingService(db, gw, "INR", nil, ledger, discovery),
		leaves:   NewLeaveService(db, ledger),
		wallets:  repository.NewWalletRepository(db),
		pwallets: repository.NewProviderWalletRepository(db),
		payouts:  repository.NewPayoutRepository(db),
		avail:    repository.NewAvailabilityRepository(db),
	}
}

func (e *testEnv) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := e.db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
