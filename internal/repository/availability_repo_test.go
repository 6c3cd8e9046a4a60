package repository

import (
	"strings"
	"testing"

	"github.com/ServEase-Innovations/payments/internal/domain"
	"github.com/ServEase-Innovations/payments/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAvailabilityRepo(t *testing.T) *AvailabilityRepository {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.ProviderAvailability{}))
	return NewAvailabilityRepository(db)
}

func TestHasConflictOverlapRules(t *testing.T) {
	repo := newAvailabilityRepo(t)
	require.NoError(t, repo.CreateRows([]models.ProviderAvailability{{
		ProviderID:   7,
		EngagementID: 1,
		Date:         "2026-09-01",
		StartTime:    "09:00",
		EndTime:      "12:00",
		Status:       domain.AvailabilityBooked,
	}}))

	cases := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"inside", "10:00", "11:00", true},
		{"straddles start", "08:00", "09:30", true},
		{"straddles end", "11:30", "13:00", true},
		{"covers", "08:00", "13:00", true},
		{"identical", "09:00", "12:00", true},
		{"adjacent before", "08:00", "09:00", false},
		{"adjacent after", "12:00", "13:00", false},
		{"disjoint", "14:00", "15:00", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.HasConflict(7, "2026-09-01", tc.start, tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHasConflictScopedToProviderAndDate(t *testing.T) {
	repo := newAvailabilityRepo(t)
	require.NoError(t, repo.CreateRows([]models.ProviderAvailability{{
		ProviderID:   7,
		EngagementID: 1,
		Date:         "2026-09-01",
		StartTime:    "09:00",
		EndTime:      "12:00",
		Status:       domain.AvailabilityBooked,
	}}))

	got, err := repo.HasConflict(8, "2026-09-01", "09:00", "12:00")
	require.NoError(t, err)
	assert.False(t, got, "other providers are unaffected")

	got, err = repo.HasConflict(7, "2026-09-02", "09:00", "12:00")
	require.NoError(t, err)
	assert.False(t, got, "other dates are unaffected")
}

func TestHasConflictIgnoresFreeRows(t *testing.T) {
	repo := newAvailabilityRepo(t)
	require.NoError(t, repo.CreateRows([]models.ProviderAvailability{{
		ProviderID:   7,
		EngagementID: 1,
		Date:         "2026-09-01",
		StartTime:    "09:00",
		EndTime:      "12:00",
		Status:       domain.AvailabilityFree,
	}}))

	got, err := repo.HasConflict(7, "2026-09-01", "09:00", "12:00")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestSetStatusForRange(t *testing.T) {
	repo := newAvailabilityRepo(t)
	rows := make([]models.ProviderAvailability, 0, 5)
	for _, d := range []string{"2026-09-01", "2026-09-02", "2026-09-03", "2026-09-04", "2026-09-05"} {
		rows = append(rows, models.ProviderAvailability{
			ProviderID:   7,
			EngagementID: 1,
			Date:         d,
			StartTime:    "09:00",
			EndTime:      "12:00",
			Status:       domain.AvailabilityBooked,
		})
	}
	require.NoError(t, repo.CreateRows(rows))

	n, err := repo.SetStatusForRange(1, "2026-09-02", "2026-09-04", domain.AvailabilityBooked, domain.AvailabilityFree)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	// Already-freed rows are not flipped again.
	n, err = repo.SetStatusForRange(1, "2026-09-02", "2026-09-04", domain.AvailabilityBooked, domain.AvailabilityFree)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.SetStatusForRange(1, "2026-09-01", "2026-09-05", domain.AvailabilityFree, domain.AvailabilityBooked)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
