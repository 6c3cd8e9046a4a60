package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ServEase-Innovations/payments/internal/domain"
	"github.com/ServEase-Innovations/payments/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shortTermRequest(providerID uint) CreateEngagementRequest {
	return CreateEngagementRequest{
		CustomerID:       1,
		ProviderID:       providerID,
		StartDate:        "2026-09-01",
		EndDate:          "2026-09-03",
		StartTime:        "09:00",
		BaseAmount:       3000,
		Responsibilities: []string{"cooking", "cleaning"},
		BookingType:      domain.BookingTypeShortTerm,
		ServiceType:      "maid",
	}
}

func TestCreateBookingUnit(t *testing.T) {
	env := newTestEnv(t)
	res, err := env.bookings.Create(context.Background(), shortTermRequest(7))
	require.NoError(t, err)

	e := res.Engagement
	assert.NotZero(t, e.ID)
	assert.Equal(t, domain.AssignmentAssigned, e.AssignmentStatus)
	assert.Equal(t, domain.TaskStatusNotStarted, e.TaskStatus)
	assert.Equal(t, "10:00", e.EndTime)
	assert.True(t, e.Active)

	p := res.Payment
	assert.Equal(t, domain.PaymentStatusPending, p.Status)
	assert.NotEmpty(t, p.GatewayOrderID)
	assert.InDelta(t, 300.0, p.PlatformFee, 1e-9)
	assert.InDelta(t, 54.0, p.GST, 1e-9)
	assert.InDelta(t, 3354.0, p.TotalAmount, 1e-9)

	// Deposit deduction 10% of base, payout is the remainder.
	require.NotNil(t, res.Payout)
	assert.InDelta(t, 300.0, res.Payout.ProviderFee, 1e-9)
	assert.InDelta(t, 2700.0, res.Payout.NetAmount, 1e-9)
	assert.Equal(t, domain.PayoutStatusInitiated, res.Payout.Status)

	require.NotNil(t, res.Wallet)
	assert.InDelta(t, 2700.0, res.Wallet.Balance, 1e-9)
	assert.InDelta(t, 300.0, res.Wallet.SecurityDepositCollected, 1e-9)

	// One BOOKED availability row per covered day.
	rows, err := env.avail.ListByEngagementID(e.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.Equal(t, domain.AvailabilityBooked, r.Status)
		assert.Equal(t, uint(7), r.ProviderID)
	}

	// The wallet credit has a matching ledger entry.
	txns, err := env.wallets.TransactionsInOrder(res.Wallet.ID, models.OwnerProvider)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, domain.TxnCredit, txns[0].Type)
	assert.InDelta(t, 2700.0, txns[0].Amount, 1e-9)
	assert.InDelta(t, 2700.0, txns[0].BalanceAfter, 1e-9)
}

func TestCreateGatewayFailureRollsBackEverything(t *testing.T) {
	env := newTestEnv(t)
	env.gw.FailNext = errors.New("gateway unreachable")

	_, err := env.bookings.Create(context.Background(), shortTermRequest(7))
	require.ErrorIs(t, err, ErrGateway)

	assert.Zero(t, env.count(t, &models.Engagement{}))
	assert.Zero(t, env.count(t, &models.Payment{}))
	assert.Zero(t, env.count(t, &models.Payout{}))
	assert.Zero(t, env.count(t, &models.ProviderAvailability{}))
	assert.Zero(t, env.count(t, &models.WalletTransaction{}))
}

func TestCreateDepositCappedAtFiveThousand(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Create(&models.ProviderWallet{
		ProviderID:               7,
		SecurityDepositCollected: 4900,
	}).Error)

	// Only 100 of the 300 deduction fits under the cap.
	res, err := env.bookings.Create(context.Background(), shortTermRequest(7))
	require.NoError(t, err)
	assert.InDelta(t, 100.0, res.Payout.ProviderFee, 1e-9)
	assert.InDelta(t, 2900.0, res.Payout.NetAmount, 1e-9)
	assert.InDelta(t, 5000.0, res.Wallet.SecurityDepositCollected, 1e-9)

	// At the cap the deduction drops to zero.
	req := shortTermRequest(7)
	req.StartDate, req.EndDate = "2026-10-01", "2026-10-03"
	res, err = env.bookings.Create(context.Background(), req)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, res.Payout.ProviderFee, 1e-9)
	assert.InDelta(t, 3000.0, res.Payout.NetAmount, 1e-9)
	assert.InDelta(t, 5000.0, res.Wallet.SecurityDepositCollected, 1e-9)
}

func TestCreateConflictAbortsWholeUnit(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.bookings.Create(context.Background(), shortTermRequest(7))
	require.NoError(t, err)

	// Overlapping slot on a covered day for the same provider.
	req := shortTermRequest(7)
	req.StartTime = "09:30"
	_, err = env.bookings.Create(context.Background(), req)
	require.ErrorIs(t, err, ErrAvailabilityConflict)

	assert.Equal(t, int64(1), env.count(t, &models.Engagement{}))
	assert.Equal(t, int64(1), env.count(t, &models.Payment{}))
	assert.Equal(t, int64(1), env.count(t, &models.Payout{}))
}

func TestCreateAdjacentSlotDoesNotConflict(t *testing.T) {
	env := newTestEnv(t)
	res, err := env.bookings.Create(context.Background(), shortTermRequest(7))
	require.NoError(t, err)
	require.Equal(t, "10:00", res.Engagement.EndTime)

	// New slot starts exactly where the existing one ends.
	req := shortTermRequest(7)
	req.StartTime = "10:00"
	_, err = env.bookings.Create(context.Background(), req)
	require.NoError(t, err)
}

func TestCreateDifferentProviderNeverConflicts(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.bookings.Create(context.Background(), shortTermRequest(7))
	require.NoError(t, err)
	_, err = env.bookings.Create(context.Background(), shortTermRequest(8))
	require.NoError(t, err)
}

func TestCreateOnDemandUnassigned(t *testing.T) {
	env := newTestEnv(t)
	req := CreateEngagementRequest{
		CustomerID:  1,
		StartDate:   "2026-09-01",
		EndDate:     "2026-09-01",
		StartTime:   "14:00",
		BaseAmount:  500,
		BookingType: domain.BookingTypeOnDemand,
		ServiceType: "cook",
	}
	res, err := env.bookings.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.AssignmentUnassigned, res.Engagement.AssignmentStatus)
	assert.Nil(t, res.Engagement.ProviderID)
	assert.Equal(t, "16:00", res.Engagement.EndTime)
	assert.Nil(t, res.Payout)
	assert.Nil(t, res.Wallet)
	assert.Zero(t, env.count(t, &models.Payout{}))
	assert.Zero(t, env.count(t, &models.ProviderAvailability{}))
}

func TestCreateRecurringBookingRequiresProvider(t *testing.T) {
	env := newTestEnv(t)
	req := shortTermRequest(0)
	_, err := env.bookings.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateRejectsSlotCrossingMidnight(t *testing.T) {
	env := newTestEnv(t)
	req := shortTermRequest(7)
	req.StartTime = "23:30"
	_, err := env.bookings.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	base := shortTermRequest(7)

	cases := []struct {
		name   string
		mutate func(r *CreateEngagementRequest)
	}{
		{"missing customer", func(r *CreateEngagementRequest) { r.CustomerID = 0 }},
		{"bad start date", func(r *CreateEngagementRequest) { r.StartDate = "01-09-2026" }},
		{"end before start", func(r *CreateEngagementRequest) { r.EndDate = "2026-08-30" }},
		{"bad start time", func(r *CreateEngagementRequest) { r.StartTime = "9am" }},
		{"zero amount", func(r *CreateEngagementRequest) { r.BaseAmount = 0 }},
		{"unknown booking type", func(r *CreateEngagementRequest) { r.BookingType = "WEEKLY" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.mutate(&req)
			_, err := env.bookings.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestUpdateFieldsWritesAuditRow(t *testing.T) {
	env := newTestEnv(t)
	res, err := env.bookings.Create(context.Background(), shortTermRequest(7))
	require.NoError(t, err)

	status := domain.TaskStatusInProgress
	actor := uint(1)
	updated, err := env.bookings.UpdateFields(res.Engagement.ID, UpdateEngagementRequest{
		TaskStatus:     &status,
		ModifiedByID:   &actor,
		ModifiedByRole: "customer",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusInProgress, updated.TaskStatus)

	var mods []models.EngagementModification
	require.NoError(t, env.db.Where("engagement_id = ?", res.Engagement.ID).Find(&mods).Error)
	require.Len(t, mods, 1)
	assert.Equal(t, domain.ModificationFieldUpdate, mods[0].ModificationType)
}

func TestUpdateFieldsClassifiesAuditType(t *testing.T) {
	env := newTestEnv(t)

	str := func(s string) *string { return &s }
	cases := []struct {
		name string
		req  UpdateEngagementRequest
		want string
	}{
		{"extend", UpdateEngagementRequest{EndDate: str("2026-09-10")}, domain.ModificationExtend},
		{"shorten", UpdateEngagementRequest{EndDate: str("2026-09-02")}, domain.ModificationShorten},
		{"reschedule", UpdateEngagementRequest{StartTime: str("11:00"), EndTime: str("12:00")}, domain.ModificationReschedule},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := env.bookings.Create(context.Background(), shortTermRequest(uint(20+len(tc.name))))
			require.NoError(t, err)
			_, err = env.bookings.UpdateFields(res.Engagement.ID, tc.req)
			require.NoError(t, err)

			var mods []models.EngagementModification
			require.NoError(t, env.db.Where("engagement_id = ?", res.Engagement.ID).Find(&mods).Error)
			require.Len(t, mods, 1)
			assert.Equal(t, tc.want, mods[0].ModificationType)
		})
	}
}

func TestUpdateFieldsEmptyPatchRejected(t *testing.T) {
	env := newTestEnv(t)
	res, err := env.bookings.Create(context.Background(), shortTermRequest(7))
	require.NoError(t, err)

	_, err = env.bookings.UpdateFields(res.Engagement.ID, UpdateEngagementRequest{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCancelDeactivates(t *testing.T) {
	env := newTestEnv(t)
	res, err := env.bookings.Create(context.Background(), shortTermRequest(7))
	require.NoError(t, err)

	cancelled, err := env.bookings.Cancel(res.Engagement.ID, nil, "customer")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusCancelled, cancelled.TaskStatus)
	assert.False(t, cancelled.Active)

	_, err = env.bookings.Cancel(9999, nil, "customer")
	assert.ErrorIs(t, err, ErrNotFound)
}
