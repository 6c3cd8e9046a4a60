package service

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/ServEase-Innovations/payments/internal/domain"
	"github.com/ServEase-Innovations/payments/internal/models"
	"github.com/ServEase-Innovations/payments/internal/repository"

	"gorm.io/gorm"
)

// LeaveService prorates vacation requests: the customer gets a partial
// refund, the provider's payout shrinks, and the reserved days open up. All
// of it commits or rolls back together.
type LeaveService struct {
	db     *gorm.DB
	ledger *LedgerService

	engagements   *repository.EngagementRepository
	payouts       *repository.PayoutRepository
	availability  *repository.AvailabilityRepository
	leaves        *repository.LeaveRepository
	modifications *repository.ModificationRepository
}

func NewLeaveService(db *gorm.DB, ledger *LedgerService) *LeaveService {
	return &LeaveService{
		db:            db,
		ledger:        ledger,
		engagements:   repository.NewEngagementRepository(db),
		payouts:       repository.NewPayoutRepository(db),
		availability:  repository.NewAvailabilityRepository(db),
		leaves:        repository.NewLeaveRepository(db),
		modifications: repository.NewModificationRepository(db),
	}
}

type ApplyLeaveRequest struct {
	EngagementID   uint   `json:"engagement_id"`
	LeaveStartDate string `json:"leave_start_date"` // YYYY-MM-DD
	LeaveEndDate   string `json:"leave_end_date"`
	LeaveType      string `json:"leave_type"`
}

type ApplyLeaveResult struct {
	Leave          *models.CustomerLeave     `json:"leave"`
	WalletCredit   float64                   `json:"wallet_credit"`
	VacationAmount float64                   `json:"vacation_amount"`
	PlatformCut    float64                   `json:"servease_cut"`
	Penalty        float64                   `json:"penalty,omitempty"`
	Wallet         *models.Wallet            `json:"wallet"`
	Transaction    *models.WalletTransaction `json:"transaction"`
}

// Apply books an APPROVED leave: customer wallet CREDIT of
// round(0.75 x vacationAmount), provider wallet DEBIT of the full
// vacationAmount, payout net reduced by the same, availability freed. A
// second leave without cancelling the first costs a flat rework penalty on
// top.
func (s *LeaveService) Apply(customerID uint, req ApplyLeaveRequest) (*ApplyLeaveResult, error) {
	if req.EngagementID == 0 {
		return nil, fmt.Errorf("%w: engagement_id is required", ErrValidation)
	}
	totalDays, err := leaveDayCount(req.LeaveStartDate, req.LeaveEndDate)
	if err != nil {
		return nil, err
	}

	result := &ApplyLeaveResult{}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		engagements := s.engagements.WithTx(tx)
		e, err := engagements.GetByID(req.EngagementID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: engagement %d", ErrNotFound, req.EngagementID)
			}
			return err
		}
		if e.CustomerID != customerID {
			return fmt.Errorf("%w: engagement %d for customer %d", ErrNotFound, req.EngagementID, customerID)
		}
		if e.BookingType != domain.BookingTypeShortTerm && e.BookingType != domain.BookingTypeMonthly {
			return fmt.Errorf("%w: vacation only applies to SHORT_TERM or MONTHLY bookings", ErrValidation)
		}
		if e.ProviderID == nil {
			return fmt.Errorf("%w: engagement has no assigned provider", ErrValidation)
		}

		perDayCost := e.BaseAmount / domain.ServiceDaysPerMonth
		vacationAmount := perDayCost * float64(totalDays)
		walletCredit := math.Round(vacationAmount * domain.CustomerRefundShare)
		platformCut := vacationAmount - walletCredit

		// A leave is already on the books: this is a re-modification, which
		// carries a flat administrative penalty.
		var penalty float64
		if prior, err := s.leaves.WithTx(tx).LatestApproved(e.ID); err == nil && prior != nil {
			penalty = domain.LeaveReworkPenalty
			if _, _, err := s.ledger.ApplyCustomer(tx, customerID, &e.ID, domain.TxnDebit, penalty,
				"Leave re-modification penalty"); err != nil {
				return err
			}
		} else if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}

		wallet, entry, err := s.ledger.ApplyCustomer(tx, customerID, &e.ID, domain.TxnCredit, walletCredit,
			fmt.Sprintf("Vacation refund for %d days", totalDays))
		if err != nil {
			return err
		}
		if _, _, err := s.ledger.ApplyProvider(tx, *e.ProviderID, &e.ID, domain.TxnDebit, vacationAmount,
			fmt.Sprintf("Vacation deduction for %d days on engagement #%d", totalDays, e.ID)); err != nil {
			return err
		}

		payouts := s.payouts.WithTx(tx)
		payout, err := payouts.GetByEngagementID(e.ID)
		if err != nil {
			return err
		}
		payout.NetAmount -= vacationAmount
		if err := payouts.Save(payout); err != nil {
			return err
		}

		if _, err := s.availability.WithTx(tx).SetStatusForRange(e.ID, req.LeaveStartDate, req.LeaveEndDate,
			domain.AvailabilityBooked, domain.AvailabilityFree); err != nil {
			return err
		}

		leave := &models.CustomerLeave{
			CustomerID:     customerID,
			EngagementID:   e.ID,
			LeaveType:      req.LeaveType,
			LeaveStartDate: req.LeaveStartDate,
			LeaveEndDate:   req.LeaveEndDate,
			TotalDays:      totalDays,
			RefundAmount:   vacationAmount,
			Status:         domain.LeaveStatusApproved,
		}
		if err := s.leaves.WithTx(tx).Create(leave); err != nil {
			return err
		}

		e.VacationStartDate = &leave.LeaveStartDate
		e.VacationEndDate = &leave.LeaveEndDate
		e.LeaveDays = totalDays
		if err := engagements.Save(e); err != nil {
			return err
		}

		payload, _ := json.Marshal(map[string]interface{}{
			"leave_start_date": req.LeaveStartDate,
			"leave_end_date":   req.LeaveEndDate,
			"total_days":       totalDays,
			"vacation_amount":  vacationAmount,
			"wallet_credit":    walletCredit,
			"penalty":          penalty,
		})
		if err := s.modifications.WithTx(tx).Create(&models.EngagementModification{
			EngagementID:     e.ID,
			ModificationType: domain.ModificationVacation,
			ModifiedByID:     &customerID,
			ModifiedByRole:   "customer",
			Payload:          string(payload),
		}); err != nil {
			return err
		}

		result.Leave = leave
		result.WalletCredit = walletCredit
		result.VacationAmount = vacationAmount
		result.PlatformCut = platformCut
		result.Penalty = penalty
		result.Wallet = wallet
		result.Transaction = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Cancel reverses the most recent leave on an engagement: the customer is
// debited and the provider credited by the amount recorded on the leave,
// availability returns to BOOKED, and the payout net is restored.
func (s *LeaveService) Cancel(customerID, engagementID uint) (*models.CustomerLeave, error) {
	var reversed *models.CustomerLeave
	err := s.db.Transaction(func(tx *gorm.DB) error {
		engagements := s.engagements.WithTx(tx)
		e, err := engagements.GetByID(engagementID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: engagement %d", ErrNotFound, engagementID)
			}
			return err
		}
		if e.CustomerID != customerID {
			return fmt.Errorf("%w: engagement %d for customer %d", ErrNotFound, engagementID, customerID)
		}
		leaves := s.leaves.WithTx(tx)
		leave, err := leaves.LatestApproved(engagementID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNoActiveLeave
			}
			return err
		}

		// Reverse what the leave actually moved, not a recomputation from the
		// current base_amount, which is mutable after the leave was taken.
		amount := leave.RefundAmount

		if _, _, err := s.ledger.ApplyCustomer(tx, customerID, &e.ID, domain.TxnDebit, amount,
			fmt.Sprintf("Leave cancellation for %d days", leave.TotalDays)); err != nil {
			return err
		}
		if e.ProviderID != nil {
			if _, _, err := s.ledger.ApplyProvider(tx, *e.ProviderID, &e.ID, domain.TxnCredit, amount,
				fmt.Sprintf("Leave cancellation restore on engagement #%d", e.ID)); err != nil {
				return err
			}
		}

		payouts := s.payouts.WithTx(tx)
		payout, err := payouts.GetByEngagementID(e.ID)
		if err != nil {
			return err
		}
		payout.NetAmount += amount
		if err := payouts.Save(payout); err != nil {
			return err
		}

		if _, err := s.availability.WithTx(tx).SetStatusForRange(e.ID, leave.LeaveStartDate, leave.LeaveEndDate,
			domain.AvailabilityFree, domain.AvailabilityBooked); err != nil {
			return err
		}

		leave.Status = domain.LeaveStatusCancelled
		if err := leaves.Save(leave); err != nil {
			return err
		}

		e.VacationStartDate = nil
		e.VacationEndDate = nil
		e.LeaveDays = 0
		if err := engagements.Save(e); err != nil {
			return err
		}

		payload, _ := json.Marshal(map[string]interface{}{
			"leave_id":        leave.ID,
			"total_days":      leave.TotalDays,
			"reversed_amount": amount,
		})
		if err := s.modifications.WithTx(tx).Create(&models.EngagementModification{
			EngagementID:     e.ID,
			ModificationType: domain.ModificationLeaveCancelled,
			ModifiedByID:     &customerID,
			ModifiedByRole:   "customer",
			Payload:          string(payload),
		}); err != nil {
			return err
		}

		reversed = leave
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reversed, nil
}

// leaveDayCount is the whole-day count inclusive of both endpoints,
// computed on the fixed booking calendar rather than server-local time.
func leaveDayCount(startDate, endDate string) (int, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return 0, fmt.Errorf("%w: leave_start_date must be YYYY-MM-DD", ErrValidation)
	}
	end, err := parseDate(endDate)
	if err != nil {
		return 0, fmt.Errorf("%w: leave_end_date must be YYYY-MM-DD", ErrValidation)
	}
	if end.Before(start) {
		return 0, fmt.Errorf("%w: leave_end_date before leave_start_date", ErrValidation)
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}
