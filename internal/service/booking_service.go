package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/ServEase-Innovations/payments/internal/domain"
	"github.com/ServEase-Innovations/payments/internal/models"
	"github.com/ServEase-Innovations/payments/internal/repository"
	"github.com/ServEase-Innovations/payments/pkg/gateway"
	"github.com/google/uuid"

	"gorm.io/gorm"
)

// BookingService is the engagement orchestrator: it creates an engagement
// together with its payment, payout and availability rows in one atomic
// unit, and arbitrates the provider-assignment race for unassigned
// on-demand bookings.
type BookingService struct {
	db        *gorm.DB
	gateway   gateway.Client
	currency  string
	notifier  Notifier
	ledger    *LedgerService
	discovery *DiscoveryService

	engagements   *repository.EngagementRepository
	payments      *repository.PaymentRepository
	pwallets      *repository.ProviderWalletRepository
	payouts       *repository.PayoutRepository
	availability  *repository.AvailabilityRepository
	modifications *repository.ModificationRepository
}

func NewBookingService(db *gorm.DB, gw gateway.Client, currency string, notifier Notifier, ledger *LedgerService, discovery *DiscoveryService) *BookingService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &BookingService{
		db:            db,
		gateway:       gw,
		currency:      currency,
		notifier:      notifier,
		ledger:        ledger,
		discovery:     discovery,
		engagements:   repository.NewEngagementRepository(db),
		payments:      repository.NewPaymentRepository(db),
		pwallets:      repository.NewProviderWalletRepository(db),
		payouts:       repository.NewPayoutRepository(db),
		availability:  repository.NewAvailabilityRepository(db),
		modifications: repository.NewModificationRepository(db),
	}
}

type CreateEngagementRequest struct {
	CustomerID       uint     `json:"customerid"`
	ProviderID       uint     `json:"serviceproviderid"` // 0 means no provider
	StartDate        string   `json:"start_date"`        // YYYY-MM-DD
	EndDate          string   `json:"end_date"`
	StartTime        string   `json:"start_time"` // HH:MM
	BaseAmount       float64  `json:"base_amount"`
	Responsibilities []string `json:"responsibilities"`
	BookingType      string   `json:"booking_type"`
	ServiceType      string   `json:"service_type"`
	PaymentMode      string   `json:"payment_mode"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
}

type CreateEngagementResult struct {
	Engagement *models.Engagement     `json:"engagement"`
	Payment    *models.Payment        `json:"payment"`
	Wallet     *models.ProviderWallet `json:"updated_wallet,omitempty"`
	Payout     *models.Payout         `json:"payout,omitempty"`
	Notified   int                    `json:"providers_notified,omitempty"`
}

func (r *CreateEngagementRequest) validate() error {
	if r.CustomerID == 0 {
		return fmt.Errorf("%w: customerid is required", ErrValidation)
	}
	if _, err := parseDate(r.StartDate); err != nil {
		return fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrValidation)
	}
	if _, err := parseDate(r.EndDate); err != nil {
		return fmt.Errorf("%w: end_date must be YYYY-MM-DD", ErrValidation)
	}
	if r.EndDate < r.StartDate {
		return fmt.Errorf("%w: end_date before start_date", ErrValidation)
	}
	if _, err := parseClock(r.StartTime); err != nil {
		return fmt.Errorf("%w: start_time must be HH:MM", ErrValidation)
	}
	if r.BaseAmount <= 0 {
		return fmt.Errorf("%w: base_amount must be positive", ErrValidation)
	}
	switch r.BookingType {
	case domain.BookingTypeOnDemand, domain.BookingTypeMonthly, domain.BookingTypeShortTerm:
	default:
		return fmt.Errorf("%w: unknown booking_type %q", ErrValidation, r.BookingType)
	}
	if r.ProviderID == 0 && r.BookingType != domain.BookingTypeOnDemand {
		return fmt.Errorf("%w: serviceproviderid is required for %s bookings", ErrValidation, r.BookingType)
	}
	return nil
}

// Create runs the full booking unit. The gateway order is requested inside
// the transaction so a gateway failure aborts the whole booking; the caller's
// context bounds that call. Discovery fan-out runs after commit and is
// advisory only.
func (s *BookingService) Create(ctx context.Context, req CreateEngagementRequest) (*CreateEngagementResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	endTime, err := deriveEndTime(req.StartTime, req.BookingType)
	if err != nil {
		return nil, err
	}
	fees, err := CalculateFees(req.BaseAmount)
	if err != nil {
		return nil, err
	}
	var providerID *uint
	if req.ProviderID != 0 {
		id := req.ProviderID
		providerID = &id
	}
	assignment := domain.AssignmentAssigned
	if req.BookingType == domain.BookingTypeOnDemand && providerID == nil {
		assignment = domain.AssignmentUnassigned
	}
	paymentMode := req.PaymentMode
	if paymentMode == "" {
		paymentMode = domain.PaymentModeGateway
	}
	responsibilities, _ := json.Marshal(req.Responsibilities)

	dates, err := coveredDates(req.StartDate, req.EndDate, req.BookingType)
	if err != nil {
		return nil, err
	}

	result := &CreateEngagementResult{}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		engagements := s.engagements.WithTx(tx)
		availability := s.availability.WithTx(tx)

		if providerID != nil {
			for _, d := range dates {
				conflict, err := availability.HasConflict(*providerID, d, req.StartTime, endTime)
				if err != nil {
					return err
				}
				if conflict {
					return fmt.Errorf("%w: %s %s-%s", ErrAvailabilityConflict, d, req.StartTime, endTime)
				}
			}
		}

		e := &models.Engagement{
			CustomerID:       req.CustomerID,
			ProviderID:       providerID,
			Responsibilities: string(responsibilities),
			BookingType:      req.BookingType,
			ServiceType:      req.ServiceType,
			BaseAmount:       req.BaseAmount,
			StartDate:        req.StartDate,
			EndDate:          req.EndDate,
			StartTime:        req.StartTime,
			EndTime:          endTime,
			TaskStatus:       domain.TaskStatusNotStarted,
			AssignmentStatus: assignment,
			Active:           true,
		}
		if err := engagements.Create(e); err != nil {
			return err
		}

		var orderID string
		if paymentMode == domain.PaymentModeGateway {
			order, err := s.gateway.CreateOrder(ctx, gateway.OrderRequest{
				AmountMinor: int64(math.Round(fees.TotalAmount * 100)),
				Currency:    s.currency,
				Receipt:     fmt.Sprintf("eng_%s", uuid.NewString()[:8]),
			})
			if err != nil {
				return fmt.Errorf("%w: %v", ErrGateway, err)
			}
			orderID = order.ID
		}
		p := &models.Payment{
			EngagementID:   e.ID,
			BaseAmount:     req.BaseAmount,
			PlatformFee:    fees.PlatformFee,
			GST:            fees.GST,
			TotalAmount:    fees.TotalAmount,
			PaymentMode:    paymentMode,
			GatewayOrderID: orderID,
			Status:         domain.PaymentStatusPending,
		}
		if err := s.payments.WithTx(tx).Create(p); err != nil {
			return err
		}

		if providerID != nil {
			wallet, payout, err := s.recordPayout(tx, *providerID, e)
			if err != nil {
				return err
			}
			rows := make([]models.ProviderAvailability, 0, len(dates))
			for _, d := range dates {
				rows = append(rows, models.ProviderAvailability{
					ProviderID:   *providerID,
					EngagementID: e.ID,
					Date:         d,
					StartTime:    req.StartTime,
					EndTime:      endTime,
					Status:       domain.AvailabilityBooked,
				})
			}
			if err := availability.CreateRows(rows); err != nil {
				return err
			}
			result.Wallet = wallet
			result.Payout = payout
		}

		result.Engagement = e
		result.Payment = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Advisory fan-out; failures here never corrupt ledger state.
	if providerID == nil && req.Latitude != nil && req.Longitude != nil {
		result.Notified = s.broadcastUnassigned(result, *req.Latitude, *req.Longitude)
	}
	return result, nil
}

// recordPayout applies the security-deposit-aware payout for a bound
// provider: deduction shrinks to zero once the deposit cap is reached.
func (s *BookingService) recordPayout(tx *gorm.DB, providerID uint, e *models.Engagement) (*models.ProviderWallet, *models.Payout, error) {
	pwallets := s.pwallets.WithTx(tx)
	wallet, err := pwallets.GetOrCreate(providerID)
	if err != nil {
		return nil, nil, err
	}
	var deduction float64
	if wallet.SecurityDepositCollected < domain.SecurityDepositCap {
		remaining := domain.SecurityDepositCap - wallet.SecurityDepositCollected
		deduction = math.Min(e.BaseAmount*domain.SecurityDepositRate, remaining)
	}
	payoutAmount := e.BaseAmount - deduction

	desc := fmt.Sprintf("Payout for engagement #%d", e.ID)
	wallet, _, err = s.ledger.ApplyProvider(tx, providerID, &e.ID, domain.TxnCredit, payoutAmount, desc)
	if err != nil {
		return nil, nil, err
	}
	if deduction > 0 {
		wallet.SecurityDepositCollected += deduction
		if err := pwallets.Save(wallet); err != nil {
			return nil, nil, err
		}
	}
	payout := &models.Payout{
		ProviderID:   providerID,
		EngagementID: e.ID,
		GrossAmount:  e.BaseAmount,
		ProviderFee:  deduction,
		TDSAmount:    0,
		NetAmount:    payoutAmount,
		Status:       domain.PayoutStatusInitiated,
	}
	if err := s.payouts.WithTx(tx).Create(payout); err != nil {
		return nil, nil, err
	}
	return wallet, payout, nil
}

func (s *BookingService) broadcastUnassigned(result *CreateEngagementResult, lat, lng float64) int {
	nearby, err := s.discovery.NearbyProviders(lat, lng)
	if err != nil {
		log.Printf("[booking] provider discovery failed for engagement %d: %v", result.Engagement.ID, err)
		return 0
	}
	payload := map[string]interface{}{
		"event":      "booking_available",
		"engagement": result.Engagement,
		"payment":    result.Payment,
	}
	for _, p := range nearby {
		s.notifier.BookingAvailable(p.ID, payload)
	}
	return len(nearby)
}

// Accept resolves the assignment race: the engagement row is read under an
// exclusive lock, so of N concurrent callers exactly one finds it still
// UNASSIGNED. Everyone else gets ErrAlreadyAssigned.
func (s *BookingService) Accept(engagementID, providerID uint) (*models.Engagement, error) {
	if providerID == 0 {
		return nil, fmt.Errorf("%w: provider id is required", ErrValidation)
	}
	var accepted *models.Engagement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		engagements := s.engagements.WithTx(tx)
		e, err := engagements.GetForUpdate(engagementID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: engagement %d", ErrNotFound, engagementID)
			}
			return err
		}
		if e.AssignmentStatus != domain.AssignmentUnassigned {
			return ErrAlreadyAssigned
		}
		id := providerID
		e.ProviderID = &id
		e.AssignmentStatus = domain.AssignmentAssigned
		if err := engagements.Save(e); err != nil {
			return err
		}
		dates, err := coveredDates(e.StartDate, e.EndDate, e.BookingType)
		if err != nil {
			return err
		}
		rows := make([]models.ProviderAvailability, 0, len(dates))
		for _, d := range dates {
			rows = append(rows, models.ProviderAvailability{
				ProviderID:   providerID,
				EngagementID: e.ID,
				Date:         d,
				StartTime:    e.StartTime,
				EndTime:      e.EndTime,
				Status:       domain.AvailabilityBooked,
			})
		}
		if err := s.availability.WithTx(tx).CreateRows(rows); err != nil {
			return err
		}
		accepted = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notifier.BookingAssigned(providerID, map[string]interface{}{
		"event":      "booking_assigned",
		"engagement": accepted,
	})
	return accepted, nil
}

// UpdateEngagementRequest carries the PUT payload. Vacation fields select
// vacation mode (handled by LeaveService); everything else is a plain field
// patch.
type UpdateEngagementRequest struct {
	StartDate        *string   `json:"start_date,omitempty"`
	EndDate          *string   `json:"end_date,omitempty"`
	StartTime        *string   `json:"start_time,omitempty"`
	EndTime          *string   `json:"end_time,omitempty"`
	Responsibilities *[]string `json:"responsibilities,omitempty"`
	BookingType      *string   `json:"booking_type,omitempty"`
	ServiceType      *string   `json:"service_type,omitempty"`
	TaskStatus       *string   `json:"task_status,omitempty"`
	Active           *bool     `json:"active,omitempty"`
	BaseAmount       *float64  `json:"base_amount,omitempty"`

	VacationStartDate *string `json:"vacation_start_date,omitempty"`
	VacationEndDate   *string `json:"vacation_end_date,omitempty"`
	CancelVacation    bool    `json:"cancel_vacation,omitempty"`

	ModifiedByID   *uint  `json:"modified_by_id,omitempty"`
	ModifiedByRole string `json:"modified_by_role,omitempty"`
}

// VacationMode reports whether the patch is a vacation request rather than a
// field update. The two modes are mutually exclusive.
func (r *UpdateEngagementRequest) VacationMode() bool {
	return r.CancelVacation || (r.VacationStartDate != nil && r.VacationEndDate != nil)
}

// UpdateFields applies only the provided mutable fields through a
// whitelisted column map and writes the audit row in the same unit.
func (s *BookingService) UpdateFields(id uint, req UpdateEngagementRequest) (*models.Engagement, error) {
	cols := map[string]interface{}{}
	if req.StartDate != nil {
		cols["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		cols["end_date"] = *req.EndDate
	}
	if req.StartTime != nil {
		cols["start_time"] = *req.StartTime
	}
	if req.EndTime != nil {
		cols["end_time"] = *req.EndTime
	}
	if req.Responsibilities != nil {
		b, _ := json.Marshal(*req.Responsibilities)
		cols["responsibilities"] = string(b)
	}
	if req.BookingType != nil {
		cols["booking_type"] = *req.BookingType
	}
	if req.ServiceType != nil {
		cols["service_type"] = *req.ServiceType
	}
	if req.TaskStatus != nil {
		cols["task_status"] = *req.TaskStatus
	}
	if req.Active != nil {
		cols["active"] = *req.Active
	}
	if req.BaseAmount != nil {
		cols["base_amount"] = *req.BaseAmount
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: no fields provided for update", ErrValidation)
	}

	var updated *models.Engagement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		engagements := s.engagements.WithTx(tx)
		current, err := engagements.GetByID(id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: engagement %d", ErrNotFound, id)
			}
			return err
		}
		modType := classifyFieldPatch(current, req)
		if _, err := engagements.UpdateColumns(id, cols); err != nil {
			return err
		}
		payload, _ := json.Marshal(req)
		if err := s.modifications.WithTx(tx).Create(&models.EngagementModification{
			EngagementID:     id,
			ModificationType: modType,
			ModifiedByID:     req.ModifiedByID,
			ModifiedByRole:   req.ModifiedByRole,
			Payload:          string(payload),
		}); err != nil {
			return err
		}
		updated, err = engagements.GetByID(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// classifyFieldPatch tags the audit row by what the patch changes: moving
// end_date out is an EXTEND, pulling it in a SHORTEN, touching the start or
// the time slot a RESCHEDULE, anything else a plain FIELD_UPDATE.
func classifyFieldPatch(current *models.Engagement, req UpdateEngagementRequest) string {
	switch {
	case req.EndDate != nil && *req.EndDate > current.EndDate:
		return domain.ModificationExtend
	case req.EndDate != nil && *req.EndDate < current.EndDate:
		return domain.ModificationShorten
	case req.StartDate != nil || req.StartTime != nil || req.EndTime != nil:
		return domain.ModificationReschedule
	default:
		return domain.ModificationFieldUpdate
	}
}

// Cancel marks the engagement cancelled and audits the action.
func (s *BookingService) Cancel(id uint, actorID *uint, actorRole string) (*models.Engagement, error) {
	var cancelled *models.Engagement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		engagements := s.engagements.WithTx(tx)
		rows, err := engagements.UpdateColumns(id, map[string]interface{}{
			"task_status": domain.TaskStatusCancelled,
			"active":      false,
		})
		if err != nil {
			return err
		}
		if rows == 0 {
			return fmt.Errorf("%w: engagement %d", ErrNotFound, id)
		}
		if err := s.modifications.WithTx(tx).Create(&models.EngagementModification{
			EngagementID:     id,
			ModificationType: domain.ModificationCancel,
			ModifiedByID:     actorID,
			ModifiedByRole:   actorRole,
			Payload:          `{"task_status":"CANCELLED"}`,
		}); err != nil {
			return err
		}
		cancelled, err = engagements.GetByID(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// Delete hard-removes the engagement row.
func (s *BookingService) Delete(id uint) error {
	rows, err := s.engagements.Delete(id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: engagement %d", ErrNotFound, id)
	}
	return nil
}

func (s *BookingService) Get(id uint) (*models.Engagement, error) {
	e, err := s.engagements.GetByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: engagement %d", ErrNotFound, id)
		}
		return nil, err
	}
	return e, nil
}

func (s *BookingService) List() ([]models.Engagement, error) {
	return s.engagements.List()
}

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func parseClock(s string) (time.Time, error) {
	return time.Parse(clockLayout, s)
}

// deriveEndTime adds the booking-type duration (+2h for ON_DEMAND, +1h
// otherwise) to the start time; a slot that would cross midnight is
// rejected.
func deriveEndTime(startTime, bookingType string) (string, error) {
	st, err := parseClock(startTime)
	if err != nil {
		return "", fmt.Errorf("%w: start_time must be HH:MM", ErrValidation)
	}
	d := time.Hour
	if bookingType == domain.BookingTypeOnDemand {
		d = 2 * time.Hour
	}
	end := st.Add(d).Format(clockLayout)
	if end <= startTime {
		return "", fmt.Errorf("%w: end_time %s not after start_time %s", ErrValidation, end, startTime)
	}
	return end, nil
}

// coveredDates lists every calendar day in [start, end]; ON_DEMAND bookings
// reserve a single day.
func coveredDates(startDate, endDate, bookingType string) ([]string, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrValidation)
	}
	end, err := parseDate(endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date must be YYYY-MM-DD", ErrValidation)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date before start_date", ErrValidation)
	}
	if bookingType == domain.BookingTypeOnDemand {
		return []string{startDate}, nil
	}
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates, nil
}
