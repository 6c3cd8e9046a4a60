package domain

const (
	BookingTypeOnDemand  = "ON_DEMAND"
	BookingTypeMonthly   = "MONTHLY"
	BookingTypeShortTerm = "SHORT_TERM"
)

const (
	AssignmentUnassigned = "UNASSIGNED"
	AssignmentAssigned   = "ASSIGNED"
)

const (
	TaskStatusNotStarted = "NOT_STARTED"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusCompleted  = "COMPLETED"
	TaskStatusCancelled  = "CANCELLED"
)

const (
	PaymentStatusPending = "PENDING"
	PaymentStatusSuccess = "SUCCESS"
	PaymentStatusFailed  = "FAILED"
)

const (
	PaymentModeGateway = "razorpay"
	PaymentModeWallet  = "wallet"
	PaymentModeCash    = "cash"
)

const (
	TxnCredit     = "CREDIT"
	TxnDebit      = "DEBIT"
	TxnRefund     = "REFUND"
	TxnAdjustment = "ADJUSTMENT"
)

const (
	AvailabilityBooked = "BOOKED"
	AvailabilityFree   = "FREE"
)

const (
	PayoutStatusInitiated = "INITIATED"
	PayoutStatusSuccess   = "SUCCESS"
	PayoutStatusFailed    = "FAILED"
)

const (
	LeaveStatusApproved  = "APPROVED"
	LeaveStatusCancelled = "CANCELLED"
)

// Audit row types. Field patches are classified by what they change; VACATION
// and VACATION_CANCELLED come from the leave flow.
const (
	ModificationFieldUpdate    = "FIELD_UPDATE"
	ModificationExtend         = "EXTEND"
	ModificationShorten        = "SHORTEN"
	ModificationReschedule     = "RESCHEDULE"
	ModificationCancel         = "CANCEL"
	ModificationVacation       = "VACATION"
	ModificationLeaveCancelled = "VACATION_CANCELLED"
)

// Platform economics. The customer refund share (0.75) and the provider debit
// (the full vacation amount) are intentionally separate knobs; they do not sum
// to the platform cut today and product owns reconciling that.
const (
	PlatformFeeRate     = 0.10
	GSTRate             = 0.18
	SecurityDepositRate = 0.10
	SecurityDepositCap  = 5000.0
	ServiceDaysPerMonth = 30
	CustomerRefundShare = 0.75
	LeaveReworkPenalty  = 100.0
)

// BookingCalendar is the fixed calendar used for leave day counts and
// engagement bucketing, independent of server timezone.
const BookingCalendar = "Asia/Kolkata"
