package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ServEase-Innovations/payments/internal/domain"
	"github.com/ServEase-Innovations/payments/internal/models"
	"github.com/ServEase-Innovations/payments/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/now"
)

type ProviderHandler struct {
	providers   *repository.ProviderRepository
	payouts     *repository.PayoutRepository
	pwallets    *repository.ProviderWalletRepository
	engagements *repository.EngagementRepository
}

func NewProviderHandler(
	providers *repository.ProviderRepository,
	payouts *repository.PayoutRepository,
	pwallets *repository.ProviderWalletRepository,
	engagements *repository.EngagementRepository,
) *ProviderHandler {
	return &ProviderHandler{providers: providers, payouts: payouts, pwallets: pwallets, engagements: engagements}
}

// Payouts returns the provider's payout summary, optionally month-filtered
// (?month=YYYY-MM) and row-detailed (?detailed=true).
func (h *ProviderHandler) Payouts(c *gin.Context) {
	providerID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}
	if _, err := h.providers.GetByID(providerID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Provider not found"})
		return
	}

	var from, to *string
	month := c.Query("month")
	if month != "" {
		start, ok := monthBounds(month)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid month format. Use YYYY-MM"})
			return
		}
		f := start.BeginningOfMonth().Format("2006-01-02 15:04:05")
		t := start.EndOfMonth().Format("2006-01-02 15:04:05")
		from, to = &f, &t
	}

	payouts, err := h.payouts.ListByProviderID(providerID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	var totalEarned, totalWithdrawn float64
	for _, p := range payouts {
		totalEarned += p.NetAmount
		if p.Status == domain.PayoutStatusSuccess {
			totalWithdrawn += p.NetAmount
		}
	}
	var depositAmount float64
	if w, err := h.pwallets.GetByProviderID(providerID); err == nil {
		depositAmount = w.SecurityDepositCollected
	}

	resp := gin.H{
		"success":           true,
		"serviceproviderid": providerID,
		"month":             nilIfEmpty(month),
		"summary": gin.H{
			"total_earned":            totalEarned,
			"total_withdrawn":         totalWithdrawn,
			"available_to_withdraw":   totalEarned - totalWithdrawn,
			"security_deposit_paid":   depositAmount >= domain.SecurityDepositCap,
			"security_deposit_amount": depositAmount,
		},
	}
	if c.Query("detailed") == "true" {
		resp["payouts"] = payouts
	}
	c.JSON(http.StatusOK, resp)
}

// PaymentHistory renders the provider's payouts as ledger-style credit
// rows, newest first.
func (h *ProviderHandler) PaymentHistory(c *gin.Context) {
	providerID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}
	payouts, err := h.payouts.HistoryByProviderID(providerID)
	if err != nil {
		respondError(c, err)
		return
	}
	history := make([]gin.H, 0, len(payouts))
	for _, p := range payouts {
		history = append(history, gin.H{
			"id":            p.ID,
			"engagement_id": p.EngagementID,
			"type":          domain.TxnCredit,
			"amount":        p.NetAmount,
			"description":   fmt.Sprintf("Payout for engagement #%d", p.EngagementID),
			"date":          p.CreatedAt,
			"status":        p.Status,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"providerId": providerID,
		"history":    history,
	})
}

// Engagements returns the provider's bookings bucketed into current and
// past, optionally filtered by task status and month.
func (h *ProviderHandler) Engagements(c *gin.Context) {
	providerID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}
	var monthStart, monthEnd string
	month := c.Query("month")
	if month != "" {
		start, ok := monthBounds(month)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid month format. Use YYYY-MM"})
			return
		}
		monthStart = start.BeginningOfMonth().Format("2006-01-02")
		monthEnd = start.EndOfMonth().Format("2006-01-02")
	}

	list, err := h.engagements.ListByProviderID(providerID, c.Query("status"), monthStart, monthEnd)
	if err != nil {
		respondError(c, err)
		return
	}

	today := bookingToday()
	current := make([]gin.H, 0)
	past := make([]gin.H, 0)
	for _, e := range list {
		row := h.providerEngagementRow(e)
		switch {
		case today >= e.StartDate && today <= e.EndDate:
			current = append(current, row)
		case today > e.EndDate:
			past = append(past, row)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"serviceproviderid": providerID,
		"current":           current,
		"past":              past,
	})
}

func (h *ProviderHandler) providerEngagementRow(e models.Engagement) gin.H {
	row := gin.H{
		"id":               e.ID,
		"customerId":       e.CustomerID,
		"startDate":        e.StartDate,
		"endDate":          e.EndDate,
		"startTime":        e.StartTime,
		"endTime":          e.EndTime,
		"responsibilities": e.Responsibilities,
		"bookingType":      e.BookingType,
		"serviceType":      e.ServiceType,
		"taskStatus":       e.TaskStatus,
		"assignmentStatus": e.AssignmentStatus,
		"monthlyAmount":    e.BaseAmount,
		"bookingDate":      e.CreatedAt,
	}
	if cust, err := h.providers.GetCustomer(e.CustomerID); err == nil {
		row["firstname"] = cust.FirstName
		row["middlename"] = cust.MiddleName
		row["lastname"] = cust.LastName
		row["mobileno"] = cust.MobileNo
	}
	return row
}

// monthBounds parses YYYY-MM into a calendar helper anchored on that month.
func monthBounds(month string) (*now.Now, bool) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, false
	}
	return now.New(t), true
}

func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
