package handler

import (
	"net/http"
	"time"

	"github.com/ServEase-Innovations/payments/internal/domain"
	"github.com/ServEase-Innovations/payments/internal/models"
	"github.com/ServEase-Innovations/payments/internal/repository"
	"github.com/ServEase-Innovations/payments/internal/service"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	engagements   *repository.EngagementRepository
	modifications *repository.ModificationRepository
	leaves        *service.LeaveService
}

func NewCustomerHandler(engagements *repository.EngagementRepository, modifications *repository.ModificationRepository, leaves *service.LeaveService) *CustomerHandler {
	return &CustomerHandler{engagements: engagements, modifications: modifications, leaves: leaves}
}

type categorizedEngagement struct {
	models.Engagement
	Status        string                          `json:"status"`
	Modifications []models.EngagementModification `json:"modifications"`
}

// ListEngagements buckets a customer's engagements into upcoming, ongoing
// and past by the booking calendar's current day, with modification history
// attached.
func (h *CustomerHandler) ListEngagements(c *gin.Context) {
	customerID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}
	list, err := h.engagements.ListByCustomerID(customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	ids := make([]uint, 0, len(list))
	for _, e := range list {
		ids = append(ids, e.ID)
	}
	mods, err := h.modifications.ListByEngagementIDs(ids)
	if err != nil {
		respondError(c, err)
		return
	}
	modsByEngagement := make(map[uint][]models.EngagementModification)
	for _, m := range mods {
		modsByEngagement[m.EngagementID] = append(modsByEngagement[m.EngagementID], m)
	}

	today := bookingToday()
	var upcoming, ongoing, past []categorizedEngagement
	for _, e := range list {
		entry := categorizedEngagement{Engagement: e, Modifications: modsByEngagement[e.ID]}
		if entry.Modifications == nil {
			entry.Modifications = []models.EngagementModification{}
		}
		switch {
		case today < e.StartDate:
			entry.Status = "upcoming"
			upcoming = append(upcoming, entry)
		case today > e.EndDate:
			entry.Status = "past"
			past = append(past, entry)
		default:
			entry.Status = "ongoing"
			ongoing = append(ongoing, entry)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"upcoming": emptyIfNil(upcoming),
		"ongoing":  emptyIfNil(ongoing),
		"past":     emptyIfNil(past),
	})
}

// ApplyLeave is the vacation request endpoint.
func (h *CustomerHandler) ApplyLeave(c *gin.Context) {
	customerID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}
	var req service.ApplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.leaves.Apply(customerID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Vacation applied successfully",
		"leave":   result.Leave,
		"refund": gin.H{
			"wallet_credit":   result.WalletCredit,
			"servease_cut":    result.PlatformCut,
			"vacation_amount": result.VacationAmount,
			"penalty":         result.Penalty,
		},
		"wallet":      gin.H{"wallet_id": result.Wallet.ID, "balance": result.Wallet.Balance},
		"transaction": result.Transaction,
	})
}

// bookingToday is today's date in the fixed booking calendar.
func bookingToday() string {
	loc, err := time.LoadLocation(domain.BookingCalendar)
	if err != nil {
		loc = time.UTC
	}
	return time.Now().In(loc).Format("2006-01-02")
}

func emptyIfNil(list []categorizedEngagement) []categorizedEngagement {
	if list == nil {
		return []categorizedEngagement{}
	}
	return list
}
