package handler

import (
	"net/http"
	"strconv"

	"github.com/ServEase-Innovations/payments/internal/service"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	bookings *service.BookingService
	leaves   *service.LeaveService
}

func NewEngagementHandler(bookings *service.BookingService, leaves *service.LeaveService) *EngagementHandler {
	return &EngagementHandler{bookings: bookings, leaves: leaves}
}

func (h *EngagementHandler) Create(c *gin.Context) {
	var req service.CreateEngagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.bookings.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":        "Engagement, payment, provider wallet, and payout created successfully",
		"engagement":     result.Engagement,
		"payment":        result.Payment,
		"updated_wallet": result.Wallet,
		"payout":         result.Payout,
	})
}

func (h *EngagementHandler) List(c *gin.Context) {
	list, err := h.bookings.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *EngagementHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid engagement id"})
		return
	}
	e, err := h.bookings.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// Update is the PUT entry point with two exclusive modes: a plain field
// patch, or vacation handling when the vacation fields are present.
func (h *EngagementHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid engagement id"})
		return
	}
	var req service.UpdateEngagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.VacationMode() {
		h.updateVacation(c, id, req)
		return
	}
	e, err := h.bookings.UpdateFields(id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *EngagementHandler) updateVacation(c *gin.Context, id uint, req service.UpdateEngagementRequest) {
	e, err := h.bookings.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if req.CancelVacation {
		leave, err := h.leaves.Cancel(e.CustomerID, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Vacation cancelled", "leave": leave})
		return
	}
	result, err := h.leaves.Apply(e.CustomerID, service.ApplyLeaveRequest{
		EngagementID:   id,
		LeaveStartDate: *req.VacationStartDate,
		LeaveEndDate:   *req.VacationEndDate,
		LeaveType:      "VACATION",
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vacation applied successfully", "result": result})
}

func (h *EngagementHandler) Cancel(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid engagement id"})
		return
	}
	var body struct {
		ModifiedByID   *uint  `json:"modified_by_id"`
		ModifiedByRole string `json:"modified_by_role"`
	}
	_ = c.ShouldBindJSON(&body)
	e, err := h.bookings.Cancel(id, body.ModifiedByID, body.ModifiedByRole)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Engagement cancelled", "engagement": e})
}

func (h *EngagementHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid engagement id"})
		return
	}
	if err := h.bookings.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Engagement deleted"})
}

// Accept is the provider-assignment race entry point.
func (h *EngagementHandler) Accept(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid engagement id"})
		return
	}
	var body struct {
		ProviderID uint `json:"serviceproviderid"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.ProviderID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "serviceproviderid is required"})
		return
	}
	e, err := h.bookings.Accept(id, body.ProviderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Engagement assigned", "engagement": e})
}

func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, strconv.ErrSyntax
	}
	return uint(id), nil
}
