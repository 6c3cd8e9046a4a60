package handler

import (
	"net/http"

	"github.com/ServEase-Innovations/payments/internal/service"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	ledger *service.LedgerService
}

func NewPaymentHandler(ledger *service.LedgerService) *PaymentHandler {
	return &PaymentHandler{ledger: ledger}
}

// Verify is the gateway settlement callback.
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req service.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.ledger.VerifyPayment(req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment verified and completed successfully"})
}
