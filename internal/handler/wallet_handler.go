package handler

import (
	"net/http"

	"github.com/ServEase-Innovations/payments/internal/service"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	ledger *service.LedgerService
}

func NewWalletHandler(ledger *service.LedgerService) *WalletHandler {
	return &WalletHandler{ledger: ledger}
}

// Get returns a customer's balance plus the latest 10 ledger entries.
func (h *WalletHandler) Get(c *gin.Context) {
	customerID, err := pathID(c, "customerId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}
	w, txns, err := h.ledger.CustomerStatement(customerID, 10)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"customerid":   customerID,
		"wallet_id":    w.ID,
		"balance":      w.Balance,
		"transactions": txns,
	})
}
