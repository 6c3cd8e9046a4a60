package service

import (
	"fmt"

	"github.com/ServEase-Innovations/payments/internal/domain"
)

// Fees is the platform's cut over a base amount: 10% platform fee plus 18%
// GST charged on that fee.
type Fees struct {
	PlatformFee float64 `json:"platform_fee"`
	GST         float64 `json:"gst"`
	TotalAmount float64 `json:"total_amount"`
}

// CalculateFees is pure; it rejects non-positive base amounts and has no
// other failure mode.
func CalculateFees(baseAmount float64) (Fees, error) {
	if baseAmount <= 0 {
		return Fees{}, fmt.Errorf("%w: base_amount must be positive", ErrValidation)
	}
	fee := baseAmount * domain.PlatformFeeRate
	gst := fee * domain.GSTRate
	return Fees{
		PlatformFee: fee,
		GST:         gst,
		TotalAmount: baseAmount + fee + gst,
	}, nil
}
