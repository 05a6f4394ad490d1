package models

import "github.com/shopspring/decimal"

type PaymentStatus string

const (
	Unpaid        PaymentStatus = "unpaid"
	PartiallyPaid PaymentStatus = "partially_paid"
	FullyPaid     PaymentStatus = "fully_paid"
)

// ComputePaymentStatus derives the payment status from the order amounts.
func ComputePaymentStatus(total, paid decimal.Decimal) PaymentStatus {
	switch {
	case !total.IsPositive():
		return Unpaid
	case !paid.IsPositive():
		return Unpaid
	case paid.GreaterThanOrEqual(total):
		return FullyPaid
	default:
		return PartiallyPaid
	}
}
