package payments

import (
	"github.com/shopspring/decimal"

	"laundrydesk.com/app/internal/modules/orders"
)

const PaymentTypeNone = "None"

// Settlement is the payment subset patched onto an order.
type Settlement struct {
	AmountPaid    decimal.Decimal
	Balance       decimal.Decimal
	PaymentStatus string
	PaymentType   string
}

func (s Settlement) fields() map[string]any {
	return map[string]any{
		"amount_paid":    s.AmountPaid.StringFixed(2),
		"balance":        s.Balance.StringFixed(2),
		"payment_status": s.PaymentStatus,
		"payment_type":   s.PaymentType,
	}
}

// Settle derives balance and payment status the way the API stores them:
// nothing paid is pending (and has no payment type), paid in full is completed,
// anything between is partial.
func Settle(total, paid decimal.Decimal, paymentType string) Settlement {
	balance := total.Sub(paid)
	if balance.IsNegative() {
		balance = decimal.Zero
	}

	s := Settlement{AmountPaid: paid, Balance: balance, PaymentType: paymentType}
	switch {
	case paid.IsZero():
		s.PaymentStatus = orders.PaymentPending
		s.PaymentType = PaymentTypeNone
	case paid.GreaterThanOrEqual(total):
		s.PaymentStatus = orders.PaymentCompleted
	default:
		s.PaymentStatus = orders.PaymentPartial
	}
	return s
}
