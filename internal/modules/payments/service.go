package payments

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"laundrydesk.com/app/internal/modules/customers"
	"laundrydesk.com/app/internal/modules/orders"
)

type Service struct {
	repo     *orders.Repo
	provider Provider
	logger   *slog.Logger
}

func NewService(repo *orders.Repo, p Provider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, provider: p, logger: logger}
}

type RecordInput struct {
	OrderID     int64
	Amount      decimal.Decimal
	PaymentType string
}

type RecordResult struct {
	Order      orders.Order
	Settlement Settlement
}

// Record adds a payment to an order and patches amount_paid, balance,
// payment_status and payment_type in one request.
func (s *Service) Record(ctx context.Context, in RecordInput) (RecordResult, error) {
	if !in.Amount.IsPositive() {
		return RecordResult{}, ErrInvalidAmount
	}
	pt := strings.TrimSpace(in.PaymentType)
	if pt == "" || pt == PaymentTypeNone || !contains(orders.PaymentTypes, pt) {
		return RecordResult{}, ErrUnknownPaymentType
	}

	o, err := s.repo.Get(ctx, in.OrderID)
	if err != nil {
		return RecordResult{}, err
	}
	if o.TotalPrice.IsPositive() && o.AmountPaid.GreaterThanOrEqual(o.TotalPrice) {
		return RecordResult{}, ErrAlreadySettled
	}

	st := Settle(o.TotalPrice, o.AmountPaid.Add(in.Amount), pt)
	updated, err := s.repo.Patch(ctx, o.ID, st.fields())
	if err != nil {
		return RecordResult{}, err
	}

	s.logger.InfoContext(ctx, "payment recorded",
		"order_id", o.ID,
		"code", o.UniqueCode,
		"amount", in.Amount.StringFixed(2),
		"payment_type", pt,
		"payment_status", st.PaymentStatus,
		"balance", st.Balance.StringFixed(2),
	)
	return RecordResult{Order: updated, Settlement: st}, nil
}

// RequestSTKPush prompts the customer's phone for an M-Pesa payment. Amounts
// are whole shillings.
func (s *Service) RequestSTKPush(ctx context.Context, phone string, amount int) (STKPushResponse, error) {
	if amount <= 0 {
		return STKPushResponse{}, ErrInvalidAmount
	}
	normalized, err := customers.NormalizePhone(phone)
	if err != nil {
		return STKPushResponse{}, err
	}

	resp, err := s.provider.RequestSTKPush(ctx, STKPushRequest{
		PhoneNumber: strings.TrimPrefix(normalized, "+"),
		Amount:      amount,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "stk push failed", "provider", s.provider.Name(), "phone", normalized, "err", err)
		return STKPushResponse{}, err
	}
	s.logger.InfoContext(ctx, "stk push requested",
		"provider", s.provider.Name(),
		"phone", normalized,
		"amount", amount,
		"checkout_request_id", resp.CheckoutRequestID,
	)
	return resp, nil
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
