package orders

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"laundrydesk.com/app/internal/remote"
)

// Repo reads and writes single orders through the remote API.
type Repo struct {
	api    API
	logger *slog.Logger
}

func NewRepo(api API, logger *slog.Logger) *Repo {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repo{api: api, logger: logger}
}

func orderPath(id int64) string {
	return remote.OrdersPath + strconv.FormatInt(id, 10) + "/"
}

func (r *Repo) Get(ctx context.Context, id int64) (Order, error) {
	var o Order
	if err := r.api.Get(ctx, orderPath(id), nil, &o); err != nil {
		return Order{}, err
	}
	return o, nil
}

// Patch sends a partial update; fields must be a subset of order_status,
// payment_status, amount_paid, payment_type, balance.
func (r *Repo) Patch(ctx context.Context, id int64, fields map[string]any) (Order, error) {
	var o Order
	if err := r.api.Patch(ctx, orderPath(id), fields, &o); err != nil {
		return Order{}, err
	}
	return o, nil
}

type ItemInput struct {
	ServiceTypes   []string        `json:"servicetype"`
	ItemTypes      []string        `json:"itemtype"`
	ItemName       string          `json:"itemname"`
	Quantity       int             `json:"quantity"`
	ItemCondition  string          `json:"itemcondition"`
	AdditionalInfo string          `json:"additional_info,omitempty"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
}

// CreateInput is the final step of the order wizard; the customer has already
// been resolved.
type CreateInput struct {
	CustomerID     int64           `json:"customer_id"`
	Shop           string          `json:"shop"`
	DeliveryDate   string          `json:"delivery_date"`
	OrderStatus    string          `json:"order_status"`
	PaymentType    string          `json:"payment_type"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	AddressDetails string          `json:"addressdetails"`
	Items          []ItemInput     `json:"items"`
}

func (r *Repo) Create(ctx context.Context, in CreateInput) (Order, error) {
	in, err := normalizeCreate(in)
	if err != nil {
		return Order{}, err
	}

	var o Order
	if err := r.api.Post(ctx, remote.OrdersPath, in, &o); err != nil {
		return Order{}, err
	}
	r.logger.InfoContext(ctx, "order created",
		"order_id", o.ID,
		"code", o.UniqueCode,
		"customer_id", in.CustomerID,
		"items", len(in.Items),
	)
	return o, nil
}

func normalizeCreate(in CreateInput) (CreateInput, error) {
	if in.CustomerID <= 0 {
		return in, &ValidationError{Field: "customer_id", Msg: "customer is required"}
	}
	if !contains(Shops, in.Shop) {
		return in, &ValidationError{Field: "shop", Msg: fmt.Sprintf("unknown shop %q", in.Shop)}
	}
	if strings.TrimSpace(in.DeliveryDate) == "" {
		return in, &ValidationError{Field: "delivery_date", Msg: "delivery date is required"}
	}
	if in.OrderStatus == "" {
		in.OrderStatus = StatusPending
	}
	if !contains(OrderStatuses, in.OrderStatus) {
		return in, &ValidationError{Field: "order_status", Msg: fmt.Sprintf("unknown order status %q", in.OrderStatus)}
	}
	if in.PaymentType == "" {
		in.PaymentType = "None"
	}
	if !contains(PaymentTypes, in.PaymentType) {
		return in, &ValidationError{Field: "payment_type", Msg: fmt.Sprintf("unknown payment type %q", in.PaymentType)}
	}
	if in.AmountPaid.IsNegative() {
		return in, &ValidationError{Field: "amount_paid", Msg: "amount paid cannot be negative"}
	}
	if len(in.Items) == 0 {
		return in, &ValidationError{Field: "items", Msg: "at least one item is required"}
	}

	items := make([]ItemInput, 0, len(in.Items))
	for i, it := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		if len(it.ServiceTypes) == 0 {
			return in, &ValidationError{Field: field + ".servicetype", Msg: "pick at least one service"}
		}
		for _, st := range it.ServiceTypes {
			if !contains(ServiceTypes, st) {
				return in, &ValidationError{Field: field + ".servicetype", Msg: fmt.Sprintf("unknown service %q", st)}
			}
		}
		if len(it.ItemTypes) == 0 {
			it.ItemTypes = []string{"Clothing"}
		}
		for _, t := range it.ItemTypes {
			if !contains(ItemTypes, t) {
				return in, &ValidationError{Field: field + ".itemtype", Msg: fmt.Sprintf("unknown item type %q", t)}
			}
		}
		it.ItemName = strings.Join(splitNames(it.ItemName), ", ")
		if it.ItemName == "" {
			return in, &ValidationError{Field: field + ".itemname", Msg: "item name is required"}
		}
		if it.Quantity < 1 {
			it.Quantity = 1
		}
		if it.ItemCondition == "" {
			it.ItemCondition = "New"
		}
		if !contains(Conditions, it.ItemCondition) {
			return in, &ValidationError{Field: field + ".itemcondition", Msg: fmt.Sprintf("unknown condition %q", it.ItemCondition)}
		}
		if it.UnitPrice.IsNegative() {
			return in, &ValidationError{Field: field + ".unit_price", Msg: "price cannot be negative"}
		}
		items = append(items, it)
	}
	in.Items = items
	return in, nil
}
