package orders

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending         = "pending"
	StatusCompleted       = "Completed"
	StatusDeliveredPicked = "Delivered_picked"
)

const (
	PaymentPending   = "pending"
	PaymentPartial   = "partial"
	PaymentCompleted = "completed"
)

const (
	ShopA = "Shop A"
	ShopB = "Shop B"
)

var (
	Shops         = []string{ShopA, ShopB}
	OrderStatuses = []string{StatusPending, StatusCompleted, StatusDeliveredPicked}
	PaymentTypes  = []string{"cash", "M-Pesa", "card", "bank_transfer", "other", "None"}
	ServiceTypes  = []string{"Washing", "Folding", "Ironing", "Dry cleaning"}
	ItemTypes     = []string{"Clothing", "Bedding", "Household items", "Footwares"}
	Conditions    = []string{"New", "Old", "Torn"}
)

// CustomerRef is the customer as embedded in an order payload.
type CustomerRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Order is owned by the remote API; the gateway only reads and patches it.
// Expected (not enforced here): Balance = TotalPrice - AmountPaid.
type Order struct {
	ID             int64           `json:"id"`
	UniqueCode     string          `json:"uniquecode"`
	Customer       CustomerRef     `json:"customer"`
	PaymentType    string          `json:"payment_type"`
	PaymentStatus  string          `json:"payment_status"`
	Shop           string          `json:"shop"`
	DeliveryDate   string          `json:"delivery_date"`
	OrderStatus    string          `json:"order_status"`
	AddressDetails string          `json:"addressdetails"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	Balance        decimal.Decimal `json:"balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Items          []OrderItem     `json:"items"`
}

type OrderItem struct {
	ID             int64           `json:"id"`
	ServiceType    StringList      `json:"servicetype"`
	ItemType       StringList      `json:"itemtype"`
	ItemName       string          `json:"itemname"`
	Quantity       int             `json:"quantity"`
	ItemCondition  string          `json:"itemcondition"`
	AdditionalInfo string          `json:"additional_info,omitempty"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TotalItemPrice decimal.Decimal `json:"total_item_price"`
}

// Names splits the comma separated itemname into trimmed entries.
func (it OrderItem) Names() []string {
	return splitNames(it.ItemName)
}

// StringList accepts both ["a","b"] and "a,b" since multi-select fields are
// serialized either way depending on the endpoint.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}
	if data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*s = list
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*s = splitNames(joined)
	return nil
}

func splitNames(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
