package sms

import (
	"fmt"
	"strconv"
	"strings"

	"laundrydesk.com/app/internal/modules/orders"
	"laundrydesk.com/app/pkg/view"
)

type Kind string

const (
	KindCreated   Kind = "created"
	KindCompleted Kind = "completed"
	KindDelivered Kind = "delivered"
	KindCustom    Kind = "custom"
)

const maxItemsInSMS = 6

// ParseKind accepts the notification names used by the API routes.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindCreated, KindCompleted, KindDelivered, KindCustom:
		return k, true
	}
	return "", false
}

// Render builds the customer-facing text for an order event. custom is only
// used for KindCustom.
func Render(kind Kind, o orders.Order, custom string) (string, error) {
	name := o.Customer.Name
	switch kind {
	case KindCreated:
		return fmt.Sprintf(
			"Hello %s! Your order %s has been received. Items: %s. Total: %s. Paid: %s. Balance: %s. And it is now being processed.",
			name, o.UniqueCode, ItemsSummary(o.Items),
			view.Money(o.TotalPrice), view.Money(o.AmountPaid), view.Money(o.Balance),
		), nil
	case KindCompleted:
		return fmt.Sprintf(
			"Hi %s, your order %s is now complete! Thank you for choosing our laundry service.",
			name, o.UniqueCode,
		), nil
	case KindDelivered:
		return fmt.Sprintf(
			"Hello %s, your order %s has been delivered successfully. We appreciate your trust in our services!",
			name, o.UniqueCode,
		), nil
	case KindCustom:
		msg := strings.TrimSpace(custom)
		if msg == "" {
			return "", ErrEmptyMessage
		}
		return msg, nil
	}
	return "", fmt.Errorf("sms: unknown template %q", kind)
}

// KindForStatus maps a new order status to its notification.
func KindForStatus(status string) (Kind, bool) {
	switch status {
	case orders.StatusCompleted:
		return KindCompleted, true
	case orders.StatusDeliveredPicked:
		return KindDelivered, true
	}
	return "", false
}

// ItemsSummary lists item names with "Nx " quantity prefixes, at most six
// entries followed by "+N more".
func ItemsSummary(items []orders.OrderItem) string {
	var entries []string
	for _, it := range items {
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		for _, n := range it.Names() {
			if qty > 1 {
				entries = append(entries, strconv.Itoa(qty)+"x "+n)
			} else {
				entries = append(entries, n)
			}
		}
	}
	if len(entries) == 0 {
		return "items not specified"
	}

	visible := entries
	if len(visible) > maxItemsInSMS {
		visible = visible[:maxItemsInSMS]
	}
	summary := strings.Join(visible, ", ")
	if hidden := len(entries) - maxItemsInSMS; hidden > 0 {
		summary += ", +" + strconv.Itoa(hidden) + " more"
	}
	return summary
}
