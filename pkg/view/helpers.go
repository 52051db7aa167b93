package view

import (
	"time"

	"github.com/shopspring/decimal"
)

// Money renders an amount in shillings, e.g. "KSh 1200.00".
func Money(d decimal.Decimal) string {
	return "KSh " + d.StringFixed(2)
}

// Date renders a timestamp as YYYY-MM-DD; zero times render empty.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func StatusLabel(status string) string {
	switch status {
	case "pending":
		return "Pending"
	case "partial":
		return "Partially paid"
	case "completed", "Completed":
		return "Completed"
	case "Delivered_picked":
		return "Delivered / picked"
	case "":
		return "-"
	default:
		return status
	}
}
