package orders

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Criteria are the list filters. Empty fields are not sent.
type Criteria struct {
	Search        string
	PaymentStatus string
	Shop          string
	OrderStatus   string
	DateFrom      *time.Time
	DateTo        *time.Time
	Ordering      string // e.g. "-created_at"
}

// HidesDelivered reports whether the default display rule applies: with no
// explicit order status, picked-up orders are hidden.
func (c Criteria) HidesDelivered() bool {
	return strings.TrimSpace(c.OrderStatus) == ""
}

func (c Criteria) query(page, pageSize int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	set := func(k, v string) {
		if v = strings.TrimSpace(v); v != "" {
			q.Set(k, v)
		}
	}
	set("search", c.Search)
	set("payment_status", c.PaymentStatus)
	set("shop", c.Shop)
	set("order_status", c.OrderStatus)
	set("ordering", c.Ordering)
	if c.DateFrom != nil {
		q.Set("created_at__gte", c.DateFrom.Format(time.DateOnly))
	}
	if c.DateTo != nil {
		q.Set("created_at__lte", c.DateTo.Format(time.DateOnly))
	}
	return q
}

func normalizePaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

func pagesFromTotal(total, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}
