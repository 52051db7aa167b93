package orders

import (
	"context"
	"errors"
	"log/slog"
	"net/url"

	"laundrydesk.com/app/internal/remote"
)

// Pagination is recomputed for the filtered set the operator sees.
//
// When the default filter hides picked-up orders, Count is the server count
// minus the hidden orders of *this page only*; TotalPages derived from it is
// approximate across pages (Approximate is set). No second request is made to
// recount.
type Pagination struct {
	Count       int    `json:"count"`
	CurrentPage int    `json:"current_page"`
	TotalPages  int    `json:"total_pages"`
	PageSize    int    `json:"page_size"`
	Next        string `json:"next,omitempty"`
	Previous    string `json:"previous,omitempty"`
	Approximate bool   `json:"approximate"`
}

type ShopSummary struct {
	TotalOrders     int `json:"total_orders"`
	PendingOrders   int `json:"pending_orders"`
	CompletedOrders int `json:"completed_orders"`
}

// Summary is not subject to the default filter. TotalOrders is the server's raw
// count; pending/completed are counted over the raw page. An order is pending
// when either its order status or its payment status is pending.
type Summary struct {
	TotalOrders     int                    `json:"total_orders"`
	PendingOrders   int                    `json:"pending_orders"`
	CompletedOrders int                    `json:"completed_orders"`
	ByShop          map[string]ShopSummary `json:"by_shop,omitempty"`
}

type Page struct {
	Items      []Order    `json:"items"`
	Pagination Pagination `json:"pagination"`
	Stats      Summary    `json:"stats"`
}

// Aggregator fetches one order page and derives pagination and stats.
type Aggregator struct {
	api    API
	logger *slog.Logger
}

func NewAggregator(api API, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{api: api, logger: logger}
}

// FetchPage asks the server for one page under c. The server applies every
// filter; the only client side rule is hiding Delivered_picked when
// c.OrderStatus is empty, so Items may hold fewer than pageSize orders.
func (a *Aggregator) FetchPage(ctx context.Context, c Criteria, page, pageSize int) (Page, error) {
	page, pageSize = normalizePaging(page, pageSize)

	var list remote.List[Order]
	if err := a.api.Get(ctx, remote.OrdersPath, c.query(page, pageSize), &list); err != nil {
		return Page{}, toFetchError(err)
	}

	if !list.Paginated {
		return a.localPage(c, list.Results, page, pageSize), nil
	}

	items := list.Results
	removed := 0
	if c.HidesDelivered() {
		items, removed = withoutDelivered(list.Results)
	}
	count := list.Count - removed
	if count < 0 {
		count = 0
	}

	a.logger.DebugContext(ctx, "order page fetched",
		"page", page,
		"raw_count", list.Count,
		"raw_items", len(list.Results),
		"hidden_delivered", removed,
	)

	return Page{
		Items: items,
		Pagination: Pagination{
			Count:       count,
			CurrentPage: page,
			TotalPages:  pagesFromTotal(count, pageSize),
			PageSize:    pageSize,
			Next:        list.Next,
			Previous:    list.Previous,
			Approximate: removed > 0,
		},
		Stats: summarize(list.Results, list.Count),
	}, nil
}

// localPage handles an unpaginated (bare array) answer: the whole filtered set
// is present, so counts are exact and the page is cut locally.
func (a *Aggregator) localPage(c Criteria, all []Order, page, pageSize int) Page {
	visible := all
	if c.HidesDelivered() {
		visible, _ = withoutDelivered(all)
	}

	start := (page - 1) * pageSize
	if start > len(visible) {
		start = len(visible)
	}
	end := start + pageSize
	if end > len(visible) {
		end = len(visible)
	}
	items := make([]Order, end-start)
	copy(items, visible[start:end])

	return Page{
		Items: items,
		Pagination: Pagination{
			Count:       len(visible),
			CurrentPage: page,
			TotalPages:  pagesFromTotal(len(visible), pageSize),
			PageSize:    pageSize,
		},
		Stats: summarize(all, len(all)),
	}
}

func withoutDelivered(in []Order) ([]Order, int) {
	out := make([]Order, 0, len(in))
	for _, o := range in {
		if o.OrderStatus == StatusDeliveredPicked {
			continue
		}
		out = append(out, o)
	}
	return out, len(in) - len(out)
}

func summarize(raw []Order, rawCount int) Summary {
	s := Summary{TotalOrders: rawCount}
	for _, o := range raw {
		pending := isPending(o)
		completed := o.OrderStatus == StatusCompleted || o.OrderStatus == StatusDeliveredPicked
		if pending {
			s.PendingOrders++
		}
		if completed {
			s.CompletedOrders++
		}

		if o.Shop == "" {
			continue
		}
		if s.ByShop == nil {
			s.ByShop = map[string]ShopSummary{}
		}
		shop := s.ByShop[o.Shop]
		shop.TotalOrders++
		if pending {
			shop.PendingOrders++
		}
		if completed {
			shop.CompletedOrders++
		}
		s.ByShop[o.Shop] = shop
	}
	return s
}

func isPending(o Order) bool {
	return o.OrderStatus == StatusPending || o.PaymentStatus == PaymentPending
}

func toFetchError(err error) *FetchError {
	var apiErr *remote.APIError
	if errors.As(err, &apiErr) {
		return &FetchError{Status: apiErr.Status, Message: apiErr.Message(), Err: err}
	}
	return &FetchError{Message: err.Error(), Err: err}
}

// API is the subset of the remote client used by this package.
type API interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
}
