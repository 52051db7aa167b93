package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laundrydesk.com/app/internal/remote"
)

type rawOrder struct {
	ID            int64  `json:"id"`
	UniqueCode    string `json:"uniquecode"`
	OrderStatus   string `json:"order_status"`
	PaymentStatus string `json:"payment_status"`
	Shop          string `json:"shop"`
}

// pageOf builds a DRF envelope holding ids first..first+n-1; delivered lists
// the 1-based positions that are Delivered_picked.
func pageOf(t *testing.T, count, first, n int, delivered ...int) string {
	t.Helper()
	isDelivered := map[int]bool{}
	for _, p := range delivered {
		isDelivered[p] = true
	}
	results := make([]rawOrder, 0, n)
	for i := 1; i <= n; i++ {
		o := rawOrder{
			ID:            int64(first + i - 1),
			UniqueCode:    fmt.Sprintf("ORD-%03d", first+i-1),
			OrderStatus:   StatusCompleted,
			PaymentStatus: PaymentCompleted,
			Shop:          ShopA,
		}
		if isDelivered[i] {
			o.OrderStatus = StatusDeliveredPicked
		}
		results = append(results, o)
	}
	raw, err := json.Marshal(map[string]any{"count": count, "next": "next-url", "previous": nil, "results": results})
	require.NoError(t, err)
	return string(raw)
}

func TestFetchPageHidesDeliveredByDefault(t *testing.T) {
	api := newFakeAPI().on("GET", remote.OrdersPath, pageOf(t, 25, 1, 10, 3, 7))

	p, err := NewAggregator(api, nil).FetchPage(context.Background(), Criteria{}, 1, 10)
	require.NoError(t, err)

	assert.Len(t, p.Items, 8)
	for _, o := range p.Items {
		assert.NotEqual(t, StatusDeliveredPicked, o.OrderStatus)
	}
	assert.Equal(t, 23, p.Pagination.Count)
	assert.Equal(t, 3, p.Pagination.TotalPages)
	assert.Equal(t, 1, p.Pagination.CurrentPage)
	assert.Equal(t, "next-url", p.Pagination.Next)
	assert.True(t, p.Pagination.Approximate)

	assert.Equal(t, 25, p.Stats.TotalOrders, "stats use the raw server count")
	assert.Equal(t, 10, p.Stats.CompletedOrders, "delivered orders still count as completed")
	assert.Equal(t, 0, p.Stats.PendingOrders)
}

func TestFetchPageExplicitDeliveredFilterKeepsThem(t *testing.T) {
	api := newFakeAPI().on("GET", remote.OrdersPath, pageOf(t, 2, 1, 2, 1, 2))

	p, err := NewAggregator(api, nil).FetchPage(context.Background(), Criteria{OrderStatus: StatusDeliveredPicked}, 1, 10)
	require.NoError(t, err)

	assert.Len(t, p.Items, 2)
	assert.Equal(t, 2, p.Pagination.Count)
	assert.False(t, p.Pagination.Approximate)
	assert.Equal(t, StatusDeliveredPicked, api.last().Query.Get("order_status"))
}

func TestFetchPagePendingIsOrderOrPaymentStatus(t *testing.T) {
	body := `{"count": 4, "results": [
		{"id": 1, "order_status": "pending",   "payment_status": "completed", "shop": "Shop A"},
		{"id": 2, "order_status": "Completed", "payment_status": "pending",   "shop": "Shop A"},
		{"id": 3, "order_status": "Completed", "payment_status": "completed", "shop": "Shop B"},
		{"id": 4, "order_status": "pending",   "payment_status": "pending",   "shop": "Shop B"}
	]}`
	api := newFakeAPI().on("GET", remote.OrdersPath, body)

	p, err := NewAggregator(api, nil).FetchPage(context.Background(), Criteria{}, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, 3, p.Stats.PendingOrders)
	assert.Equal(t, 2, p.Stats.CompletedOrders)
	assert.Equal(t, ShopSummary{TotalOrders: 2, PendingOrders: 2, CompletedOrders: 1}, p.Stats.ByShop[ShopA])
	assert.Equal(t, ShopSummary{TotalOrders: 2, PendingOrders: 1, CompletedOrders: 1}, p.Stats.ByShop[ShopB])
}

func TestFetchPageBareArrayIsPagedLocally(t *testing.T) {
	body := `[
		{"id": 1, "order_status": "pending"},
		{"id": 2, "order_status": "Delivered_picked"},
		{"id": 3, "order_status": "pending"},
		{"id": 4, "order_status": "Completed"},
		{"id": 5, "order_status": "pending"}
	]`
	api := newFakeAPI().on("GET", remote.OrdersPath, body)

	p, err := NewAggregator(api, nil).FetchPage(context.Background(), Criteria{}, 2, 3)
	require.NoError(t, err)

	require.Len(t, p.Items, 1)
	assert.Equal(t, int64(5), p.Items[0].ID)
	assert.Equal(t, 4, p.Pagination.Count)
	assert.Equal(t, 2, p.Pagination.TotalPages)
	assert.False(t, p.Pagination.Approximate)
	assert.Equal(t, 5, p.Stats.TotalOrders)
}

func TestFetchPageQueryParams(t *testing.T) {
	api := newFakeAPI().on("GET", remote.OrdersPath, `{"count": 0, "results": []}`)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	_, err := NewAggregator(api, nil).FetchPage(context.Background(), Criteria{
		Search:        " jane ",
		PaymentStatus: PaymentPartial,
		Shop:          ShopB,
		DateFrom:      &from,
		DateTo:        &to,
	}, 2, 20)
	require.NoError(t, err)

	q := api.last().Query
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "20", q.Get("page_size"))
	assert.Equal(t, "jane", q.Get("search"))
	assert.Equal(t, "partial", q.Get("payment_status"))
	assert.Equal(t, "Shop B", q.Get("shop"))
	assert.Equal(t, "2024-01-01", q.Get("created_at__gte"))
	assert.Equal(t, "2024-01-31", q.Get("created_at__lte"))
	assert.NotContains(t, q, "order_status")
	assert.NotContains(t, q, "ordering")
}

func TestFetchPageNormalizesPaging(t *testing.T) {
	api := newFakeAPI().on("GET", remote.OrdersPath, `{"count": 0, "results": []}`)

	p, err := NewAggregator(api, nil).FetchPage(context.Background(), Criteria{}, 0, 500)
	require.NoError(t, err)
	assert.Equal(t, "1", api.last().Query.Get("page"))
	assert.Equal(t, "100", api.last().Query.Get("page_size"))
	assert.Equal(t, 1, p.Pagination.TotalPages)
}

func TestFetchPageError(t *testing.T) {
	api := newFakeAPI().fail("GET", remote.OrdersPath, &remote.APIError{Status: http.StatusServiceUnavailable, Detail: "maintenance"})

	_, err := NewAggregator(api, nil).FetchPage(context.Background(), Criteria{}, 1, 10)
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusServiceUnavailable, fe.Status)
	assert.Equal(t, "maintenance", fe.Message)
}
