package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"laundrydesk.com/app/internal/auth"
	"laundrydesk.com/app/internal/metrics"
	"laundrydesk.com/app/internal/modules/orders"
	"laundrydesk.com/app/internal/shared/apperr"
	"laundrydesk.com/app/internal/sms"
	"laundrydesk.com/app/internal/storage"
	"laundrydesk.com/app/pkg/view"
)

// HeaderClientID names the list view a request belongs to. A newer list
// request supersedes an older in-flight one of the same view only.
const HeaderClientID = "X-Client-ID"

const maxClientIDLen = 128

type AdminOrdersHandler struct {
	Aggregator      *orders.Aggregator
	Repo            *orders.Repo
	Admin           *orders.AdminService
	SMS             *sms.Service
	Storage         storage.Storage
	Metrics         *metrics.Metrics
	Logger          *slog.Logger
	DefaultPageSize int

	mu      sync.Mutex
	loaders map[viewKey]*viewLoader
}

// viewKey scopes a loader to one caller's view: the same X-Client-ID sent with
// another token is a different view.
type viewKey struct {
	token    string
	clientID string
}

type viewLoader struct {
	loader   *orders.Loader
	inflight int
}

func NewAdminOrdersHandler(agg *orders.Aggregator, repo *orders.Repo, admin *orders.AdminService, smsSvc *sms.Service, st storage.Storage, m *metrics.Metrics, logger *slog.Logger) *AdminOrdersHandler {
	return &AdminOrdersHandler{
		Aggregator:      agg,
		Repo:            repo,
		Admin:           admin,
		SMS:             smsSvc,
		Storage:         st,
		Metrics:         m,
		Logger:          logger,
		DefaultPageSize: orders.DefaultPageSize,
		loaders:         map[viewKey]*viewLoader{},
	}
}

func (h *AdminOrdersHandler) viewKey(c *gin.Context) (viewKey, error) {
	id := strings.TrimSpace(c.GetHeader(HeaderClientID))
	if id == "" || len(id) > maxClientIDLen {
		return viewKey{}, apperr.InvalidErr("Send an X-Client-ID header naming the list view.",
			map[string]string{HeaderClientID: "Required, at most 128 characters."})
	}
	tok, _ := auth.FromContext(c.Request.Context())
	return viewKey{token: tok.Access, clientID: id}, nil
}

// acquire returns the view's loader. Entries only live while a load is in
// flight, so the map is bounded by concurrent requests.
func (h *AdminOrdersHandler) acquire(k viewKey) *orders.Loader {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.loaders[k]
	if !ok {
		v = &viewLoader{loader: orders.NewLoader(h.Aggregator)}
		h.loaders[k] = v
	}
	v.inflight++
	return v.loader
}

func (h *AdminOrdersHandler) release(k viewKey) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if v, ok := h.loaders[k]; ok {
		v.inflight--
		if v.inflight <= 0 {
			delete(h.loaders, k)
		}
	}
}

func (h *AdminOrdersHandler) criteria(c *gin.Context) (orders.Criteria, int, int, error) {
	from, err := parseDate(c, "date_from")
	if err != nil {
		return orders.Criteria{}, 0, 0, err
	}
	to, err := parseDate(c, "date_to")
	if err != nil {
		return orders.Criteria{}, 0, 0, err
	}
	crit := orders.Criteria{
		Search:        strings.TrimSpace(c.Query("search")),
		PaymentStatus: strings.TrimSpace(c.Query("payment_status")),
		Shop:          strings.TrimSpace(c.Query("shop")),
		OrderStatus:   strings.TrimSpace(c.Query("order_status")),
		Ordering:      strings.TrimSpace(c.Query("ordering")),
		DateFrom:      from,
		DateTo:        to,
	}
	return crit, parseInt(c.Query("page"), 1), parseInt(c.Query("page_size"), h.DefaultPageSize), nil
}

// GET /api/orders
func (h *AdminOrdersHandler) List(c *gin.Context) {
	crit, page, size, err := h.criteria(c)
	if err != nil {
		fail(c, err)
		return
	}

	key, err := h.viewKey(c)
	if err != nil {
		fail(c, err)
		return
	}

	l := h.acquire(key)
	res, err := l.Load(c.Request.Context(), crit, page, size)
	h.release(key)
	switch {
	case err == nil:
		h.Metrics.OrderFetch("success")
	case errors.Is(err, orders.ErrStale):
		h.Metrics.OrderFetch("stale")
	default:
		h.Metrics.OrderFetch("error")
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, listPage(res))
}

// GET /api/orders/:id
func (h *AdminOrdersHandler) Detail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	o, err := h.Repo.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orderDetail(o))
}

type statusRequest struct {
	Status string `json:"order_status" binding:"required,oneof=pending Completed Delivered_picked"`
	Notify bool   `json:"notify"`
}

// PATCH /api/orders/:id/status
// With notify set, the customer gets the completed/delivered SMS when the
// status actually changed.
func (h *AdminOrdersHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err, &req)
		return
	}

	res, err := h.Admin.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.statusResponse(c, res, req.Notify))
}

type transitionRequest struct {
	Action string `json:"action" binding:"required,oneof=complete deliver reopen"`
	Notify bool   `json:"notify"`
}

// POST /api/orders/:id/transition
func (h *AdminOrdersHandler) Transition(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err, &req)
		return
	}

	res, err := h.Admin.Transition(c.Request.Context(), orders.TransitionInput{OrderID: id, Action: req.Action})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.statusResponse(c, res, req.Notify))
}

func (h *AdminOrdersHandler) statusResponse(c *gin.Context, res orders.TransitionResult, notify bool) gin.H {
	resp := gin.H{"order": orderDetail(res.Order), "from_status": res.FromStatus}
	to := res.Order.OrderStatus
	if kind, ok := sms.KindForStatus(to); ok && notify && res.FromStatus != to {
		entry, err := h.SMS.NotifyOrder(c.Request.Context(), res.Order, kind, "")
		if err != nil {
			h.Logger.WarnContext(c.Request.Context(), "status sms not sent", "order_id", res.Order.ID, "err", err)
			resp["sms_error"] = toAppErrMessage(err)
		} else {
			resp["sms"] = entry
		}
	}
	return resp
}

// GET /api/orders/export
// Exports the page selected by the same filters as the list.
func (h *AdminOrdersHandler) Export(c *gin.Context) {
	crit, page, size, err := h.criteria(c)
	if err != nil {
		fail(c, err)
		return
	}
	res, err := h.Aggregator.FetchPage(c.Request.Context(), crit, page, size)
	if err != nil {
		fail(c, err)
		return
	}

	data, err := orders.ExportXLSX(res.Items)
	if err != nil {
		fail(c, err)
		return
	}
	put, err := h.Storage.Put(c.Request.Context(), bytes.NewReader(data), storage.PutInput{
		Filename:    "orders.xlsx",
		ContentType: storage.ContentTypeXLSX,
		Size:        int64(len(data)),
	})
	if err != nil {
		fail(c, err)
		return
	}
	h.Logger.InfoContext(c.Request.Context(), "orders exported", "key", put.Key, "count", len(res.Items))
	c.JSON(http.StatusCreated, view.ExportResult{URL: put.URL, Key: put.Key, Count: len(res.Items)})
}
