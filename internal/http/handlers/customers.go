package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"laundrydesk.com/app/internal/metrics"
	"laundrydesk.com/app/internal/modules/customers"
	"laundrydesk.com/app/pkg/view"
)

type CustomersHandler struct {
	Resolver *customers.Resolver
	Metrics  *metrics.Metrics
}

func NewCustomersHandler(r *customers.Resolver, m *metrics.Metrics) *CustomersHandler {
	return &CustomersHandler{Resolver: r, Metrics: m}
}

type resolveRequest struct {
	Phone string `json:"phone" binding:"required"`
	Name  string `json:"name"`
}

// POST /api/customers/resolve
func (h *CustomersHandler) Resolve(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err, &req)
		return
	}

	cust, outcome, err := h.resolve(c, req.Phone, req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	status := http.StatusOK
	if outcome == customers.OutcomeCreated {
		status = http.StatusCreated
	}
	c.JSON(status, view.ResolvedCustomer{Customer: customerView(cust), Outcome: string(outcome)})
}

func (h *CustomersHandler) resolve(c *gin.Context, phone, name string) (customers.Customer, customers.Outcome, error) {
	cust, outcome, err := h.Resolver.Resolve(c.Request.Context(), phone, name)
	if err != nil {
		h.Metrics.Resolution("error")
		return customers.Customer{}, "", err
	}
	h.Metrics.Resolution(string(outcome))
	return cust, outcome, nil
}

// GET /api/customers?q=
func (h *CustomersHandler) Search(c *gin.Context) {
	list, err := h.Resolver.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]view.CustomerView, 0, len(list))
	for _, cu := range list {
		out = append(out, customerView(cu))
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

func customerView(c customers.Customer) view.CustomerView {
	return view.CustomerView{ID: c.ID, Name: c.Name, Phone: c.Phone}
}
