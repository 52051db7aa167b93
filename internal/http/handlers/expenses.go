package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"laundrydesk.com/app/internal/modules/expenses"
)

type ExpensesHandler struct {
	Svc *expenses.Service
}

func NewExpensesHandler(svc *expenses.Service) *ExpensesHandler {
	return &ExpensesHandler{Svc: svc}
}

// GET /api/expenses/fields
func (h *ExpensesHandler) Fields(c *gin.Context) {
	fields, err := h.Svc.Fields(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if fields == nil {
		fields = []expenses.Field{}
	}
	c.JSON(http.StatusOK, gin.H{"items": fields})
}

type expenseFieldRequest struct {
	Label string `json:"label" binding:"required,max=100"`
}

// POST /api/expenses/fields
func (h *ExpensesHandler) CreateField(c *gin.Context) {
	var req expenseFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err, &req)
		return
	}
	f, err := h.Svc.CreateField(c.Request.Context(), req.Label)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

// GET /api/expenses?shop=&date_from=&date_to=
func (h *ExpensesHandler) List(c *gin.Context) {
	from, err := parseDate(c, "date_from")
	if err != nil {
		fail(c, err)
		return
	}
	to, err := parseDate(c, "date_to")
	if err != nil {
		fail(c, err)
		return
	}

	records, sum, err := h.Svc.Records(c.Request.Context(), expenses.Filter{
		Shop: strings.TrimSpace(c.Query("shop")),
		From: from,
		To:   to,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": records, "summary": sum})
}

type expenseRequest struct {
	FieldID     int64           `json:"field_id" binding:"required,gt=0"`
	Shop        string          `json:"shop" binding:"required,oneof='Shop A' 'Shop B'"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" binding:"max=150"`
}

// POST /api/expenses
func (h *ExpensesHandler) Create(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err, &req)
		return
	}
	r, err := h.Svc.Create(c.Request.Context(), expenses.RecordInput{
		FieldID:     req.FieldID,
		Shop:        req.Shop,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}
