package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"laundrydesk.com/app/internal/modules/payments"
	"laundrydesk.com/app/pkg/view"
)

type PaymentsHandler struct {
	Svc *payments.Service
}

func NewPaymentsHandler(svc *payments.Service) *PaymentsHandler {
	return &PaymentsHandler{Svc: svc}
}

type recordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	PaymentType string          `json:"payment_type" binding:"required"`
}

// POST /api/orders/:id/payments
func (h *PaymentsHandler) Record(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req recordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err, &req)
		return
	}

	res, err := h.Svc.Record(c.Request.Context(), payments.RecordInput{
		OrderID:     id,
		Amount:      req.Amount,
		PaymentType: req.PaymentType,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.PaymentResult{
		Order:         listItem(res.Order),
		PaymentStatus: res.Settlement.PaymentStatus,
		PaymentType:   res.Settlement.PaymentType,
		Balance:       view.Money(res.Settlement.Balance),
	})
}

type stkPushRequest struct {
	Phone  string `json:"phone" binding:"required"`
	Amount int    `json:"amount" binding:"required,gt=0"`
}

// POST /api/payments/stk-push
func (h *PaymentsHandler) STKPush(c *gin.Context) {
	var req stkPushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err, &req)
		return
	}
	resp, err := h.Svc.RequestSTKPush(c.Request.Context(), req.Phone, req.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	if len(resp.Raw) > 0 {
		c.Data(http.StatusOK, "application/json; charset=utf-8", resp.Raw)
		return
	}
	c.JSON(http.StatusOK, resp)
}
