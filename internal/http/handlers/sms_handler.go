package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"laundrydesk.com/app/internal/modules/customers"
	"laundrydesk.com/app/internal/modules/orders"
	"laundrydesk.com/app/internal/shared/apperr"
	"laundrydesk.com/app/internal/sms"
)

type SmsHandler struct {
	Repo *orders.Repo
	Svc  *sms.Service
}

func NewSmsHandler(repo *orders.Repo, svc *sms.Service) *SmsHandler {
	return &SmsHandler{Repo: repo, Svc: svc}
}

type orderSMSRequest struct {
	Kind    string `json:"kind" binding:"required,oneof=created completed delivered custom"`
	Message string `json:"message"`
}

// POST /api/orders/:id/sms
func (h *SmsHandler) SendForOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req orderSMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err, &req)
		return
	}
	kind, _ := sms.ParseKind(req.Kind)

	o, err := h.Repo.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	entry, err := h.Svc.NotifyOrder(c.Request.Context(), o, kind, req.Message)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// GET /api/sms/history?phone=&limit=
func (h *SmsHandler) History(c *gin.Context) {
	phone := strings.TrimSpace(c.Query("phone"))
	if phone != "" {
		normalized, err := customers.NormalizePhone(phone)
		if err != nil {
			fail(c, err)
			return
		}
		phone = normalized
	}
	if h.Svc == nil {
		fail(c, apperr.NotFoundErr("SMS history is not available."))
		return
	}
	logs, err := h.Svc.History(c.Request.Context(), phone, parseInt(c.Query("limit"), 50))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": logs})
}
