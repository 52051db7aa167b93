package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"laundrydesk.com/app/internal/modules/reports"
)

type DashboardHandler struct {
	Reports *reports.Service
}

func NewDashboardHandler(svc *reports.Service) *DashboardHandler {
	return &DashboardHandler{Reports: svc}
}

// GET /api/reports/dashboard?start_date=&end_date=&payment_status=&shop=
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	from, err := parseDate(c, "start_date")
	if err != nil {
		fail(c, err)
		return
	}
	to, err := parseDate(c, "end_date")
	if err != nil {
		fail(c, err)
		return
	}

	d, err := h.Reports.Dashboard(c.Request.Context(), reports.Filter{
		StartDate:     from,
		EndDate:       to,
		PaymentStatus: strings.TrimSpace(c.Query("payment_status")),
		Shop:          strings.TrimSpace(c.Query("shop")),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// GET /api/reports/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	st, err := h.Reports.Stats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
