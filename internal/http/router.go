package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"laundrydesk.com/app/internal/http/handlers"
	"laundrydesk.com/app/internal/http/middleware"
	"laundrydesk.com/app/internal/metrics"
	"laundrydesk.com/app/internal/modules/customers"
	"laundrydesk.com/app/internal/modules/expenses"
	"laundrydesk.com/app/internal/modules/orders"
	"laundrydesk.com/app/internal/modules/payments"
	"laundrydesk.com/app/internal/modules/reports"
	"laundrydesk.com/app/internal/sms"
	"laundrydesk.com/app/internal/storage"
)

// Deps are the wired services behind the gateway.
type Deps struct {
	Resolver   *customers.Resolver
	Aggregator *orders.Aggregator
	Orders     *orders.Repo
	Admin      *orders.AdminService
	Payments   *payments.Service
	Reports    *reports.Service
	Expenses   *expenses.Service
	SMS        *sms.Service
	Storage    storage.Storage
	Metrics    *metrics.Metrics

	// Gatherer serves /metrics; nil disables the route.
	Gatherer        prometheus.Gatherer
	DefaultPageSize int
}

func NewRouter(logger *slog.Logger, d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger, "/healthz", "/metrics"),
		middleware.ErrorHandler(logger),
		middleware.Recovery(logger),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	customersH := handlers.NewCustomersHandler(d.Resolver, d.Metrics)
	ordersH := handlers.NewOrdersHandler(customersH, d.Orders, d.SMS, logger)
	adminH := handlers.NewAdminOrdersHandler(d.Aggregator, d.Orders, d.Admin, d.SMS, d.Storage, d.Metrics, logger)
	if d.DefaultPageSize > 0 {
		adminH.DefaultPageSize = d.DefaultPageSize
	}
	paymentsH := handlers.NewPaymentsHandler(d.Payments)
	smsH := handlers.NewSmsHandler(d.Orders, d.SMS)
	dashboardH := handlers.NewDashboardHandler(d.Reports)
	expensesH := handlers.NewExpensesHandler(d.Expenses)

	api := r.Group("/api", middleware.RequireToken())
	{
		api.POST("/customers/resolve", customersH.Resolve)
		api.GET("/customers", customersH.Search)

		api.GET("/orders", adminH.List)
		api.POST("/orders", ordersH.Create)
		api.GET("/orders/export", adminH.Export)
		api.GET("/orders/:id", adminH.Detail)
		api.PATCH("/orders/:id/status", adminH.UpdateStatus)
		api.POST("/orders/:id/transition", adminH.Transition)
		api.POST("/orders/:id/payments", paymentsH.Record)
		api.POST("/orders/:id/sms", smsH.SendForOrder)

		api.POST("/payments/stk-push", paymentsH.STKPush)
		api.GET("/sms/history", smsH.History)

		api.GET("/reports/dashboard", dashboardH.Dashboard)
		api.GET("/reports/stats", dashboardH.Stats)

		api.GET("/expenses", expensesH.List)
		api.POST("/expenses", expensesH.Create)
		api.GET("/expenses/fields", expensesH.Fields)
		api.POST("/expenses/fields", expensesH.CreateField)
	}

	r.NoRoute(func(c *gin.Context) {
		middleware.Fail(c, handlerNotFound)
	})
	return r
}
