package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"laundrydesk.com/app/internal/modules/orders"
	"laundrydesk.com/app/internal/sms"
)

// OrdersHandler runs the new-order wizard: resolve the customer by phone,
// then create the order for them.
type OrdersHandler struct {
	Customers *CustomersHandler
	Repo      *orders.Repo
	SMS       *sms.Service
	Logger    *slog.Logger
}

func NewOrdersHandler(ch *CustomersHandler, repo *orders.Repo, smsSvc *sms.Service, logger *slog.Logger) *OrdersHandler {
	return &OrdersHandler{Customers: ch, Repo: repo, SMS: smsSvc, Logger: logger}
}

type wizardItem struct {
	ServiceTypes   []string        `json:"servicetype" binding:"required,min=1"`
	ItemTypes      []string        `json:"itemtype"`
	ItemName       string          `json:"itemname" binding:"required"`
	Quantity       int             `json:"quantity"`
	ItemCondition  string          `json:"itemcondition"`
	AdditionalInfo string          `json:"additional_info"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
}

type createOrderRequest struct {
	Customer struct {
		Phone string `json:"phone" binding:"required"`
		Name  string `json:"name"`
	} `json:"customer"`
	Shop           string          `json:"shop" binding:"required"`
	DeliveryDate   string          `json:"delivery_date" binding:"required"`
	OrderStatus    string          `json:"order_status"`
	PaymentType    string          `json:"payment_type"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	AddressDetails string          `json:"addressdetails"`
	Items          []wizardItem    `json:"items" binding:"required,min=1,dive"`
	Notify         bool            `json:"notify"`
}

// POST /api/orders
func (h *OrdersHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err, &req)
		return
	}

	cust, outcome, err := h.Customers.resolve(c, req.Customer.Phone, req.Customer.Name)
	if err != nil {
		fail(c, err)
		return
	}

	in := orders.CreateInput{
		CustomerID:     cust.ID,
		Shop:           req.Shop,
		DeliveryDate:   req.DeliveryDate,
		OrderStatus:    req.OrderStatus,
		PaymentType:    req.PaymentType,
		AmountPaid:     req.AmountPaid,
		AddressDetails: req.AddressDetails,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, orders.ItemInput{
			ServiceTypes:   it.ServiceTypes,
			ItemTypes:      it.ItemTypes,
			ItemName:       it.ItemName,
			Quantity:       it.Quantity,
			ItemCondition:  it.ItemCondition,
			AdditionalInfo: it.AdditionalInfo,
			UnitPrice:      it.UnitPrice,
		})
	}

	o, err := h.Repo.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	if o.Customer.ID == 0 {
		o.Customer = orders.CustomerRef{ID: cust.ID, Name: cust.Name, Phone: cust.Phone}
	}

	resp := gin.H{
		"order":            orderDetail(o),
		"customer_outcome": string(outcome),
	}
	if req.Notify {
		entry, err := h.SMS.NotifyOrder(c.Request.Context(), o, sms.KindCreated, "")
		if err != nil {
			h.Logger.WarnContext(c.Request.Context(), "order created sms not sent", "order_id", o.ID, "err", err)
			resp["sms_error"] = toAppErrMessage(err)
		} else {
			resp["sms"] = entry
		}
	}
	c.JSON(http.StatusCreated, resp)
}
