package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"laundrydesk.com/app/internal/auth"
	"laundrydesk.com/app/internal/http/middleware"
	"laundrydesk.com/app/internal/http/validation"
	"laundrydesk.com/app/internal/modules/customers"
	"laundrydesk.com/app/internal/modules/expenses"
	"laundrydesk.com/app/internal/modules/orders"
	"laundrydesk.com/app/internal/modules/payments"
	"laundrydesk.com/app/internal/modules/reports"
	"laundrydesk.com/app/internal/remote"
	"laundrydesk.com/app/internal/shared/apperr"
	"laundrydesk.com/app/internal/sms"
	"laundrydesk.com/app/internal/storage"
	"laundrydesk.com/app/pkg/view"
)

func fail(c *gin.Context, err error) {
	middleware.Fail(c, toAppErr(err))
}

func bindFail(c *gin.Context, err error, dst any) {
	middleware.Fail(c, apperr.InvalidErr("Please check the highlighted fields.", validation.FromBindError(err, dst)))
}

// toAppErr maps domain and upstream errors onto the HTTP error kinds.
func toAppErr(err error) error {
	if _, ok := apperr.As(err); ok {
		return err
	}

	var (
		custVal  *customers.ValidationError
		orderVal *orders.ValidationError
		expVal   *expenses.ValidationError
		repVal   *reports.ValidationError
		report   *reports.ReportError
		lookup   *customers.LookupError
		creation *customers.CreationError
		fetch    *orders.FetchError
		provider *sms.ProviderError
		apiErr   *remote.APIError
	)
	switch {
	case errors.As(err, &custVal):
		return apperr.InvalidErr(custVal.Msg, map[string]string{custVal.Field: custVal.Msg})
	case errors.As(err, &orderVal):
		return apperr.InvalidErr(orderVal.Error(), map[string]string{orderVal.Field: orderVal.Msg})
	case errors.As(err, &expVal):
		return apperr.InvalidErr(expVal.Error(), map[string]string{expVal.Field: expVal.Msg})
	case errors.As(err, &repVal):
		return apperr.InvalidErr(repVal.Error(), map[string]string{repVal.Field: repVal.Msg})
	case remote.IsStatus(err, http.StatusUnauthorized), remote.IsStatus(err, http.StatusForbidden):
		errors.As(err, &apiErr)
		return fromAPIError(apiErr)
	case errors.Is(err, customers.ErrRaceRetryExhausted) && errors.As(err, &creation):
		return apperr.UpstreamErr("Customer could not be created or found: "+creation.Msg, err)
	case errors.As(err, &creation):
		if remote.IsStatus(err, http.StatusBadRequest) {
			return apperr.InvalidErr(creation.Msg, nil)
		}
		return apperr.UpstreamErr("Could not create customer: "+creation.Msg, err)
	case errors.As(err, &lookup):
		return apperr.UpstreamErr("Customer lookup failed. Please try again.", err)
	case errors.As(err, &fetch):
		return apperr.UpstreamErr(fetch.Error(), err)
	case errors.As(err, &report):
		return apperr.UpstreamErr(report.Error(), err)
	case errors.Is(err, orders.ErrStale):
		return &apperr.AppError{Kind: apperr.Conflict, PublicMsg: "A newer order list request replaced this one.", Err: err}
	case errors.Is(err, orders.ErrInvalidTransition):
		return &apperr.AppError{Kind: apperr.Conflict, PublicMsg: "That status change is not allowed for this order.", Err: err}
	case errors.Is(err, payments.ErrInvalidAmount), errors.Is(err, payments.ErrUnknownPaymentType):
		return &apperr.AppError{Kind: apperr.Invalid, PublicMsg: err.Error(), Err: err}
	case errors.Is(err, payments.ErrAlreadySettled):
		return &apperr.AppError{Kind: apperr.Conflict, PublicMsg: err.Error(), Err: err}
	case errors.Is(err, sms.ErrInvalidPhone), errors.Is(err, sms.ErrEmptyMessage), errors.Is(err, storage.ErrUnsupportedType):
		return &apperr.AppError{Kind: apperr.Invalid, PublicMsg: err.Error(), Err: err}
	case errors.As(err, &provider):
		return apperr.UpstreamErr("SMS could not be sent: "+provider.Msg, err)
	case errors.Is(err, auth.ErrNoToken):
		return &apperr.AppError{Kind: apperr.Unauthorized, PublicMsg: "Missing API token.", Err: err}
	case errors.As(err, &apiErr):
		return fromAPIError(apiErr)
	}
	return apperr.Wrap(err)
}

func fromAPIError(e *remote.APIError) error {
	switch e.Status {
	case http.StatusBadRequest:
		fields := map[string]string{}
		for k, msgs := range e.Fields {
			if len(msgs) > 0 {
				fields[k] = msgs[0]
			}
		}
		return &apperr.AppError{Kind: apperr.Invalid, PublicMsg: e.Message(), Fields: fields, Err: e}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &apperr.AppError{Kind: apperr.Unauthorized, PublicMsg: "The API rejected your token: " + e.Message(), Err: e}
	case http.StatusNotFound:
		return &apperr.AppError{Kind: apperr.NotFound, PublicMsg: "Not found.", Err: e}
	}
	return apperr.UpstreamErr(e.Message(), e)
}

func parseInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.Fail(c, apperr.NotFoundErr("Order not found."))
		return 0, false
	}
	return id, true
}

func parseDate(c *gin.Context, key string) (*time.Time, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return nil, apperr.InvalidErr("Dates must look like 2024-01-31.", map[string]string{key: "Invalid date."})
	}
	return &t, nil
}

func listItem(o orders.Order) view.AdminOrderListItem {
	return view.AdminOrderListItem{
		ID:            o.ID,
		Code:          o.UniqueCode,
		Customer:      o.Customer.Name,
		Phone:         o.Customer.Phone,
		Shop:          o.Shop,
		OrderStatus:   o.OrderStatus,
		PaymentStatus: o.PaymentStatus,
		Total:         view.Money(o.TotalPrice),
		Paid:          view.Money(o.AmountPaid),
		Balance:       view.Money(o.Balance),
		DeliveryDate:  o.DeliveryDate,
		CreatedAt:     o.CreatedAt.Format("2006-01-02 15:04"),
	}
}

func orderDetail(o orders.Order) view.AdminOrderDetail {
	vm := view.AdminOrderDetail{
		AdminOrderListItem: listItem(o),
		PaymentType:        o.PaymentType,
		Address:            o.AddressDetails,
	}
	for _, it := range o.Items {
		vm.Items = append(vm.Items, view.AdminOrderItem{
			Names:     it.Names(),
			Services:  it.ServiceType,
			Types:     it.ItemType,
			Qty:       it.Quantity,
			Condition: it.ItemCondition,
			Unit:      view.Money(it.UnitPrice),
			Line:      view.Money(it.TotalItemPrice),
			Info:      it.AdditionalInfo,
		})
	}
	return vm
}

func listPage(p orders.Page) view.AdminOrdersListPage {
	items := make([]view.AdminOrderListItem, 0, len(p.Items))
	for _, o := range p.Items {
		items = append(items, listItem(o))
	}
	byShop := make(map[string]view.ShopStats, len(p.Stats.ByShop))
	for shop, s := range p.Stats.ByShop {
		byShop[shop] = view.ShopStats{Total: s.TotalOrders, Pending: s.PendingOrders, Completed: s.CompletedOrders}
	}
	return view.AdminOrdersListPage{
		Items: items,
		Pagination: view.PageInfo{
			Count:       p.Pagination.Count,
			CurrentPage: p.Pagination.CurrentPage,
			TotalPages:  p.Pagination.TotalPages,
			PageSize:    p.Pagination.PageSize,
			Next:        p.Pagination.Next,
			Previous:    p.Pagination.Previous,
			Approximate: p.Pagination.Approximate,
		},
		Stats: view.OrderStats{
			TotalOrders:     p.Stats.TotalOrders,
			PendingOrders:   p.Stats.PendingOrders,
			CompletedOrders: p.Stats.CompletedOrders,
			ByShop:          byShop,
		},
	}
}

func toAppErrMessage(err error) string {
	if ae, ok := apperr.As(toAppErr(err)); ok {
		return ae.PublicMsg
	}
	return err.Error()
}
