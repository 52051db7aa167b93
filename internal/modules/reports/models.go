package reports

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type OrderStats struct {
	TotalOrders     int             `json:"total_orders"`
	PendingOrders   int             `json:"pending_orders"`
	CompletedOrders int             `json:"completed_orders"`
	DeliveredOrders int             `json:"delivered_orders"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	AvgOrderValue   decimal.Decimal `json:"avg_order_value"`
	TotalBalance    decimal.Decimal `json:"total_balance"`
	TotalAmountPaid decimal.Decimal `json:"total_amount_paid"`
}

type PaymentStats struct {
	PendingPayments      int             `json:"pending_payments"`
	PartialPayments      int             `json:"partial_payments"`
	CompletePayments     int             `json:"complete_payments"`
	TotalPendingAmount   decimal.Decimal `json:"total_pending_amount"`
	TotalPartialAmount   decimal.Decimal `json:"total_partial_amount"`
	TotalCompleteAmount  decimal.Decimal `json:"total_complete_amount"`
	TotalCollectedAmount decimal.Decimal `json:"total_collected_amount"`
	TotalBalanceAmount   decimal.Decimal `json:"total_balance_amount"`
	OverduePayments      int             `json:"overdue_payments"`
	TotalOverdueAmount   decimal.Decimal `json:"total_overdue_amount"`
}

type ExpenseStats struct {
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	ShopAExpenses  decimal.Decimal `json:"shop_a_expenses"`
	ShopBExpenses  decimal.Decimal `json:"shop_b_expenses"`
	AverageExpense decimal.Decimal `json:"average_expense"`
}

// HotelStats are the hotel tenant's totals as computed by the API.
type HotelStats struct {
	TotalOrders   int             `json:"total_orders"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetProfit     decimal.Decimal `json:"net_profit"`
}

type BusinessGrowth struct {
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalOrders   int             `json:"total_orders"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetProfit     decimal.Decimal `json:"net_profit"`
}

// Dashboard is the full report. Sections the API leaves out stay nil; the
// per-shop and chart series are relayed as received.
type Dashboard struct {
	OrderStats       *OrderStats                `json:"order_stats,omitempty"`
	PaymentStats     *PaymentStats              `json:"payment_stats,omitempty"`
	PaymentTypeStats map[string]json.RawMessage `json:"payment_type_stats,omitempty"`
	ExpenseStats     *ExpenseStats              `json:"expense_stats,omitempty"`
	HotelStats       *HotelStats                `json:"hotel_stats,omitempty"`
	BusinessGrowth   *BusinessGrowth            `json:"business_growth,omitempty"`
	RevenueByShop    json.RawMessage            `json:"revenue_by_shop,omitempty"`
	BalanceByShop    json.RawMessage            `json:"balance_by_shop,omitempty"`
	ExpensesByShop   json.RawMessage            `json:"expenses_by_shop,omitempty"`
}

// KeyStats is the short dashboard header.
type KeyStats struct {
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalOrders   int             `json:"total_orders"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	LaundryStats  OrderStats      `json:"laundry_stats"`
	HotelStats    HotelStats      `json:"hotel_stats"`
	PaymentStats  PaymentStats    `json:"payment_stats"`
}

// envelope wraps every report answer.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}
