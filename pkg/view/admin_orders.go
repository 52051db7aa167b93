package view

type AdminOrderListItem struct {
	ID            int64  `json:"id"`
	Code          string `json:"code"`
	Customer      string `json:"customer"`
	Phone         string `json:"phone"`
	Shop          string `json:"shop"`
	OrderStatus   string `json:"order_status"`
	PaymentStatus string `json:"payment_status"`
	Total         string `json:"total"`
	Paid          string `json:"paid"`
	Balance       string `json:"balance"`
	DeliveryDate  string `json:"delivery_date"`
	CreatedAt     string `json:"created_at"`
}

type PageInfo struct {
	Count       int    `json:"count"`
	CurrentPage int    `json:"current_page"`
	TotalPages  int    `json:"total_pages"`
	PageSize    int    `json:"page_size"`
	Next        string `json:"next,omitempty"`
	Previous    string `json:"previous,omitempty"`
	Approximate bool   `json:"approximate"`
}

type ShopStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

type OrderStats struct {
	TotalOrders     int                  `json:"total_orders"`
	PendingOrders   int                  `json:"pending_orders"`
	CompletedOrders int                  `json:"completed_orders"`
	ByShop          map[string]ShopStats `json:"by_shop"`
}

type AdminOrdersListPage struct {
	Items      []AdminOrderListItem `json:"items"`
	Pagination PageInfo             `json:"pagination"`
	Stats      OrderStats           `json:"stats"`
}

type AdminOrderItem struct {
	Names     []string `json:"names"`
	Services  []string `json:"services"`
	Types     []string `json:"types"`
	Qty       int      `json:"quantity"`
	Condition string   `json:"condition"`
	Unit      string   `json:"unit_price"`
	Line      string   `json:"line_total"`
	Info      string   `json:"additional_info,omitempty"`
}

type AdminOrderDetail struct {
	AdminOrderListItem
	PaymentType string           `json:"payment_type"`
	Address     string           `json:"address"`
	Items       []AdminOrderItem `json:"items"`
}
