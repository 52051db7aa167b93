package view

type CustomerView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type ResolvedCustomer struct {
	Customer CustomerView `json:"customer"`
	Outcome  string       `json:"outcome"`
}

type PaymentResult struct {
	Order         AdminOrderListItem `json:"order"`
	PaymentStatus string             `json:"payment_status"`
	PaymentType   string             `json:"payment_type"`
	Balance       string             `json:"balance"`
}

type ExportResult struct {
	URL   string `json:"url"`
	Key   string `json:"key"`
	Count int    `json:"count"`
}
