package expenses

import (
	"time"

	"github.com/shopspring/decimal"
)

// Field is an expense category ("Rent", "Detergent").
type Field struct {
	ID        int64     `json:"id"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

type Record struct {
	ID          int64           `json:"id"`
	Field       Field           `json:"field"`
	Shop        string          `json:"shop"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
}

type RecordInput struct {
	FieldID     int64           `json:"field_id"`
	Shop        string          `json:"shop"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// Filter is applied after listing; the API's expense endpoint takes no filters.
type Filter struct {
	Shop string
	From *time.Time
	To   *time.Time
}

func (f Filter) match(r Record) bool {
	if f.Shop != "" && r.Shop != f.Shop {
		return false
	}
	if f.From == nil && f.To == nil {
		return true
	}
	d, err := time.Parse(time.DateOnly, r.Date)
	if err != nil {
		return false
	}
	if f.From != nil && d.Before(*f.From) {
		return false
	}
	if f.To != nil && d.After(*f.To) {
		return false
	}
	return true
}

// Summary totals the listed records, per shop as well.
type Summary struct {
	Count   int                        `json:"count"`
	Total   decimal.Decimal            `json:"total"`
	Average decimal.Decimal            `json:"average"`
	ByShop  map[string]decimal.Decimal `json:"by_shop"`
}

func summarize(records []Record) Summary {
	s := Summary{Count: len(records), ByShop: map[string]decimal.Decimal{}}
	for _, r := range records {
		s.Total = s.Total.Add(r.Amount)
		s.ByShop[r.Shop] = s.ByShop[r.Shop].Add(r.Amount)
	}
	if s.Count > 0 {
		s.Average = s.Total.Div(decimal.NewFromInt(int64(s.Count))).Round(2)
	}
	return s
}
