package expenses

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"laundrydesk.com/app/internal/modules/orders"
	"laundrydesk.com/app/internal/remote"
)

// maxPages bounds how far Records follows "next" links.
const maxPages = 50

type API interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
}

type Service struct {
	api    API
	logger *slog.Logger
}

func NewService(api API, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{api: api, logger: logger}
}

func (s *Service) Fields(ctx context.Context) ([]Field, error) {
	var list remote.List[Field]
	if err := s.api.Get(ctx, remote.ExpenseFieldsPath, nil, &list); err != nil {
		return nil, err
	}
	return list.Results, nil
}

func (s *Service) CreateField(ctx context.Context, label string) (Field, error) {
	label = strings.TrimSpace(label)
	if label == "" || len(label) > 100 {
		return Field{}, &ValidationError{Field: "label", Msg: "label must be 1 to 100 characters"}
	}
	var f Field
	if err := s.api.Post(ctx, remote.ExpenseFieldsPath, map[string]string{"label": label}, &f); err != nil {
		return Field{}, err
	}
	s.logger.InfoContext(ctx, "expense field created", "field_id", f.ID, "label", f.Label)
	return f, nil
}

// Records lists every expense record (newest first, as the API orders them),
// following pagination, and totals the ones matching f.
func (s *Service) Records(ctx context.Context, f Filter) ([]Record, Summary, error) {
	if f.Shop != "" && !validShop(f.Shop) {
		return nil, Summary{}, &ValidationError{Field: "shop", Msg: fmt.Sprintf("unknown shop %q", f.Shop)}
	}

	var all []Record
	q := url.Values{}
	for page := 1; page <= maxPages; page++ {
		var list remote.List[Record]
		if err := s.api.Get(ctx, remote.ExpenseRecordsPath, q, &list); err != nil {
			return nil, Summary{}, err
		}
		all = append(all, list.Results...)
		if !list.Paginated || list.Next == "" {
			break
		}
		q = url.Values{"page": {strconv.Itoa(page + 1)}}
	}

	out := make([]Record, 0, len(all))
	for _, r := range all {
		if f.match(r) {
			out = append(out, r)
		}
	}
	return out, summarize(out), nil
}

func (s *Service) Create(ctx context.Context, in RecordInput) (Record, error) {
	in.Shop = strings.TrimSpace(in.Shop)
	in.Description = strings.TrimSpace(in.Description)
	switch {
	case in.FieldID <= 0:
		return Record{}, &ValidationError{Field: "field_id", Msg: "expense field is required"}
	case !validShop(in.Shop):
		return Record{}, &ValidationError{Field: "shop", Msg: fmt.Sprintf("unknown shop %q", in.Shop)}
	case !in.Amount.IsPositive():
		return Record{}, &ValidationError{Field: "amount", Msg: "amount must be greater than 0"}
	case len(in.Description) > 150:
		return Record{}, &ValidationError{Field: "description", Msg: "description must be at most 150 characters"}
	}
	in.Amount = in.Amount.Round(2)

	var r Record
	if err := s.api.Post(ctx, remote.ExpenseRecordsPath, in, &r); err != nil {
		return Record{}, err
	}
	s.logger.InfoContext(ctx, "expense recorded",
		"record_id", r.ID,
		"field_id", in.FieldID,
		"shop", in.Shop,
		"amount", in.Amount.StringFixed(2),
	)
	return r, nil
}

func validShop(s string) bool {
	for _, shop := range orders.Shops {
		if s == shop {
			return true
		}
	}
	return false
}
