package reports

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"laundrydesk.com/app/internal/modules/orders"
	"laundrydesk.com/app/internal/remote"
)

type API interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
}

// Filter narrows the full dashboard. Key stats are always unfiltered.
type Filter struct {
	StartDate     *time.Time
	EndDate       *time.Time
	PaymentStatus string
	Shop          string
}

func (f Filter) validate() error {
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return &ValidationError{Field: "end_date", Msg: "end date is before start date"}
	}
	switch f.PaymentStatus {
	case "", orders.PaymentPending, orders.PaymentPartial, orders.PaymentCompleted:
	default:
		return &ValidationError{Field: "payment_status", Msg: "unknown payment status " + f.PaymentStatus}
	}
	if f.Shop != "" && f.Shop != orders.ShopA && f.Shop != orders.ShopB {
		return &ValidationError{Field: "shop", Msg: "unknown shop " + f.Shop}
	}
	return nil
}

func (f Filter) query() url.Values {
	q := url.Values{}
	if f.StartDate != nil {
		q.Set("start_date", f.StartDate.Format(time.DateOnly))
	}
	if f.EndDate != nil {
		q.Set("end_date", f.EndDate.Format(time.DateOnly))
	}
	if f.PaymentStatus != "" {
		q.Set("payment_status", f.PaymentStatus)
	}
	if f.Shop != "" {
		q.Set("shop", f.Shop)
	}
	return q
}

// Service reads the API's performance report. All figures are computed
// remotely; nothing is aggregated here.
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

func (s *Service) Dashboard(ctx context.Context, f Filter) (Dashboard, error) {
	if err := f.validate(); err != nil {
		return Dashboard{}, err
	}
	var d Dashboard
	if err := s.fetch(ctx, remote.ReportPath, f.query(), &d); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}

func (s *Service) Stats(ctx context.Context) (KeyStats, error) {
	var st KeyStats
	if err := s.fetch(ctx, remote.ReportPath+"stats/", nil, &st); err != nil {
		return KeyStats{}, err
	}
	return st, nil
}

func (s *Service) fetch(ctx context.Context, path string, q url.Values, out any) error {
	var env envelope
	if err := s.api.Get(ctx, path, q, &env); err != nil {
		var apiErr *remote.APIError
		if errors.As(err, &apiErr) {
			return &ReportError{Status: apiErr.Status, Msg: apiErr.Message(), Err: err}
		}
		return &ReportError{Msg: err.Error(), Err: err}
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "the API reported no data"
		}
		s.logger.WarnContext(ctx, "report unsuccessful", "path", path, "error", msg)
		return &ReportError{Msg: msg}
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &ReportError{Msg: "unexpected report format", Err: err}
	}
	return nil
}
