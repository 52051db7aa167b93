package customers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"laundrydesk.com/app/internal/remote"
)

// API is the slice of the remote client the resolver needs.
type API interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
}

// Resolver finds or creates exactly one customer per phone number. Nothing is
// cached: every call asks the remote API, which is the source of truth.
type Resolver struct {
	api    API
	logger *slog.Logger
}

func NewResolver(api API, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{api: api, logger: logger}
}

// Resolve runs lookup -> create -> (duplicate phone) re-lookup, strictly in that
// order, for 1 to 3 remote calls. name is only used when the phone is unknown.
func (r *Resolver) Resolve(ctx context.Context, phone, name string) (Customer, Outcome, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return Customer{}, "", err
	}

	c, found, err := r.lookup(ctx, normalized)
	if err != nil {
		return Customer{}, "", err
	}
	if found {
		r.logger.DebugContext(ctx, "customer found", "customer_id", c.ID, "phone", normalized)
		return c, OutcomeFound, nil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return Customer{}, "", &ValidationError{Field: "name", Msg: "name required to create customer"}
	}

	var created Customer
	err = r.api.Post(ctx, remote.CustomersPath, createRequest{Name: name, Phone: normalized}, &created)
	if err == nil {
		r.logger.InfoContext(ctx, "customer created", "customer_id", created.ID, "phone", normalized)
		return created, OutcomeCreated, nil
	}

	var apiErr *remote.APIError
	if !errors.As(err, &apiErr) {
		return Customer{}, "", &CreationError{Phone: normalized, Msg: err.Error(), Err: err}
	}
	if !apiErr.IsDuplicatePhone() {
		return Customer{}, "", &CreationError{Phone: normalized, Msg: apiErr.Message(), Err: err}
	}

	// Someone created the same phone between our lookup and our create.
	r.logger.WarnContext(ctx, "duplicate phone on create, retrying lookup", "phone", normalized)
	c, found, retryErr := r.lookup(ctx, normalized)
	if retryErr == nil && found {
		r.logger.InfoContext(ctx, "customer recovered after create race", "customer_id", c.ID, "phone", normalized)
		return c, OutcomeRaceRecovered, nil
	}
	cause := ErrRaceRetryExhausted
	if retryErr != nil {
		cause = errors.Join(ErrRaceRetryExhausted, retryErr)
	}
	return Customer{}, "", &CreationError{
		Phone: normalized,
		Msg:   apiErr.Message(),
		Err:   errors.Join(err, cause),
	}
}

// lookup reports found=false only for a 404.
func (r *Resolver) lookup(ctx context.Context, phone string) (Customer, bool, error) {
	var c Customer
	q := url.Values{"phone": {phone}}
	err := r.api.Get(ctx, remote.CustomersPath+"by_phone/", q, &c)
	if err == nil {
		return c, true, nil
	}

	var apiErr *remote.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusNotFound {
			return Customer{}, false, nil
		}
		return Customer{}, false, &LookupError{Phone: phone, Status: apiErr.Status, Err: err}
	}
	return Customer{}, false, &LookupError{Phone: phone, Err: err}
}

// Search lists customers matching a name or phone fragment, for the wizard's
// customer picker.
func (r *Resolver) Search(ctx context.Context, query string) ([]Customer, error) {
	q := url.Values{}
	if s := strings.TrimSpace(query); s != "" {
		q.Set("search", s)
	}
	var list remote.List[Customer]
	if err := r.api.Get(ctx, remote.CustomersPath, q, &list); err != nil {
		var apiErr *remote.APIError
		status := 0
		if errors.As(err, &apiErr) {
			status = apiErr.Status
		}
		return nil, &LookupError{Phone: query, Status: status, Err: err}
	}
	return list.Results, nil
}
