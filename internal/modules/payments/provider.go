package payments

import (
	"context"
	"encoding/json"
	"log/slog"

	"laundrydesk.com/app/internal/remote"
)

type STKPushRequest struct {
	PhoneNumber string `json:"phone_number"` // 2547XXXXXXXX
	Amount      int    `json:"amount"`
}

// STKPushResponse is the Daraja answer relayed by the API, kept raw.
type STKPushResponse struct {
	MerchantRequestID string          `json:"MerchantRequestID"`
	CheckoutRequestID string          `json:"CheckoutRequestID"`
	ResponseCode      string          `json:"ResponseCode"`
	CustomerMessage   string          `json:"CustomerMessage"`
	Raw               json.RawMessage `json:"-"`
}

// Provider initiates mobile-money collection on the customer's phone.
type Provider interface {
	Name() string
	RequestSTKPush(ctx context.Context, req STKPushRequest) (STKPushResponse, error)
}

type poster interface {
	Post(ctx context.Context, path string, body, out any) error
}

// DarajaProvider goes through the API's M-Pesa endpoint, which holds the
// shortcode, passkey and callback configuration.
type DarajaProvider struct {
	api    poster
	logger *slog.Logger
}

func NewDarajaProvider(api poster, logger *slog.Logger) *DarajaProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &DarajaProvider{api: api, logger: logger}
}

func (p *DarajaProvider) Name() string { return "mpesa" }

func (p *DarajaProvider) RequestSTKPush(ctx context.Context, req STKPushRequest) (STKPushResponse, error) {
	var raw json.RawMessage
	if err := p.api.Post(ctx, remote.STKPushPath, req, &raw); err != nil {
		return STKPushResponse{}, err
	}
	// The push was accepted; an unexpected body shape only loses the typed fields.
	var out STKPushResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			p.logger.WarnContext(ctx, "stk push response not decoded", "err", err, "body", string(raw))
		}
	}
	out.Raw = raw
	return out, nil
}
