package sms

import (
	"context"

	"laundrydesk.com/app/internal/remote"
)

// Provider delivers a single text message and returns the provider message id.
type Provider interface {
	Send(ctx context.Context, toPhone, message string) (string, error)
}

type poster interface {
	Post(ctx context.Context, path string, body, out any) error
}

// RemoteProvider relays through the API's send-sms endpoint (Twilio behind it).
type RemoteProvider struct {
	api poster
}

func NewRemoteProvider(api poster) *RemoteProvider { return &RemoteProvider{api: api} }

type sendRequest struct {
	ToNumber string `json:"to_number"`
	Message  string `json:"message"`
}

type sendResponse struct {
	Success bool   `json:"success"`
	SID     string `json:"sid"`
	Error   string `json:"error"`
}

func (p *RemoteProvider) Send(ctx context.Context, toPhone, message string) (string, error) {
	var resp sendResponse
	if err := p.api.Post(ctx, remote.SendSMSPath, sendRequest{ToNumber: toPhone, Message: message}, &resp); err != nil {
		return "", err
	}
	if !resp.Success && resp.Error != "" {
		return "", &ProviderError{Msg: resp.Error}
	}
	return resp.SID, nil
}
