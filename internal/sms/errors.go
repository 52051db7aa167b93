package sms

import "errors"

var (
	ErrInvalidPhone = errors.New("sms: phone number must be in +countrycode format")
	ErrEmptyMessage = errors.New("sms: message is empty")
)

type ProviderError struct {
	Msg string
}

func (e *ProviderError) Error() string { return "sms provider: " + e.Msg }
