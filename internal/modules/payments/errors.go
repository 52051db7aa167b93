package payments

import "errors"

var (
	ErrInvalidAmount      = errors.New("payment amount must be greater than zero")
	ErrUnknownPaymentType = errors.New("unknown payment type")
	ErrAlreadySettled     = errors.New("order is already fully paid")
)
