package twilio

import "errors"

const (
	ErrCodeInvalidRecipient = "INVALID_RECIPIENT"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeServerError      = "SERVER_ERROR"
	ErrCodeTimeout          = "TIMEOUT"
	ErrCodeNetworkError     = "NETWORK_ERROR"
)

var (
	ErrInvalidRecipient = errors.New(ErrCodeInvalidRecipient)
	ErrUnauthorized     = errors.New(ErrCodeUnauthorized)
	ErrServerError      = errors.New(ErrCodeServerError)
	ErrTimeout          = errors.New(ErrCodeTimeout)
	ErrNetworkError     = errors.New(ErrCodeNetworkError)
)

func mapStatusToError(status int) error {
	switch status {
	case 400, 404:
		return ErrInvalidRecipient
	case 401, 403:
		return ErrUnauthorized
	default:
		return ErrServerError
	}
}
