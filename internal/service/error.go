package service

import "errors"

const (
	ErrCodeDatabase            = "DATABASE_ERROR"
	ErrCodeProviderError       = "PROVIDER_ERROR"
	ErrCodeNotificationTimeout = "NOTIFICATION_TIMEOUT"
)

var (
	ErrNotificationNotFound         = errors.New("NOTIFICATION_NOT_FOUND")
	ErrNotificationBeingProcessed   = errors.New("NOTIFICATION_BEING_PROCESSED")
	ErrNotificationAlreadyProcessed = errors.New("NOTIFICATION_ALREADY_PROCESSED")
	ErrUnknownNotificationStatus    = errors.New("UNKNOWN_NOTIFICATION_STATUS")
	ErrNoMediaFound                 = errors.New("NO_MEDIA_FOUND")
	ErrAlreadyTracked               = errors.New("ALREADY_TRACKED")
	ErrDatabase                     = errors.New("DATABASE_ERROR")
)

type Error struct {
	Code  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}
