package mq

// TempError marks a handler failure as retryable. Consumers requeue
// deliveries whose error unwraps to a TempError.
type TempError struct {
	cause error
}

func Temporary(err error) error {
	return TempError{cause: err}
}

func (e TempError) Error() string {
	return e.cause.Error()
}

func (e TempError) Unwrap() error {
	return e.cause
}

func (e TempError) Temporary() bool {
	return true
}
