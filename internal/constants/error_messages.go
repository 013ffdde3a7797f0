package constants

const (
	ErrCodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	ErrCodeMissingSender      = "MISSING_SENDER"
	ErrCodeMissingFile        = "MISSING_FILE"
	ErrCodeInvalidSignature   = "INVALID_SIGNATURE"
	ErrCodeInvalidCronSecret  = "INVALID_CRON_SECRET"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

const (
	ErrMsgInvalidRequestBody = "failed to parse request body"
	ErrMsgMissingSender      = "missing sender identifier"
	ErrMsgMissingFile        = "missing file upload"
	ErrMsgInvalidSignature   = "request signature validation failed"
	ErrMsgInvalidCronSecret  = "invalid cron secret"
	ErrMsgNotFound           = "resource not found"
	ErrMsgInternalError      = "Internal server error"
)

var errorMessages = map[string]string{
	ErrCodeInvalidRequestBody: ErrMsgInvalidRequestBody,
	ErrCodeMissingSender:      ErrMsgMissingSender,
	ErrCodeMissingFile:        ErrMsgMissingFile,
	ErrCodeInvalidSignature:   ErrMsgInvalidSignature,
	ErrCodeInvalidCronSecret:  ErrMsgInvalidCronSecret,
	ErrCodeNotFound:           ErrMsgNotFound,
	ErrCodeInternalError:      ErrMsgInternalError,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeInvalidRequestBody, ErrCodeMissingSender, ErrCodeMissingFile:
		return 400
	case ErrCodeInvalidSignature, ErrCodeInvalidCronSecret:
		return 403
	case ErrCodeNotFound:
		return 404
	case ErrCodeInternalError:
		return 500
	default:
		return 500
	}
}
