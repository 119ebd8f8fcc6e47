package contract

type ErrorCode string

const (
	ErrInvalidDocument ErrorCode = "INVALID_DOCUMENT"
	ErrInvalidName     ErrorCode = "INVALID_NAME"
	ErrNotFound        ErrorCode = "NOT_FOUND"
	ErrInternalError   ErrorCode = "INTERNAL_ERROR"
)

// ErrorResponse is the body of every non-2xx API answer except validation
// failures, which answer with a ValidationResponse.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"error"`
}

func (e *ErrorResponse) Error() string {
	return string(e.Code) + ": " + e.Message
}
