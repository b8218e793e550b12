package apperror

import "fmt"

// AppError is the single error type the service layers return for
// expected failures. Handlers translate it with ToHTTP.
type AppError struct {
	Code       string // machine-readable code (e.g. INSUFFICIENT_BALANCE)
	Message    string // user-facing message
	HTTPStatus int
	Err        error // wrapped original error (optional)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap makes errors.Is/As see the wrapped cause.
func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap attaches taxonomy metadata to an existing error.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}
