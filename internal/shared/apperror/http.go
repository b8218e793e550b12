package apperror

import (
	"errors"
	"net/http"
)

// HTTPError is what handlers hand to the response writer.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP collapses any error into an HTTPError. Unknown errors become an
// opaque 500 so internal messages never leak to clients.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: ErrInternal.Message,
	}
}
