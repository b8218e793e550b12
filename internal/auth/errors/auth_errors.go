package autherrors

import (
	"net/http"

	"github.com/preyapanngam2004-art/leave-project/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"invalid username or password",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"invalid token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"token has expired",
		http.StatusUnauthorized,
	)
	ErrInvalidRefreshToken = apperror.New(
		apperror.CodeUnauthorized,
		"invalid refresh token",
		http.StatusUnauthorized,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"failed to generate token",
		http.StatusInternalServerError,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"you do not have permission to perform this action",
		http.StatusForbidden,
	)
)
