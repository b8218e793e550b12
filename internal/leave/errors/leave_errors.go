package leaveerrors

import (
	"net/http"

	"github.com/preyapanngam2004-art/leave-project/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid request id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInvalidState,
		"insufficient leave balance for the requested period",
		http.StatusBadRequest,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrAlreadyDecided = apperror.New(
		apperror.CodeConflict,
		"leave request has already been decided",
		http.StatusConflict,
	)
	ErrNotDesignatedApprover = apperror.New(
		apperror.CodeForbidden,
		"only the designated approver may decide this request",
		http.StatusForbidden,
	)
	ErrUnknownReference = apperror.New(
		apperror.CodeInvalidInput,
		"leave type or approver does not exist",
		http.StatusBadRequest,
	)
	ErrNotOwnRecord = apperror.New(
		apperror.CodeForbidden,
		"you may only view your own leave records",
		http.StatusForbidden,
	)
)
