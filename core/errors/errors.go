package errors

import (
	stderrors "errors"
	"fmt"
)

type ErrorCode string

const (
	ErrInvalidInput               ErrorCode = "invalid_input"
	ErrInvalidRequestData         ErrorCode = "invalid_request_data"
	ErrUnauthorized               ErrorCode = "unauthorized"
	ErrTokenExpired               ErrorCode = "token_expired"
	ErrInvalidTokenFormat         ErrorCode = "invalid_token_format"
	ErrMissingAuthorizationHeader ErrorCode = "missing_authorization_header"
	ErrForbidden                  ErrorCode = "forbidden"
	ErrNotFound                   ErrorCode = "not_found"
	ErrAlreadyExists              ErrorCode = "already_exists"
	ErrTooManyRequests            ErrorCode = "too_many_requests"
	ErrInternalServer             ErrorCode = "internal_server_error"

	// Calendar and one-on-one booking
	ErrSlotUnavailable      ErrorCode = "slot_unavailable"
	ErrInvalidSlotState     ErrorCode = "invalid_slot_state"
	ErrCalendarNotConnected ErrorCode = "calendar_not_connected"
	ErrCalendarCreateFailed ErrorCode = "calendar_create_failed"
	ErrCalendarUpdateFailed ErrorCode = "calendar_update_failed"
	ErrCalendarFetchFailed  ErrorCode = "calendar_fetch_failed"
)

// AppError is the error type returned by services. Controllers turn it into a JSON body.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HasCode reports whether err is an *AppError carrying code.
func HasCode(err error, code ErrorCode) bool {
	var ae *AppError
	if stderrors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}
