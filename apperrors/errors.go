package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies every failure the API can return synchronously.
type Kind int

const (
	KindValidation Kind = iota // malformed or out-of-range input
	KindNotFound               // unknown entity id
	KindConflict               // the request is valid but the current state forbids it
)

// Error is a kinded domain error.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the kind to the status the handlers respond with.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}

func Validation(code, format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: fmt.Sprintf(format, args...)}
}

func NotFound(code, format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Conflict(code, format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Named domain errors used across handlers and the billing engine.
var (
	ErrTableBusy         = Conflict("TableBusy", "table already has an active session")
	ErrSessionHasOrders  = Conflict("SessionHasOrders", "cannot cancel a session with orders")
	ErrSessionInactive   = Conflict("SessionInactive", "session is not active")
	ErrSessionExpired    = Conflict("SessionExpired", "session has expired")
	ErrSessionNotFound   = NotFound("SessionNotFound", "session not found")
	ErrOrderItemNotFound = NotFound("OrderItemNotFound", "order item not found")
	ErrMenuItemNotFound  = NotFound("MenuItemNotFound", "menu item not found")
)

// As unwraps err into a kinded *Error if it is one.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
