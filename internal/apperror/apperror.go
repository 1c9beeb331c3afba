// Package apperror defines the failures that domain operations attach an HTTP
// status and a client-facing message to. The API layer answers these verbatim.
package apperror

import (
	"errors"
	"net/http"
)

// Common client-facing messages
const (
	MsgBadRequest     = "Bad request!"
	MsgNotFound       = "Not found!"
	MsgInternalServer = "Internal Server Error"
)

// Error is an expected failure carrying the status and message sent to the client
type Error struct {
	Status int
	Msg    string
}

func (e *Error) Error() string {
	return e.Msg
}

// New creates an Error with the given status and message
func New(status int, msg string) *Error {
	return &Error{Status: status, Msg: msg}
}

// BadRequest creates a 400 Error
func BadRequest(msg string) *Error {
	return New(http.StatusBadRequest, msg)
}

// NotFound creates a 404 Error
func NotFound(msg string) *Error {
	return New(http.StatusNotFound, msg)
}

// As reports whether err carries an *Error and returns it
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// StatusOf returns the status attached to err, or 500 when there is none
func StatusOf(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
