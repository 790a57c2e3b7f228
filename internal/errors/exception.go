package errors

import (
	"errors"
	"net/http"
)

// Exception is an error that carries the HTTP status it should surface as.
// Err holds the underlying cause, if any, and is never shown to clients.
type Exception struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *Exception) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Exception) Unwrap() error {
	return e.Err
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// Message returns the client facing message for err. Errors that are not
// an *Exception get a generic message.
func Message(err error) string {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return ErrStore.Message
}

func IsValidation(err error) bool {
	return StatusCode(err) == http.StatusBadRequest
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
