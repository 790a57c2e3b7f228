package errors

import "net/http"

// Validation reports malformed or out of range input.
func Validation(message string) *Exception {
	return &Exception{
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}
