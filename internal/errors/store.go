package errors

import "net/http"

var ErrStore = &Exception{
	Message:    "something went wrong, please try again",
	StatusCode: http.StatusInternalServerError,
}

// Store wraps a persistence failure. The cause stays available through
// errors.Unwrap but clients only see the generic message.
func Store(err error) *Exception {
	return &Exception{
		Message:    ErrStore.Message,
		StatusCode: ErrStore.StatusCode,
		Err:        err,
	}
}
