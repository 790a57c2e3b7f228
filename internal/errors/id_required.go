package errors

import "net/http"

var ErrIDRequired = &Exception{
	Message:    "id is required",
	StatusCode: http.StatusBadRequest,
}
