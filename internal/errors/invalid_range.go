package errors

import "net/http"

var ErrInvalidRange = &Exception{
	Message:    "range start must be before its end",
	StatusCode: http.StatusBadRequest,
}
