package errors

import "net/http"

var ErrInvalidID = &Exception{
	Message:    "id must be a positive integer",
	StatusCode: http.StatusBadRequest,
}
