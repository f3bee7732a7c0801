package errors

import "net/http"

var ErrKeyRequired = &Exception{
	Message:    "setting key is required",
	StatusCode: http.StatusBadRequest,
}
