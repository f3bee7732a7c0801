package errors

import "net/http"

var ErrSessionNotFound = &Exception{
	Message:    "task session not found",
	StatusCode: http.StatusNotFound,
}
