package errors

import "net/http"

var ErrInvalidTimestamp = &Exception{
	Message:    "timestamps must be RFC 3339",
	StatusCode: http.StatusBadRequest,
}
