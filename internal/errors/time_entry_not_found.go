package errors

import "net/http"

var ErrTimeEntryNotFound = &Exception{
	Message:    "time entry not found",
	StatusCode: http.StatusNotFound,
}
