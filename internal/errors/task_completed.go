package errors

import "net/http"

var ErrTaskCompleted = &Exception{
	Message:    "task is already completed",
	StatusCode: http.StatusConflict,
}
