package errors

import "net/http"

var ErrSettingNotFound = &Exception{
	Message:    "setting not found",
	StatusCode: http.StatusNotFound,
}
