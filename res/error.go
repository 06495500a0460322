package res

import (
	"errors"
	"net/http"
)

type ErrorRes struct {
	Err        error
	StatusCode int
}

func (e *ErrorRes) Error() string {
	return e.Err.Error()
}

func NewErrorRes(statusCode int, message string) *ErrorRes {
	return &ErrorRes{
		Err:        errors.New(message),
		StatusCode: statusCode,
	}
}

func BadRequest(err error) *ErrorRes {
	return &ErrorRes{Err: err, StatusCode: http.StatusBadRequest}
}

func Unavailable(err error) *ErrorRes {
	return &ErrorRes{Err: err, StatusCode: http.StatusServiceUnavailable}
}

func Internal(err error) *ErrorRes {
	return &ErrorRes{Err: err, StatusCode: http.StatusInternalServerError}
}
