package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
)

type Handler func(http.ResponseWriter, *http.Request) Result

type Result struct {
	Error error
	Code  int
	Body  interface{}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func BadRequest(message string) Result {
	return Result{
		Code: http.StatusBadRequest,
		Body: ErrorResponse{message},
	}
}

func InternalError(error error, message string) Result {
	return Result{
		Error: errors.Join(errors.New(message), error),
		Code:  http.StatusInternalServerError,
	}
}

func NotFound(message string) Result {
	return Result{
		Code: http.StatusNotFound,
		Body: ErrorResponse{message},
	}
}

func Ok(body interface{}) Result {
	return Result{
		Code: http.StatusOK,
		Body: body,
	}
}

// Upstream passes a failed upstream response through with its original
// status and body. Non-JSON bodies get wrapped so the response stays a
// valid JSON document.
func Upstream(code int, body string) Result {
	raw := json.RawMessage(body)
	if !json.Valid(raw) {
		return Result{Code: code, Body: ErrorResponse{body}}
	}
	return Result{Code: code, Body: raw}
}
