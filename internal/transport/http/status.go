package http

import (
	"fmt"
	"net/http"
)

// Status is an HTTP outcome: a numeric code with its reason phrase.
type Status int

const (
	StatusOK                  Status = 200
	StatusCreated             Status = 201
	StatusBadRequest          Status = 400
	StatusUnauthorized        Status = 401
	StatusNotFound            Status = 404
	StatusMethodNotAllowed    Status = 405
	StatusConflict            Status = 409
	StatusInternalServerError Status = 500
)

var statusReasons = map[Status]string{
	StatusOK:                  "OK",
	StatusCreated:             "Created",
	StatusBadRequest:          "Bad Request",
	StatusUnauthorized:        "Unauthorized",
	StatusNotFound:            "Not Found",
	StatusMethodNotAllowed:    "Method Not Allowed",
	StatusConflict:            "Conflict",
	StatusInternalServerError: "Internal Server Error",
}

// Code returns the numeric status code
func (s Status) Code() int {
	return int(s)
}

// Reason returns the reason phrase, falling back to net/http's table for
// codes not listed here.
func (s Status) Reason() string {
	if reason, ok := statusReasons[s]; ok {
		return reason
	}
	return http.StatusText(int(s))
}

func (s Status) String() string {
	return fmt.Sprintf("%d %s", int(s), s.Reason())
}
