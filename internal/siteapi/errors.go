package siteapi

import (
	"errors"
	"fmt"
	"net/http"

	"sitedeck/internal/jsonutil"
)

// TransportError means the request never produced an HTTP response
// (connection refused, DNS failure, body read error).
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError means the service answered with a non-2xx status.
// Body holds the decoded response body for diagnostics.
type StatusError struct {
	Op   string
	Code int
	Body interface{}
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: %d %s", e.Op, e.Code, http.StatusText(e.Code))
	if detail := jsonutil.ErrorMessage(e.Body); detail != "" {
		msg += ": " + detail
	}
	return msg
}

// Diagnostics extracts the status code and decoded body carried by err, if any.
// Transport errors yield (0, nil).
func Diagnostics(err error) (int, interface{}) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code, se.Body
	}
	return 0, nil
}
