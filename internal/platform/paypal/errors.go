package paypal

import (
	"errors"
	"fmt"
)

// APIError is returned for every failed PayPal call: token, transport,
// non-2xx status or an open circuit breaker. Message is always descriptive.
type APIError struct {
	// StatusCode is 0 when no HTTP response was received.
	StatusCode int
	// Name is PayPal's error name, e.g. UNPROCESSABLE_ENTITY, when the body had one.
	Name    string
	DebugID string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	return "Error with PayPal API: " + e.Message
}

func (e *APIError) Unwrap() error { return e.Err }

// Temporary reports whether the failure is worth counting against the
// circuit breaker. Client errors (4xx) are the caller's fault.
func (e *APIError) Temporary() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500 || e.StatusCode == 429
}

// errorBody covers both the REST error shape and the OAuth token error shape.
type errorBody struct {
	Name             string `json:"name"`
	Message          string `json:"message"`
	DebugID          string `json:"debug_id"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func newStatusError(status int, body errorBody) *APIError {
	e := &APIError{StatusCode: status, Name: body.Name, DebugID: body.DebugID}
	detail := body.Message
	if detail == "" {
		detail = body.ErrorDescription
	}
	if e.Name == "" {
		e.Name = body.Error
	}
	e.Message = fmt.Sprintf("Request failed with status code %d", status)
	if e.Name != "" {
		e.Message += ": " + e.Name
	}
	if detail != "" {
		e.Message += ": " + detail
	}
	return e
}

func wrapError(msg string, err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &APIError{Message: fmt.Sprintf("%s: %v", msg, err), Err: err}
}
