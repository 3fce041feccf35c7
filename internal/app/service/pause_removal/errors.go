package pause_removal

import "errors"

// Error kinds returned by Service.RemovePause, wrapped in *RequestError.
var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrNotFound          = errors.New("not found")
	ErrTypeMismatch      = errors.New("request type mismatch")
	ErrRequestInProgress = errors.New("request in progress")
	ErrPersistence       = errors.New("persistence failed")
)

// RequestError is a client-facing failure. Message is returned to the caller
// verbatim; Kind selects the HTTP status.
type RequestError struct {
	Kind    error
	Message string
}

func (e *RequestError) Error() string { return e.Message }

func (e *RequestError) Unwrap() error { return e.Kind }

func newRequestError(kind error, message string) *RequestError {
	return &RequestError{Kind: kind, Message: message}
}

// ResolverError carries an unsuccessful resolver outcome back to the caller,
// who answers with the result itself.
type ResolverError struct {
	Result *ResolveResult
}

func (e *ResolverError) Error() string { return e.Result.Message }
