package response

// APIResponse is the envelope returned by every HTTP API. Status is carried
// by the HTTP status code; Success mirrors it for clients that only read the body.
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

// OK returns a successful response with a message only.
func OK(message string) *APIResponse[any] {
	return &APIResponse[any]{Success: true, Message: message}
}

// OKT returns a successful response with data.
func OKT[T any](message string, data T) *APIResponse[T] {
	return &APIResponse[T]{Success: true, Message: message, Data: data}
}

// Error returns a failure response with message.
func Error(message string) *APIResponse[any] {
	return &APIResponse[any]{Success: false, Message: message}
}

// ErrorT returns a failure response with message and data.
func ErrorT[T any](message string, data T) *APIResponse[T] {
	return &APIResponse[T]{Success: false, Message: message, Data: data}
}
