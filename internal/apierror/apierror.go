// Package apierror holds the JSON error envelopes the handlers return.
// Clients only ever see a detail message (plus per-field messages on
// validation), never driver or stack internals.
package apierror

// APIError is the single-message envelope used for every 4xx/5xx response.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError carries one message per rejected field, keyed by the
// JSON field name.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
