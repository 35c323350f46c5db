// Package apierror provides the standardized response envelopes for the API.
// All responses go through this package to ensure consistency and to prevent
// leaking internal details (stack traces, DB errors, etc.).
package apierror

// Envelope is the canonical body for every API response.
// Success responses carry Data; error responses carry Errors (optional).
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// OK wraps a successful payload.
func OK(message string, data interface{}) *Envelope {
	return &Envelope{Success: true, Message: message, Data: data}
}

// New builds an error envelope with a caller-safe message.
func New(message string) *Envelope {
	return &Envelope{Success: false, Message: message}
}

// NewValidation wraps multiple field errors.
func NewValidation(fields map[string]string) *Envelope {
	return &Envelope{Success: false, Message: "Validation failed", Errors: fields}
}
