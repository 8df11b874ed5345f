package service

import "errors"

// ErrNotFound marks a missing referenced entity; handlers map it to 404.
var ErrNotFound = errors.New("entity not found")

// ErrUnauthorized covers bad credentials, expired refresh tokens and wrong
// OTP codes; handlers map it to 401 without leaking which check failed.
var ErrUnauthorized = errors.New("unauthorized")

// FieldErrors carries field-scoped validation messages from the workflow
// rules; handlers map it to 422 with the field map in the body.
type FieldErrors struct {
	Fields map[string]string
}

func (e *FieldErrors) Error() string {
	for _, msg := range e.Fields {
		return msg
	}
	return "validation failed"
}

// AsFieldErrors extracts a *FieldErrors from an error chain, or nil.
func AsFieldErrors(err error) *FieldErrors {
	var fe *FieldErrors
	if errors.As(err, &fe) {
		return fe
	}
	return nil
}
