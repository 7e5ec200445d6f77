package core

import "errors"

// Error codes for domain errors carried to the wire.
const (
	ErrCodeInvalidFormat     = "invalid_format"
	ErrCodeInvalidName       = "invalid_name"
	ErrCodeBadRequest        = "bad_request"
	ErrCodeUnauthorized      = "unauthorized"
	ErrCodeRecipientNotFound = "recipient_not_found"
	ErrCodeUnknownCommand    = "unknown_command"
	ErrCodeRateLimited       = "rate_limited"
)

var (
	ErrInvalidName = errors.New("invalid name")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
