package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ErrorKind classifies a client failure.
type ErrorKind string

const (
	// ErrorKindConfig covers invalid or missing client setup.
	ErrorKindConfig ErrorKind = "config"
	// ErrorKindTransport covers network-level failures (connect, TLS, timeout).
	ErrorKindTransport ErrorKind = "transport"
	// ErrorKindDecode covers successful responses whose body did not parse
	// into the expected shape.
	ErrorKindDecode ErrorKind = "decode"
	// ErrorKindAPI covers errors explicitly reported by the backend.
	ErrorKindAPI ErrorKind = "api"
)

// Error is the single error type returned by all frage operations.
//
// Kind is always set. Type and Code are populated only for API-kind errors
// whose body carried them. The wrapped cause (if any) is available through
// Unwrap, so errors.Is/errors.As work against the underlying network or
// JSON error.
type Error struct {
	Kind    ErrorKind
	Message string
	// Type is the backend-provided error category (e.g. "invalid_request_error").
	Type string
	// Code is the backend-provided error code (e.g. "invalid_api_key").
	Code string

	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("%s error: %s (%s)", e.Kind, e.Message, e.Type)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// NewConfigError creates an Error for invalid or missing client configuration.
func NewConfigError(message string) *Error {
	return &Error{Kind: ErrorKindConfig, Message: message}
}

// NewTransportError creates an Error wrapping a network-level failure.
func NewTransportError(cause error) *Error {
	return &Error{
		Kind:    ErrorKindTransport,
		Message: cause.Error(),
		cause:   cause,
	}
}

// NewDecodeError creates an Error wrapping a response-body parse failure.
func NewDecodeError(cause error) *Error {
	return &Error{
		Kind:    ErrorKindDecode,
		Message: cause.Error(),
		cause:   cause,
	}
}

// NewAPIError creates an Error for a backend-reported failure.
func NewAPIError(message, errType, code string) *Error {
	return &Error{
		Kind:    ErrorKindAPI,
		Message: message,
		Type:    errType,
		Code:    code,
	}
}

// ErrorPayload is the nested error object in the backend's error responses.
type ErrorPayload struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
}

// ErrorResponse is the top-level error body returned by the backend on
// non-2xx responses: {"error": {"message": ..., "type": ..., "code": ...}}.
type ErrorResponse struct {
	Error ErrorPayload `json:"error"`
}

// ErrorFromResponse converts an HTTP response with a non-2xx status into an
// API-kind Error. It reads the full body and tries to parse it as an
// ErrorResponse. When the body does not match that shape, the returned error
// embeds the numeric status and the raw body text so nothing is lost. A
// secondary read or parse failure never propagates.
func ErrorFromResponse(resp *http.Response) *Error {
	var raw []byte
	if resp.Body != nil {
		raw, _ = io.ReadAll(resp.Body)
	}

	var body ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Error.Message != "" {
		return NewAPIError(body.Error.Message, body.Error.Type, body.Error.Code)
	}

	msg := fmt.Sprintf("HTTP %d returned from API; body: %s", resp.StatusCode, string(raw))
	return NewAPIError(msg, "", "")
}
