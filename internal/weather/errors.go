package weather

import (
	"errors"
	"fmt"
)

// ConfigError reports a missing or placeholder API key. No request is sent.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Reason
}

// TransportError wraps network, DNS and timeout failures.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("connection error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPStatusError is returned for any non-2xx response.
type HTTPStatusError struct {
	StatusCode int
	Status     string
}

func (e *HTTPStatusError) Error() string {
	return "HTTP error: " + e.Status
}

// DecodeError means the body did not match the expected response shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("JSON parse error: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// APIError carries the message of a well-formed error envelope.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return "API error: " + e.Message
}

// Kind names the error variant, for metrics labels and logs.
func Kind(err error) string {
	var (
		cfgErr    *ConfigError
		transErr  *TransportError
		statusErr *HTTPStatusError
		decodeErr *DecodeError
		apiErr    *APIError
	)
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &cfgErr):
		return "config"
	case errors.As(err, &transErr):
		return "transport"
	case errors.As(err, &statusErr):
		return "http_status"
	case errors.As(err, &decodeErr):
		return "decode"
	case errors.As(err, &apiErr):
		return "api"
	default:
		return "other"
	}
}
