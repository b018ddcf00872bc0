package marineaxis

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/tidwall/gjson"
)

// ErrorKind classifies a failed API call.
type ErrorKind string

const (
	// KindTransport means no usable response reached the client.
	KindTransport ErrorKind = "transport"
	// KindTimeout is a transport failure caused by the request deadline.
	KindTimeout ErrorKind = "timeout"
	// KindServer means the server answered with a failure envelope or a
	// non-2xx status.
	KindServer ErrorKind = "server"
)

// Error is the failure type returned by all client operations.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	cause      error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("marine-axis api: %s (%s, status %d)", e.Message, e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("marine-axis api: %s (%s)", e.Message, e.Kind)
}

func (e *Error) Unwrap() error { return e.cause }

// IsTimeout reports whether err is a request-deadline failure.
func IsTimeout(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindTimeout
}

// IsServer reports whether err is a server-reported failure.
func IsServer(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindServer
}

// UserMessage extracts a human-readable message for notification surfaces.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.Kind == KindTimeout {
			return "The request timed out. Please try again."
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
	}
	if err != nil {
		return err.Error()
	}
	return "unknown error"
}

// transportError classifies a round-trip failure.
func transportError(err error) *Error {
	kind := KindTransport
	msg := "request failed"

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind, msg = KindTimeout, "request timed out"
	case errors.As(err, &netErr) && netErr.Timeout():
		kind, msg = KindTimeout, "request timed out"
	}

	return &Error{Kind: kind, Message: msg, cause: err}
}

// serverError builds an Error from a response body. The admin API normally
// answers with the {success, message} envelope, but proxies and older
// endpoints return other shapes, so the message is extracted tolerantly.
func serverError(body []byte, statusCode int) *Error {
	msg := ""
	for _, path := range []string{"message", "error", "detail"} {
		if v := gjson.GetBytes(body, path); v.Exists() && v.String() != "" {
			msg = v.String()
			break
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", statusCode)
	}
	return &Error{Kind: KindServer, StatusCode: statusCode, Message: msg}
}
