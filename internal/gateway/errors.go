package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// TransportFailureMessage is the Message of a RequestError raised when no
// response was received.
const TransportFailureMessage = "network error: backend unreachable"

// RequestError is returned for every non-2xx response and every transport
// failure. Status is 0 when no response arrived.
type RequestError struct {
	Status  int
	Message string
	// Payload is the raw response body, if any.
	Payload []byte
	Err     error
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		return e.Message
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

func (e *RequestError) Unwrap() error { return e.Err }

func (e *RequestError) Unauthorized() bool { return e.Status == http.StatusUnauthorized }

func (e *RequestError) Transport() bool { return e.Status == 0 }

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Status
	}
	return 0
}

func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

func transportError(err error) *RequestError {
	return &RequestError{Message: TransportFailureMessage, Err: err}
}

func responseError(status int, body []byte) *RequestError {
	re := &RequestError{Status: status, Message: messageFrom(body)}
	if re.Message == "" {
		re.Message = http.StatusText(status)
	}
	if len(body) > 0 {
		re.Payload = body
	}
	return re
}

// messageFrom pulls a human-readable message out of an error body. The
// backend answers with either JSON ({"message": ...} / {"error": ...} / "...")
// or plain text.
func messageFrom(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	switch trimmed[0] {
	case '{':
		var obj struct {
			Message *string `json:"message"`
			Error   *string `json:"error"`
		}
		if err := json.Unmarshal(trimmed, &obj); err == nil {
			if obj.Message != nil && *obj.Message != "" {
				return *obj.Message
			}
			if obj.Error != nil && *obj.Error != "" {
				return *obj.Error
			}
			return ""
		}
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return strings.TrimSpace(string(trimmed))
}
