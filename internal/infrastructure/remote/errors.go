package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// RequestError is the single error shape for non-2xx backend responses.
// Message comes from the backend JSON body when one is present, otherwise
// the generic fallback.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusNotFound
}

// errorMessage digs a human-readable message out of an error body.
// Accepts {"message": "..."}, {"error": "..."} and {"error": {"message": "..."}}.
func errorMessage(body []byte, status int) string {
	fallback := fmt.Sprintf("HTTP error! status: %d", status)
	if len(body) == 0 {
		return fallback
	}

	var envelope struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fallback
	}
	if envelope.Message != "" {
		return envelope.Message
	}

	if len(envelope.Error) > 0 {
		var s string
		if err := json.Unmarshal(envelope.Error, &s); err == nil && s != "" {
			return s
		}
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(envelope.Error, &nested); err == nil && nested.Message != "" {
			return nested.Message
		}
	}

	return fallback
}
