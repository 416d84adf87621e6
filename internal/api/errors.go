package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated means no credential was present; no call was made.
	// The caller should prompt for sign-in.
	ErrUnauthenticated = errors.New("not signed in")

	// ErrSessionExpired means the server rejected the credential with a 401.
	// The token has already been cleared and the redirect trigger fired.
	ErrSessionExpired = errors.New("session expired")

	// ErrProtocol means a success response was not the JSON the API contract
	// promises. It is always surfaced, never defaulted away.
	ErrProtocol = errors.New("unexpected non-JSON response")
)

// RequestError is a non-2xx response other than 401: transport succeeded,
// the server said no. Callers map status codes to policy (422 validation
// passthrough, 5xx retry-later); the client itself never retries.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("request failed (status %d): %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("request failed (status %d)", e.StatusCode)
}

// Message extracts the server's human-readable error from the body, if the
// body carries one under the conventional keys.
func (e *RequestError) Message() string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(e.Body), &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}

// Temporary reports whether a retry later might help (server-side failure).
func (e *RequestError) Temporary() bool {
	return e.StatusCode >= 500
}

// IsValidation reports whether the server rejected the payload contents.
func (e *RequestError) IsValidation() bool {
	return e.StatusCode == 422
}
