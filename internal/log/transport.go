package log

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Transport is an http.RoundTripper that tags each outgoing request with a
// request ID and logs the exchange. It is the client-side counterpart of
// request logging middleware on a server.
type Transport struct {
	Base   http.RoundTripper
	Logger *Logger
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	requestID := uuid.NewString()
	// RoundTrippers must not mutate the caller's request.
	req = req.Clone(req.Context())
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := base.RoundTrip(req)
	duration := time.Since(start).Milliseconds()

	if t.Logger != nil {
		if err != nil {
			t.Logger.Error("Request failed",
				FieldRequestID, requestID,
				FieldMethod, req.Method,
				FieldURL, req.URL.Path,
				FieldDuration, duration,
				FieldError, err.Error())
		} else {
			t.Logger.Debug("Request completed",
				FieldRequestID, requestID,
				FieldMethod, req.Method,
				FieldURL, req.URL.Path,
				FieldStatus, resp.StatusCode,
				FieldDuration, duration)
		}
	}
	return resp, err
}
