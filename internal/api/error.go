package api

import (
	"encoding/json"
	"io"
	"net/http"
)

// Error is an application-level failure reported by the backend. Message
// carries the server's own wording when it sent one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// SessionExpired reports whether the backend rejected the cached
// credentials. The cached token is deliberately not cleared on this class
// of error; that decision stays with the caller.
func (e *Error) SessionExpired() bool {
	return e.Status == http.StatusUnauthorized
}

// decodeError turns a non-2xx response into an *Error. The server's
// "message" field is surfaced verbatim when it is a string and serialized
// otherwise; "error" is the fallback field; anything else gets a generic
// message so no failure is silently dropped.
func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode, Message: "request failed: " + resp.Status}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}

	var payload struct {
		Message json.RawMessage `json:"message"`
		Err     json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}

	if msg := flatten(payload.Message); msg != "" {
		apiErr.Message = msg
	} else if msg := flatten(payload.Err); msg != "" {
		apiErr.Message = msg
	}
	return apiErr
}

// flatten renders a raw JSON value as display text: strings verbatim,
// anything else in serialized form.
func flatten(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
