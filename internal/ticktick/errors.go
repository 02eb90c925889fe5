package ticktick

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized indicates the access token was rejected
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound indicates the task or project does not exist
	ErrNotFound = errors.New("not found")
	// ErrRateLimited indicates the task store throttled the request
	ErrRateLimited = errors.New("rate limited")
)

// APIError is a non-2xx response from the task store
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ticktick API error %d: %s", e.StatusCode, e.Body)
}

// Unwrap maps well-known status codes to sentinel errors so callers can
// use errors.Is without inspecting status codes.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}
	return nil
}
