// SPDX-License-Identifier: Apache-2.0
package analysis

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrCanceled is returned when a submission was aborted by a newer one
var ErrCanceled = errors.New("analysis request canceled")

// TransportError wraps a failure to reach the service
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to reach analysis service at %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError is a non-2xx reply
type ServerError struct {
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		return fmt.Sprintf("analysis service returned %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("analysis service returned %d %s: %s", e.Status, http.StatusText(e.Status), body)
}

// MalformedResponseError means the body could not be decoded at all
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("analysis service sent an unreadable response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// UserMessage converts any submission error into the text shown to the user
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var transportErr *TransportError
	var serverErr *ServerError
	var malformedErr *MalformedResponseError

	switch {
	case errors.Is(err, ErrCanceled), errors.Is(err, context.Canceled):
		return "Analysis canceled."
	case errors.Is(err, context.DeadlineExceeded):
		return "Analysis timed out. Press enter to retry."
	case errors.As(err, &serverErr):
		return fmt.Sprintf("Backend Error: HTTP %d %s. Press enter to retry.", serverErr.Status, http.StatusText(serverErr.Status))
	case errors.As(err, &transportErr):
		return fmt.Sprintf("Backend Error: %v. Ensure the analysis service is running at %s.", transportErr.Err, transportErr.URL)
	case errors.As(err, &malformedErr):
		return "Backend Error: the analysis service sent a response that could not be read."
	default:
		return "Backend Error: " + err.Error()
	}
}
