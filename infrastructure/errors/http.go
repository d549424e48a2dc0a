// Package errors holds error types shared by upstream HTTP clients.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MinErrorStatusCode is the lowest status treated as a failure.
const MinErrorStatusCode = 400

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// HTTPError is a non-2xx upstream response.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP error (%d %s): %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("HTTP error: %d %s", e.StatusCode, e.Status)
}

// ParseHTTPError returns nil for successful responses and an *HTTPError
// otherwise. The body is consumed but not closed.
func ParseHTTPError(resp *http.Response) error {
	if resp.StatusCode < MinErrorStatusCode {
		return nil
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    fmt.Sprintf("failed to read error response body: %v", err),
		}
	}

	body := string(bodyBytes)
	httpErr := &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, Body: body, Message: body}

	var jsonErr struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(bodyBytes, &jsonErr) == nil {
		switch {
		case jsonErr.Error != "":
			httpErr.Message = jsonErr.Error
		case jsonErr.Message != "":
			httpErr.Message = jsonErr.Message
		}
	}

	return httpErr
}

// StatusCode extracts the status of an *HTTPError anywhere in err's chain.
func StatusCode(err error) (int, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode, true
	}
	return 0, false
}
