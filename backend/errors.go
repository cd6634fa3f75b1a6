package backend

import (
	"fmt"
)

// UpstreamError means the Gemini call failed: the request never completed, the API
// answered with a non-2xx status, or its body could not be decoded.
type UpstreamError struct {
	// StatusCode is zero when no response was received.
	StatusCode int
	// Body holds the start of a non-2xx response body, for logging.
	Body  string
	Cause error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Cause != nil:
		return fmt.Sprintf("gemini upstream status %d: %v", e.StatusCode, e.Cause)
	case e.StatusCode != 0:
		return fmt.Sprintf("gemini upstream returned status %d: %s", e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("gemini upstream unreachable: %v", e.Cause)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}
