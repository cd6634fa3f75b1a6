package handler

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"gemini-relay/backend"
)

const (
	MsgUpstreamFailure  = "Failed to fetch content from Gemini"
	MsgInternalError    = "Internal server error"
	MsgNotFound         = "Not found"
	MsgMethodNotAllowed = "Method not allowed"
)

// HandlerFunc is a request handler that returns its failures instead of writing them.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ErrorStage turns failures from any route into a uniform JSON answer. One instance
// is built at startup and every route is registered through it.
type ErrorStage struct{}

func NewErrorStage() *ErrorStage {
	return &ErrorStage{}
}

// Wrap adapts fn to http.Handler, sending any returned error to the stage.
func (s *ErrorStage) Wrap(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := newStatusWriter(w)
		if err := fn(sw, r); err != nil {
			s.handle(sw, r, err)
		}
	})
}

// handle writes the error response for err. Upstream and unexpected failures are
// logged in full but answered with a fixed message.
func (s *ErrorStage) handle(w *statusWriter, r *http.Request, err error) {
	if w.wroteHeader {
		log.Errorf("Error after response was started for %s %s: %v", r.Method, r.URL.Path, err)
		return
	}

	var validationErr *ValidationError
	var upstreamErr *backend.UpstreamError
	switch {
	case errors.As(err, &validationErr):
		logAndReturnError(w, r, validationErr.Message, http.StatusBadRequest)
	case errors.As(err, &upstreamErr):
		logAndReturnError(w, r, MsgUpstreamFailure, http.StatusInternalServerError,
			fmt.Sprintf("Gemini request failed: %v", err))
	default:
		logAndReturnError(w, r, MsgInternalError, http.StatusInternalServerError,
			fmt.Sprintf("Unexpected error: %v", err))
	}
}

// Recover is a router middleware that converts panics into unexpected errors.
func (s *ErrorStage) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := newStatusWriter(w)
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Debugf("%s", debug.Stack())
				s.handle(sw, r, fmt.Errorf("panic: %v", rec))
			}
		}()
		next.ServeHTTP(sw, r)
	})
}

// NotFound answers requests that matched no route.
func (s *ErrorStage) NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logAndReturnError(w, r, MsgNotFound, http.StatusNotFound)
	})
}

// MethodNotAllowed answers requests whose path matched but method did not.
func (s *ErrorStage) MethodNotAllowed() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logAndReturnError(w, r, MsgMethodNotAllowed, http.StatusMethodNotAllowed)
	})
}
