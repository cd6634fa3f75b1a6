package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// statusWriter remembers the status code and whether anything was written yet.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	if sw, ok := w.(*statusWriter); ok {
		return sw
	}
	return &statusWriter{ResponseWriter: w, status: http.StatusOK}
}

func (w *statusWriter) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.status = code
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// LogRequests is a router middleware writing one log line per request.
func LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := newStatusWriter(w)
		next.ServeHTTP(sw, r)
		logRequest(r, sw.status, time.Since(start))
	})
}

func logRequest(req *http.Request, status int, elapsed time.Duration) {
	entry := log.WithFields(logrus.Fields{
		"status":   status,
		"duration": elapsed.Round(time.Millisecond),
	})
	if status >= http.StatusInternalServerError {
		entry.Warnf("%s -- %s -- %s", req.RemoteAddr, req.Method, req.URL.Path)
		return
	}
	entry.Infof("%s -- %s -- %s", req.RemoteAddr, req.Method, req.URL.Path)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

// logAndReturnError logs consoleStr (or the public message when absent) and answers
// with a JSON error body carrying only httpResponseStr.
func logAndReturnError(w http.ResponseWriter, r *http.Request, httpResponseStr string, code int, consoleStr ...string) {
	msg := httpResponseStr
	if len(consoleStr) > 0 {
		msg = consoleStr[0]
	}
	entry := log.WithField("path", r.URL.Path)
	if code >= http.StatusInternalServerError {
		entry.Errorln(msg)
	} else {
		entry.Warnln(msg)
	}
	writeJSON(w, code, ErrorResponse{Error: httpResponseStr})
}
