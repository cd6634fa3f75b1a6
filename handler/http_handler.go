package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"gemini-relay/backend"
)

const maxRequestBody = 64 << 10

// HTTPHandler serves the generate endpoint. It keeps no per-request state.
type HTTPHandler struct {
	generator Generator
}

// NewHTTPHandler creates a new instance of HTTPHandler
func NewHTTPHandler(g Generator) *HTTPHandler {
	return &HTTPHandler{generator: g}
}

// Generate validates the prompt, forwards it and writes {"content": ...}.
// Validation failures are answered here. Any Generator failure is returned to the
// error stage as an *backend.UpstreamError.
func (h *HTTPHandler) Generate(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()

	var payload RequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logAndReturnError(w, r, msgInvalidBody, http.StatusBadRequest, fmt.Sprintf("Bad request body: %v", err))
		return nil
	}

	prompt, err := ValidatePrompt(payload.Prompt)
	if err != nil {
		logAndReturnError(w, r, err.Error(), http.StatusBadRequest)
		return nil
	}

	log.Debugf("Forwarding prompt of %d bytes", len(prompt))
	content, err := h.generator.Generate(r.Context(), prompt)
	if err != nil {
		var upstreamErr *backend.UpstreamError
		if !errors.As(err, &upstreamErr) {
			err = &backend.UpstreamError{Cause: err}
		}
		return fmt.Errorf("generate content: %w", err)
	}

	writeJSON(w, http.StatusOK, GenerateResponse{Content: content})
	return nil
}
