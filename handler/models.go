package handler

import "encoding/json"

// RequestPayload represents the expected JSON structure in the request body.
// Prompt is kept raw so its type can be checked during validation.
type RequestPayload struct {
	Prompt json.RawMessage `json:"prompt"`
}

// GenerateResponse is returned on success.
type GenerateResponse struct {
	Content string `json:"content"`
}

// ErrorResponse is the body of every error answer.
type ErrorResponse struct {
	Error string `json:"error"`
}
