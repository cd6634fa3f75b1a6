package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxPromptLength is the longest accepted prompt, in characters after trimming.
const MaxPromptLength = 1000

const (
	msgInvalidBody    = "Request body must be a JSON object."
	msgPromptRequired = "Prompt is required and must not be empty."
	msgPromptType     = "Prompt must be a string."
)

var msgPromptTooLong = fmt.Sprintf("Prompt must not exceed %d characters.", MaxPromptLength)

// ValidationError reports a request whose input broke one of the prompt rules.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidatePrompt checks the raw prompt value and returns it trimmed.
// Length is counted in code points of the NFC form, so a precomposed and a
// decomposed accent count the same.
func ValidatePrompt(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", &ValidationError{Message: msgPromptRequired}
	}

	var prompt string
	if err := json.Unmarshal(raw, &prompt); err != nil {
		return "", &ValidationError{Message: msgPromptType}
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", &ValidationError{Message: msgPromptRequired}
	}
	if utf8.RuneCountInString(norm.NFC.String(prompt)) > MaxPromptLength {
		return "", &ValidationError{Message: msgPromptTooLong}
	}
	return prompt, nil
}
