// Package handler holds the HTTP side of the relay: prompt validation, the
// generate endpoint and the error stage every route reports failures to.
package handler

import (
	"context"

	"github.com/sirupsen/logrus"

	"gemini-relay/logging"
)

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}

// Generator produces content for a validated prompt. *backend.Client implements it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
