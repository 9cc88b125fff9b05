// Package advisor produces natural-language recommendations about a record
// set through a remote text-generation model.
package advisor

import (
	"context"
	"errors"
	"strings"
)

// FailureMarker prefixes every advisory result that reports a failure
// instead of generated content.
const FailureMarker = "Error"

// ErrMissingCredentials is returned when the API key, URL or project ID is
// not configured. Callers treat it as fatal at startup.
var ErrMissingCredentials = errors.New("missing IBM Granite credentials: set IBM_GRANITE_API_KEY, IBM_GRANITE_URL and IBM_GRANITE_PROJECT_ID")

// Generator turns a prompt into generated text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// IsFailure reports whether an advisory result is a failure message.
func IsFailure(s string) bool {
	return strings.HasPrefix(s, FailureMarker)
}
