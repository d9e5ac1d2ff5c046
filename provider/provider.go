package provider

import (
	"context"
	"errors"

	"github.com/goliatone/go-reading-cache/library"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-3-flash-preview"

// DefaultSystemInstruction sets the persona every request starts from.
const DefaultSystemInstruction = `Du bist ein gebildeter, eloquenter und freundlicher Literaturwissenschaftler und Philosoph.
Du sprichst ausschließlich Deutsch. Dein Stil ist anspruchsvoll, aber verständlich. Du duzt dein Gegenüber stets freundlich und respektvoll.
Du liebst es, die tiefere Bedeutung, Symbolik und philosophischen Hintergründe zu diskutieren.`

// ErrConfigurationMissing is returned by every generation attempt when no API
// key is configured.
var ErrConfigurationMissing = errors.New("provider: API key not configured")

// Request is one generation call.
type Request struct {
	// Op names the calling operation in logs and metrics.
	Op string

	// Prompt is the user turn sent to the model.
	Prompt string

	// SystemInstruction is appended to the base instruction for this request.
	SystemInstruction string

	// Schema constrains the response to JSON of this shape. Nil asks for
	// plain text.
	Schema *genai.Schema

	// History holds earlier chat turns, oldest first.
	History []library.ChatMessage
}

// Generator produces text for a Request. Implementations must be safe for
// concurrent use.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Unconfigured is the Generator used without credentials. Every call fails
// with ErrConfigurationMissing.
type Unconfigured struct{}

func (Unconfigured) Generate(context.Context, Request) (string, error) {
	return "", ErrConfigurationMissing
}

// New returns a Gemini generator for cfg, or Unconfigured when cfg carries no
// API key.
func New(ctx context.Context, cfg Config) (Generator, error) {
	if cfg.APIKey == "" {
		return Unconfigured{}, nil
	}
	return NewGemini(ctx, cfg)
}
