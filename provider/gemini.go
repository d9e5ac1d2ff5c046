package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/goliatone/go-reading-cache/library"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// Config configures the Gemini generator.
type Config struct {
	APIKey string
	Model  string

	// SystemInstruction replaces DefaultSystemInstruction when set.
	SystemInstruction string

	// BaseURL overrides the Gemini API endpoint.
	BaseURL string

	// HTTPClient overrides the client used for API calls.
	HTTPClient *http.Client

	Logger logrus.FieldLogger
}

// Gemini generates content through the Gemini API.
type Gemini struct {
	client     *genai.Client
	model      string
	system     string
	logger logrus.FieldLogger
}

// NewGemini creates a Gemini generator. It returns ErrConfigurationMissing
// when cfg has no API key.
func NewGemini(ctx context.Context, cfg Config) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, ErrConfigurationMissing
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	system := cfg.SystemInstruction
	if system == "" {
		system = DefaultSystemInstruction
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Gemini{
		client: client,
		model:  model,
		system: system,
		logger: logger,
	}, nil
}

// Model returns the model name requests are sent to.
func (g *Gemini) Model() string {
	return g.model
}

// Generate sends req and returns the response text.
func (g *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	system := g.system
	if req.SystemInstruction != "" {
		system = system + "\n" + req.SystemInstruction
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}
	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = req.Schema
	}

	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, msg := range req.History {
		role := genai.RoleUser
		if msg.Role == library.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: msg.Content}},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: req.Prompt}},
	})

	log := g.logger.WithFields(logrus.Fields{"op": req.Op, "model": g.model})
	log.Debug("[GEMINI] generating content")

	// One request per call; retrying is left to the caller.
	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			log = log.WithField("status", apiErr.Code)
		}
		log.WithError(err).Error("[GEMINI] generation failed")
		return "", err
	}

	return result.Text(), nil
}
