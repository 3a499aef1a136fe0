package ai

import (
	"context"
	"errors"
	"server/internal/logger"
	"strings"

	"google.golang.org/genai"
)

// ErrNoCandidates means the API answered successfully but returned no
// usable candidate. Callers treat this as an upstream failure, not a
// parse failure.
var ErrNoCandidates = errors.New("model returned no candidates")

// Client generates text for a prompt. The concrete implementation talks
// to Gemini; tests substitute a fake.
type Client interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type GeminiClient struct {
	client *genai.Client
	model  string
	log    logger.Logger
}

func NewGemini(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	log := logger.New("ai").Function("NewGemini")

	if apiKey == "" {
		return nil, log.ErrMsg("gemini api key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, log.Err("failed to create genai client", err)
	}

	return &GeminiClient{
		client: client,
		model:  model,
		log:    logger.New("ai"),
	}, nil
}

func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	log := c.log.Function("GenerateText")

	result, err := c.client.Models.GenerateContent(ctx,
		c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return "", log.Err("generation request failed", err, "model", c.model)
	}

	if len(result.Candidates) == 0 {
		return "", ErrNoCandidates
	}

	candidate := result.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", ErrNoCandidates
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		text.WriteString(part.Text)
	}

	if text.Len() == 0 {
		return "", ErrNoCandidates
	}

	return text.String(), nil
}
