package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/akolanti/ClaimAPI/internal/config"
	"github.com/akolanti/ClaimAPI/internal/customHttpClient"
	"github.com/akolanti/ClaimAPI/internal/llm"
	"github.com/akolanti/ClaimAPI/pkg/logger_i"
	"google.golang.org/genai"
)

var errEmptyResponse = errors.New("gemini returned an empty response")

type llmClient struct {
	client    *genai.Client
	modelName string
	logger    *logger_i.Logger
}

// NewGeminiClient returns nil when no key is configured or the client cannot be built,
// the router then falls through to the next provider.
func NewGeminiClient(ctx context.Context, apiKey string, modelName string) llm.Provider {
	logger := logger_i.NewLogger("llm_gemini")
	if apiKey == "" {
		logger.Info("Gemini api key not set, provider disabled")
		return nil
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: customHttpClient.NewPooledClient(0),
	})
	if err != nil {
		logger.Error("Error creating Gemini client", "error", err)
		return nil
	}
	logger.Info("Gemini client created", "model", modelName)
	return &llmClient{client: c, modelName: modelName, logger: logger}
}

func (c *llmClient) Name() string {
	return config.LLMProviderGemini
}

func (c *llmClient) GenerateJSON(ctx context.Context, req llm.Request) (string, error) {
	contentConfig := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: req.System},
			},
		},
		Temperature:      genai.Ptr(config.ModelTemperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
	}

	result, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(req.User), contentConfig)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return textOf(result)
}

func (c *llmClient) Vision(ctx context.Context, prompt string, data []byte, mimeType string) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(data, mimeType),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	result, err := c.client.Models.GenerateContent(ctx, c.modelName, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(config.ModelTemperature),
	})
	if err != nil {
		return "", fmt.Errorf("gemini vision: %w", err)
	}
	return textOf(result)
}

func textOf(result *genai.GenerateContentResponse) (string, error) {
	if result == nil {
		return "", errEmptyResponse
	}
	text := result.Text()
	if text == "" {
		return "", errEmptyResponse
	}
	return text, nil
}
