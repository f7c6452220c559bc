package openaiLLM

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/akolanti/ClaimAPI/internal/config"
	"github.com/akolanti/ClaimAPI/internal/customHttpClient"
	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
	"github.com/akolanti/ClaimAPI/internal/llm"
	"github.com/akolanti/ClaimAPI/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var errEmptyResponse = errors.New("openai returned no choices")

type llmClient struct {
	client    openai.Client
	modelName string
}

// NewOpenAIClient returns nil when no key is configured. baseURL may point at any
// OpenAI compatible endpoint.
func NewOpenAIClient(apiKey string, modelName string, baseURL string) llm.Provider {
	logger := logger_i.NewLogger("llm_openai")
	if apiKey == "" {
		logger.Info("OpenAI api key not set, provider disabled")
		return nil
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(customHttpClient.NewPooledClient(0)),
		option.WithRequestTimeout(config.LLMCallTimeout),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	logger.Info("OpenAI client created", "model", modelName)
	return &llmClient{client: openai.NewClient(opts...), modelName: modelName}
}

func (c *llmClient) Name() string {
	return config.LLMProviderOpenAI
}

// GenerateJSON uses json_object mode, the schema travels in the system prompt.
func (c *llmClient) GenerateJSON(ctx context.Context, req llm.Request) (string, error) {
	system := req.System
	if req.Schema != nil {
		schema, err := json.Marshal(req.Schema)
		if err != nil {
			return "", fmt.Errorf("encode schema: %w", err)
		}
		system = fmt.Sprintf("%s\n\nRespond with a single JSON object matching this schema:\n%s", system, schema)
	}

	res, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(req.User),
		},
		Model:       c.modelName,
		Temperature: openai.Float(float64(config.ModelTemperature)),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(res.Choices) == 0 || res.Choices[0].Message.Content == "" {
		return "", errEmptyResponse
	}
	return res.Choices[0].Message.Content, nil
}

func (c *llmClient) Vision(ctx context.Context, prompt string, data []byte, mimeType string) (string, error) {
	return "", claimModel.ErrUnsupportedVision
}
