// Package llm routes structured generation and vision calls to the configured model providers.
package llm

import (
	"context"

	"google.golang.org/genai"
)

// Request is one structured generation call. Schema describes the JSON object the
// model has to return; providers without native schema support get it in the prompt.
type Request struct {
	System string
	User   string
	Schema *genai.Schema
}

type Provider interface {
	Name() string
	GenerateJSON(ctx context.Context, req Request) (string, error)
	// Vision reads a document image or pdf. Providers without vision return
	// claimModel.ErrUnsupportedVision.
	Vision(ctx context.Context, prompt string, data []byte, mimeType string) (string, error)
}
