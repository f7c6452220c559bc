// Package specialist holds the model backed capabilities of the pipeline: the
// classifier, one field extractor per document type and the vision reader.
package specialist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
	"github.com/akolanti/ClaimAPI/internal/llm"
)

// Model is the part of llm.Router the specialists call.
type Model interface {
	GenerateJSON(ctx context.Context, req llm.Request) (string, error)
	Vision(ctx context.Context, prompt string, data []byte, mimeType string) (string, error)
}

var errNotAnObject = errors.New("model output is not a json object")

// generate runs one structured call and decodes the answer into out.
func generate(ctx context.Context, model Model, stage string, req llm.Request, out any) error {
	raw, err := model.GenerateJSON(ctx, req)
	if err != nil {
		return claimModel.NewExtractionError(stage, llm.ReasonFor(err), err)
	}
	if err := decodeJSON(raw, out); err != nil {
		return claimModel.NewExtractionError(stage, claimModel.FailureSchemaViolation, err)
	}
	return nil
}

func decodeJSON(raw string, out any) error {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "{") {
		return errNotAnObject
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("decode model output: %w", err)
	}
	return nil
}
