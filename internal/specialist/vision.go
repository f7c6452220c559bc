package specialist

import (
	"context"
	"strings"

	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
	"github.com/akolanti/ClaimAPI/internal/llm"
	"github.com/akolanti/ClaimAPI/internal/metrics"
)

// VisionReader transcribes scans that have no usable text layer.
type VisionReader struct {
	model Model
}

func NewVisionReader(model Model) *VisionReader {
	return &VisionReader{model: model}
}

func (v *VisionReader) ExtractViaVision(ctx context.Context, data []byte, mimeType string) (string, error) {
	const stage = "vision"
	metrics.CountVisionFallback()

	text, err := v.model.Vision(ctx, visionPrompt, data, mimeType)
	if err != nil {
		return "", claimModel.NewExtractionError(stage, llm.ReasonFor(err), err)
	}
	if strings.TrimSpace(text) == "" {
		return "", claimModel.NewExtractionError(stage, claimModel.FailureCapabilityError, claimModel.ErrEmptyDocument)
	}
	return text, nil
}
