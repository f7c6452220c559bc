package specialist

import (
	"context"

	"github.com/akolanti/ClaimAPI/internal/config"
	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
	"github.com/akolanti/ClaimAPI/internal/llm"
	"github.com/akolanti/ClaimAPI/pkg/logger_i"
)

type Classifier struct {
	model  Model
	logger *logger_i.Logger
}

func NewClassifier(model Model) *Classifier {
	return &Classifier{model: model, logger: logger_i.NewLogger("Classifier")}
}

type classificationOutput struct {
	DocumentType string  `json:"document_type"`
	Confidence   float64 `json:"confidence"`
	Reasoning    string  `json:"reasoning"`
}

// Classify makes one call. On error the returned classification is other, so callers
// that only log the error still have a usable label.
func (c *Classifier) Classify(ctx context.Context, filename string, text string) (claimModel.Classification, error) {
	var out classificationOutput
	err := generate(ctx, c.model, "classify", llm.Request{
		System: classificationPrompt,
		User:   userPrompt(filename, truncate(text, config.ClassificationTextLimit)),
		Schema: classificationSchema(),
	}, &out)
	if err != nil {
		return claimModel.Classification{Label: claimModel.LabelOther}, err
	}

	result := claimModel.Classification{
		Label:      claimModel.ParseLabel(out.DocumentType),
		Confidence: clamp(out.Confidence),
		Reasoning:  out.Reasoning,
	}
	c.logger.FromContext(ctx).Info("document classified",
		"file", filename, "label", result.Label, "confidence", result.Confidence, "reasoning", result.Reasoning)
	return result, nil
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
