package claimModel

import "context"

type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte, mimeType string) (string, error)
}

type VisionExtractor interface {
	ExtractViaVision(ctx context.Context, data []byte, mimeType string) (string, error)
}

type Classification struct {
	Label      Label
	Confidence float64
	Reasoning  string
}

type Classifier interface {
	Classify(ctx context.Context, filename string, text string) (Classification, error)
}

// FieldExtractor turns document text into the record variant for label.
type FieldExtractor interface {
	Extract(ctx context.Context, label Label, text string) (ExtractedRecord, error)
}
