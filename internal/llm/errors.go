package llm

import (
	"context"
	"errors"
	"net/http"

	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
	"github.com/openai/openai-go"
	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ReasonFor maps a provider error onto the failure reason reported for the document.
func ReasonFor(err error) claimModel.FailureReason {
	if err == nil {
		return ""
	}
	var extractionErr *claimModel.ExtractionError
	if errors.As(err, &extractionErr) {
		return extractionErr.Reason
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return claimModel.FailureCapabilityTimeout
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return reasonForStatus(apiErr.Code)
	}
	var openaiErr *openai.Error
	if errors.As(err, &openaiErr) {
		return reasonForStatus(openaiErr.StatusCode)
	}
	if st, ok := status.FromError(err); ok && st.Code() == codes.DeadlineExceeded {
		return claimModel.FailureCapabilityTimeout
	}
	return claimModel.FailureCapabilityError
}

func reasonForStatus(code int) claimModel.FailureReason {
	switch code {
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return claimModel.FailureCapabilityTimeout
	default:
		return claimModel.FailureCapabilityError
	}
}
