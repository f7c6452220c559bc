package adapter

import (
	"time"

	"github.com/akolanti/ClaimAPI/internal/api"
	"github.com/akolanti/ClaimAPI/internal/config"
	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
)

func ToClaimResponse(outcome claimModel.ClaimOutcome) api.ClaimResponse {
	documents := outcome.Documents
	if documents == nil {
		documents = []string{}
	}
	return api.ClaimResponse{
		Documents:     documents,
		Validation:    ToValidationResponse(outcome.Report),
		ClaimDecision: ToDecisionResponse(outcome.Decision),
	}
}

func ToValidationResponse(report claimModel.ValidationReport) api.ValidationResponse {
	missing := make([]string, 0, len(report.MissingDocuments))
	for _, l := range report.MissingDocuments {
		missing = append(missing, string(l))
	}
	discrepancies := make([]api.DiscrepancyResponse, 0, len(report.Discrepancies))
	for _, d := range report.Discrepancies {
		discrepancies = append(discrepancies, api.DiscrepancyResponse{
			Severity: string(d.Severity),
			Message:  d.Message,
			Field:    d.Field,
			DocType:  string(d.DocType),
		})
	}
	return api.ValidationResponse{
		MissingDocuments:    missing,
		Discrepancies:       discrepancies,
		ValidationTimestamp: report.Timestamp.UTC().Format(time.RFC3339),
	}
}

func ToDecisionResponse(d claimModel.ClaimDecision) api.ClaimDecisionResponse {
	return api.ClaimDecisionResponse{
		Status:      string(d.Status),
		Reason:      d.Reason,
		Adjudicator: d.Adjudicator,
		Notes:       d.Notes,
		Explanation: d.Explanation,
	}
}

func ToErrorResponse(code int, errType api.ErrorType, message string, traceID string) api.ErrorResponse {
	return api.ErrorResponse{
		Error: api.ErrorDetail{
			Code:    code,
			Type:    errType,
			Message: message,
			Retry:   errType == api.ErrorTypeRateLimited || errType == api.ErrorTypeInternal,
		},
		TraceID: traceID,
	}
}

func ToHealthResponse(environment string) api.HealthResponse {
	return api.HealthResponse{
		Status:      "ok",
		Message:     "ClaimAPI is running",
		Environment: environment,
		Version:     config.ServiceVersion,
	}
}
