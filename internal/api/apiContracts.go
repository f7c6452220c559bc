package api

type ErrorType string

const (
	ErrorTypeRequestValidation ErrorType = "request_validation_error"
	ErrorTypeRateLimited       ErrorType = "rate_limited"
	ErrorTypeUnauthorized      ErrorType = "unauthorized"
	ErrorTypeInternal          ErrorType = "internal_error"
)

type ClaimResponse struct {
	Documents     []string              `json:"documents" example:"bill.pdf,discharge.pdf,id_card.pdf"`
	Validation    ValidationResponse    `json:"validation"`
	ClaimDecision ClaimDecisionResponse `json:"claim_decision"`
}

type ValidationResponse struct {
	MissingDocuments    []string              `json:"missing_documents" example:"discharge_summary"`
	Discrepancies       []DiscrepancyResponse `json:"discrepancies"`
	ValidationTimestamp string                `json:"validation_timestamp" example:"2024-06-01T12:00:00Z"`
}

type DiscrepancyResponse struct {
	Severity string `json:"severity" example:"critical"`
	Message  string `json:"message" example:"patient name \"Jane Smith\" on bill does not match \"Janet Smythe\" on id_card (similarity 0.75)"`
	Field    string `json:"field" example:"patient_name"`
	DocType  string `json:"doc_type" example:"bill"`
}

type ClaimDecisionResponse struct {
	Status      string  `json:"status" example:"manual_review"`
	Reason      string  `json:"reason"`
	Adjudicator string  `json:"adjudicator" example:"ClaimAPI Adjudication Engine"`
	Notes       *string `json:"notes"`
	Explanation *string `json:"explanation"`
}

type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"trace_id" example:"5f0c7c1e-3b4b-4e43-9b8e-2d7f0f6d2a10"`
}

type ErrorDetail struct {
	Code    int       `json:"code" example:"400"`
	Type    ErrorType `json:"type" example:"request_validation_error"`
	Message string    `json:"message" example:"at most 3 files per claim"`
	Retry   bool      `json:"can_retry" example:"false"`
}

type HealthResponse struct {
	Status      string `json:"status" example:"ok"`
	Message     string `json:"message" example:"ClaimAPI is running"`
	Environment string `json:"environment" example:"development"`
	Version     string `json:"version" example:"1.0.0"`
}
