package handlers

import (
	"net/http"

	"github.com/akolanti/ClaimAPI/internal/adapter"
	"github.com/akolanti/ClaimAPI/internal/adapter/utils"
	"github.com/akolanti/ClaimAPI/internal/pipeline"
	"github.com/akolanti/ClaimAPI/pkg/logger_i"
)

var logRH = logger_i.NewLogger("RequestHandler")

type ClaimHandler struct {
	pipeline pipeline.Service
	limits   Limits
}

func NewClaimHandler(svc pipeline.Service, limits Limits) *ClaimHandler {
	return &ClaimHandler{pipeline: svc, limits: limits.withDefaults()}
}

// ProcessClaim godoc
// @Summary      Adjudicate a claim
// @Description  Accepts the documents of one claim, extracts and cross-checks their facts and returns the decision.
// @Tags         Claims
// @Accept       multipart/form-data
// @Produce      json
// @Param        files  formData  file  true  "Claim documents (.pdf, .doc, .docx, .txt), 1 to 3 files of at most 5MB"
// @Success      200  {object}  api.ClaimResponse  "Claim decision"
// @Failure      400  {object}  api.ErrorResponse  "Missing files or too many files"
// @Failure      401  {object}  api.ErrorResponse  "Missing or invalid bearer token"
// @Failure      413  {object}  api.ErrorResponse  "File too large"
// @Failure      415  {object}  api.ErrorResponse  "Unsupported file type"
// @Failure      429  {object}  api.ErrorResponse  "Rate limit exceeded"
// @Security     BearerAuth
// @Router       /api/v1/claim/process-claim [post]
func (h *ClaimHandler) ProcessClaim(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request", "remote", r.RemoteAddr)
		return
	}
	traceID := traceOf(r.Context())
	log := logRH.FromContext(r.Context())

	claim, reqErr := readSubmission(w, r, h.limits)
	if reqErr != nil {
		log.Warn("Bad claim request", "code", reqErr.Code, "error", reqErr.Message)
		WriteErrorResponse(w, reqErr.Code, reqErr.Type, reqErr.Message, traceID)
		return
	}
	claim.ClaimID = utils.NewClaimID()
	claim.ClientKey = utils.ClientIP(r)
	claim.TraceID = traceID
	log.Info("Claim accepted", "claimId", claim.ClaimID, "files", claim.Filenames())

	outcome := h.pipeline.Process(r.Context(), claim)
	writeJsonResponse(w, http.StatusOK, adapter.ToClaimResponse(outcome))
}

// HealthHandler godoc
// @Summary      Health check
// @Description  Reports that the service is up. Never rate limited.
// @Tags         Health
// @Produce      json
// @Success      200  {object}  api.HealthResponse
// @Router       / [get]
func HealthHandler(environment string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJsonResponse(w, http.StatusOK, adapter.ToHealthResponse(environment))
	}
}
