package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/akolanti/ClaimAPI/internal/adapter"
	"github.com/akolanti/ClaimAPI/internal/api"
	"github.com/akolanti/ClaimAPI/internal/config"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response", "error", err)
	}
}

func validateContext(ctx context.Context) bool {
	if ctx.Err() != nil {
		logRH.FromContext(ctx).Warn("context error", "error", ctx.Err())
		return false
	}
	return true
}

func traceOf(ctx context.Context) string {
	trace, _ := ctx.Value(config.TRACE_ID_KEY).(string)
	return trace
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, errType api.ErrorType, message string, traceID string) {
	writeJsonResponse(w, httpCode, adapter.ToErrorResponse(httpCode, errType, message, traceID))
}
