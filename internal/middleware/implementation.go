package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/akolanti/ClaimAPI/internal/adapter/utils"
	"github.com/akolanti/ClaimAPI/internal/api"
	"github.com/akolanti/ClaimAPI/internal/config"
	"github.com/akolanti/ClaimAPI/internal/handlers"
	"github.com/akolanti/ClaimAPI/pkg/logger_i"
)

const traceHeader = "X-Trace-Id"

func injectTrace(re requestResponseStruct) requestResponseStruct {
	req := re.req
	if req == nil {
		//this is a bad request
		re.badRequest = failureStruct{
			isBadRequest: true,
			httpCode:     http.StatusBadRequest,
			errorType:    api.ErrorTypeRequestValidation,
			errorMessage: "request is empty",
		}
		return re
	}
	trace := req.Header.Get(traceHeader)
	if trace == "" {
		trace = utils.GetNewUUID()
	}
	re.logger = re.logger.With("traceId", trace)
	ctx := context.WithValue(req.Context(), config.TRACE_ID_KEY, trace)
	req.Header.Set(traceHeader, trace)
	re.writer.Header().Set(traceHeader, trace)
	re.req = req.WithContext(ctx)

	re.logger.Debug("trace middleware injected")
	return re
}

func (c *Chain) authenticate(re requestResponseStruct) requestResponseStruct {
	if c.authToken == "" {
		return re
	}
	if !IsValidBearerToken(re.req.Header.Get("Authorization"), c.authToken, re.logger) {
		re.badRequest = failureStruct{
			isBadRequest: true,
			httpCode:     http.StatusUnauthorized,
			errorType:    api.ErrorTypeUnauthorized,
			errorMessage: "missing or invalid bearer token",
		}
		return re
	}
	re.logger.Debug("Authorized")
	return re
}

func IsValidBearerToken(authHeader string, token string, log *logger_i.Logger) bool {
	if authHeader == "" {
		log.Warn("Empty authorization header")
		return false
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		log.Warn("No Bearer header")
		return false
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimPrefix(authHeader, "Bearer ")), []byte(token)) != 1 {
		log.Warn("Invalid authorization header")
		return false
	}
	return true
}

// handleBadRequest writes the rejection, if any, and reports whether the request may go on.
func handleBadRequest(re requestResponseStruct) bool {
	if re.badRequest.isBadRequest {
		trace := ""
		if re.req != nil {
			trace, _ = re.req.Context().Value(config.TRACE_ID_KEY).(string)
		}
		re.logger.Warn("Bad request", "httpCode", re.badRequest.httpCode, "errorMessage", re.badRequest.errorMessage)
		handlers.WriteErrorResponse(re.writer, re.badRequest.httpCode, re.badRequest.errorType, re.badRequest.errorMessage, trace)
		return false
	}
	return true
}
