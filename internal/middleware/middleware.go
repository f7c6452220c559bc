package middleware

import (
	"net/http"
	"strconv"

	"github.com/akolanti/ClaimAPI/internal/api"
	"github.com/akolanti/ClaimAPI/internal/metrics"
	"github.com/akolanti/ClaimAPI/internal/ratelimit"
	"github.com/akolanti/ClaimAPI/pkg/logger_i"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorType    api.ErrorType
	errorMessage string
}

// Chain runs trace injection, bearer auth and the claim rate limit in front of a handler.
type Chain struct {
	limiter   *ratelimit.Limiter
	authToken string
}

// NewChain with an empty authToken disables auth; a nil limiter admits everything.
func NewChain(limiter *ratelimit.Limiter, authToken string) *Chain {
	return &Chain{limiter: limiter, authToken: authToken}
}

// Wrap guards a claim endpoint.
func (c *Chain) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return c.wrap(next, true)
}

// WrapOpen only traces and counts, used for health.
func (c *Chain) WrapOpen(next http.HandlerFunc) http.HandlerFunc {
	return c.wrap(next, false)
}

func (c *Chain) wrap(next http.HandlerFunc, guarded bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: 200} //metrics
		re := c.processRequest(requestResponseStruct{req: r, writer: rec}, guarded)

		if handleBadRequest(re) {
			next(rec, re.req)
		}

		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc() //metrics
	}
}

func (c *Chain) processRequest(re requestResponseStruct, guarded bool) requestResponseStruct {
	re.logger = logger_i.NewLogger("middleware")
	re = injectTrace(re)
	if re.badRequest.isBadRequest || !guarded {
		return re
	}
	re.logger.Info("New request received", "path", re.req.URL.Path)

	re = c.authenticate(re)
	if re.badRequest.isBadRequest {
		return re //stop if auth fails
	}
	return c.rateLimit(re)
}
