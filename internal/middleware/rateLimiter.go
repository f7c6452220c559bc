package middleware

import (
	"net/http"

	"github.com/akolanti/ClaimAPI/internal/adapter/utils"
	"github.com/akolanti/ClaimAPI/internal/api"
	"github.com/akolanti/ClaimAPI/internal/ratelimit"
)

// rateLimit runs before the body is read, so a denied client costs one counter increment.
func (c *Chain) rateLimit(re requestResponseStruct) requestResponseStruct {
	if c.limiter == nil {
		return re
	}
	client := utils.ClientIP(re.req)
	verdict, err := c.limiter.Admit(re.req.Context(), client)
	if err != nil {
		re.logger.Warn("Rate limit store unavailable", "client", client, "verdict", verdict, "error", err)
	}
	if verdict == ratelimit.Deny {
		re.badRequest = failureStruct{
			isBadRequest: true,
			httpCode:     http.StatusTooManyRequests,
			errorType:    api.ErrorTypeRateLimited,
			errorMessage: "rate limit exceeded, try again later",
		}
		return re
	}
	re.logger.Debug("Rate limiter middleware authorized", "client", client)
	return re
}
