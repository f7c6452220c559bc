package customHttpClient

import (
	"net"
	"net/http"
	"time"

	"github.com/akolanti/ClaimAPI/internal/config"
)

// one pool for every model provider, documents of a claim hit the same hosts in bursts
var customTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	ForceAttemptHTTP2:   true,
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
	TLSHandshakeTimeout: 10 * time.Second,
}

// NewPooledClient shares the transport. A zero timeout leaves deadlines to the request context.
func NewPooledClient(timeout time.Duration) *http.Client {
	return &http.Client{Transport: customTransport, Timeout: timeout}
}
