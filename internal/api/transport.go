package api

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/proxy"
)

// DefaultTimeout bounds a whole request including reading the body.
const DefaultTimeout = 30 * time.Second

// NewHTTPClient creates the HTTP client used for API calls.
// When socksProxy is not empty all traffic is routed through that SOCKS5
// proxy ("host:port"), for example a local Tor daemon.
func NewHTTPClient(timeout time.Duration, socksProxy string) (*http.Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone() //nolint:forcetypeassert // DefaultTransport is always *http.Transport
	transport.MaxIdleConnsPerHost = 4

	if socksProxy != "" {
		if !isValidProxyAddress(socksProxy) {
			return nil, ErrInvalidProxyAddress
		}
		// nil auth: local SOCKS ports typically don't require it
		dialer, err := proxy.SOCKS5("tcp", socksProxy, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		transport.Proxy = nil
		transport.DialContext = dialContext(dialer)
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}, nil
}

// dialContext adapts a proxy.Dialer to http.Transport.DialContext.
func dialContext(d proxy.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	if cd, ok := d.(proxy.ContextDialer); ok {
		return cd.DialContext
	}
	return func(_ context.Context, network, addr string) (net.Conn, error) {
		return d.Dial(network, addr)
	}
}

// isValidProxyAddress checks for "host:port" with a port in 1..65535.
func isValidProxyAddress(address string) bool {
	parts := strings.Split(address, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}

	port := 0
	for _, c := range parts[1] {
		if c < '0' || c > '9' {
			return false
		}
		port = port*10 + int(c-'0')
		if port > 65535 {
			return false
		}
	}
	return port >= 1
}

// headerInjectingTransport adds the client headers to every request,
// including redirects, and logs each round trip at debug level.
type headerInjectingTransport struct {
	base      http.RoundTripper
	userAgent string
	logger    *slog.Logger
}

// RoundTrip implements http.RoundTripper.
func (t *headerInjectingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	requestID := uuid.NewString()
	clone.Header.Set("X-Request-ID", requestID)
	if t.userAgent != "" {
		clone.Header.Set("User-Agent", t.userAgent)
	}

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	start := time.Now()
	resp, err := base.RoundTrip(clone)
	elapsed := time.Since(start).Round(time.Millisecond)
	if err != nil {
		t.logger.Debug("api request failed",
			"method", clone.Method,
			"path", clone.URL.Path,
			"request_id", requestID,
			"elapsed", elapsed,
			"error", err)
		return nil, err
	}

	t.logger.Debug("api request",
		"method", clone.Method,
		"path", clone.URL.Path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"elapsed", elapsed)
	return resp, nil
}
