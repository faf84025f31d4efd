package github

import (
	"net/http"
	"time"

	"github.com/KOFI-GYIMAH/gh-explorer/pkg/logger"
)

// LoggingMiddleware records each outbound request at debug level. It does not alter the
// request or the response.
func LoggingMiddleware(next http.RoundTripper) http.RoundTripper {
	return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		start := time.Now()

		resp, err := next.RoundTrip(req)
		if err != nil {
			logger.Debug("%s %s failed after %s: %v", req.Method, req.URL.Redacted(), time.Since(start), err)
			return nil, err
		}

		logger.Debug("%s %s %d %s", req.Method, req.URL.Redacted(), resp.StatusCode, time.Since(start))
		return resp, nil
	})
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
