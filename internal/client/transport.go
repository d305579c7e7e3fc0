package client

import (
	"net/http"
	"strings"
	"time"

	"github.com/devilmonastery/warehouse/internal/pkg/metrics"
)

// metricsTransport wraps an http.RoundTripper to collect metrics on warehouse API calls
type metricsTransport struct {
	base http.RoundTripper
}

// NewMetricsTransport creates a transport wrapper that records every round trip.
// A nil base uses http.DefaultTransport.
func NewMetricsTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &metricsTransport{base: base}
}

// RoundTrip implements http.RoundTripper
func (t *metricsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	duration := time.Since(start)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}

	metrics.RecordAPICall(req.Method, normalizeRoute(req.URL.Path), statusCode, duration, err)
	return resp, err
}

// normalizeRoute replaces numeric path segments with :id so metrics stay low cardinality
func normalizeRoute(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if seg != "" && strings.Trim(seg, "0123456789") == "" {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}
