package metrics

import (
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"time"
)

// RecordAPICall records backend API call metrics consistently
// method: HTTP method
// route: normalized request path (e.g., "/products/:id/")
// statusCode: response status (0 if no response was received)
// duration: time taken for the round trip
// err: transport error (nil if a response was received)
func RecordAPICall(method, route string, statusCode int, duration time.Duration, err error) {
	APICalls.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	APIDuration.WithLabelValues(method, route).Observe(float64(duration.Milliseconds()))

	if err != nil || statusCode >= 400 {
		APIErrors.WithLabelValues(route, ClassifyAPIError(statusCode, err)).Inc()
	}
}

// ClassifyAPIError categorizes backend API errors for metrics
func ClassifyAPIError(statusCode int, err error) string {
	if err != nil {
		var netErr net.Error
		switch {
		case errors.Is(err, context.Canceled):
			return "canceled"
		case errors.Is(err, context.DeadlineExceeded):
			return "timeout"
		case errors.As(err, &netErr) && netErr.Timeout():
			return "timeout"
		}

		errStr := strings.ToLower(err.Error())
		switch {
		case strings.Contains(errStr, "timeout"):
			return "timeout"
		case strings.Contains(errStr, "no such host"):
			return "dns"
		case strings.Contains(errStr, "connection"):
			return "connection"
		case strings.Contains(errStr, "tls"):
			return "tls"
		default:
			return "network"
		}
	}

	switch {
	case statusCode == 400:
		return "bad_request"
	case statusCode == 401:
		return "unauthorized"
	case statusCode == 403:
		return "forbidden"
	case statusCode == 404:
		return "not_found"
	case statusCode == 429:
		return "rate_limited"
	case statusCode >= 500:
		return "server_error"
	case statusCode >= 400:
		return "client_error"
	default:
		return "unknown"
	}
}
