package httpclient

import (
	"net/http"
	"time"

	"github.com/FinFellows/Server/internal/logger"
)

// LoggingTransport logs every outbound request and its response status.
// Bodies are never logged; they can carry tokens.
type LoggingTransport struct {
	Base http.RoundTripper
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	start := time.Now()
	resp, err := base.RoundTrip(req)
	elapsed := time.Since(start)

	if err != nil {
		logger.Error("outbound request failed", map[string]any{
			"method":     req.Method,
			"url":        req.URL.String(),
			"elapsed_ms": elapsed.Milliseconds(),
			"error":      err.Error(),
		})
		return nil, err
	}

	logger.Info("outbound request", map[string]any{
		"method":     req.Method,
		"url":        req.URL.String(),
		"status":     resp.StatusCode,
		"elapsed_ms": elapsed.Milliseconds(),
	})

	return resp, nil
}

// New returns an http.Client with the logging transport and the given
// timeout applied.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &LoggingTransport{},
	}
}
