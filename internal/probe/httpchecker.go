package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hamed0406/statuswatch/internal/domain"
)

// maxBodyBytes bounds the body read when a substring expectation is set.
const maxBodyBytes = 1 << 20

type HTTPChecker struct {
	Client *http.Client
}

// NewHTTPChecker builds a checker whose per-check deadline comes from each
// target's own Timeout, not from a shared client timeout. Redirects are
// followed (the default client policy).
func NewHTTPChecker() *HTTPChecker {
	return &HTTPChecker{Client: &http.Client{}}
}

func (h *HTTPChecker) Check(ctx context.Context, t domain.Target) CheckResult {
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.URL, nil)
	if err != nil {
		return CheckResult{Success: false, Message: err.Error()}
	}

	resp, err := h.Client.Do(req)
	latency := time.Since(start).Seconds() * 1000 // ms
	if err != nil {
		return CheckResult{Success: false, Message: err.Error(), LatencyMS: latency}
	}
	defer resp.Body.Close()

	if !statusMatches(t, resp.StatusCode) {
		return CheckResult{
			Success:    false,
			StatusCode: resp.StatusCode,
			LatencyMS:  latency,
			Message:    resp.Status,
		}
	}

	// Only read the body when a substring expectation is configured.
	if t.BodySubstring != "" {
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		latency = time.Since(start).Seconds() * 1000
		if err != nil {
			return CheckResult{
				Success:    false,
				StatusCode: resp.StatusCode,
				LatencyMS:  latency,
				Message:    "body read: " + err.Error(),
			}
		}
		if !strings.Contains(strings.ToLower(string(body)), strings.ToLower(t.BodySubstring)) {
			return CheckResult{
				Success:    false,
				StatusCode: resp.StatusCode,
				LatencyMS:  latency,
				Message:    fmt.Sprintf("body missing %q", t.BodySubstring),
			}
		}
	}

	return CheckResult{
		Success:    true,
		StatusCode: resp.StatusCode,
		LatencyMS:  latency,
		Message:    resp.Status,
	}
}

func statusMatches(t domain.Target, code int) bool {
	if t.ExpectedStatus != 0 {
		return code == t.ExpectedStatus
	}
	return code >= 200 && code < 400
}
