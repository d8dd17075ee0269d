package probe

import (
	"context"

	"github.com/hamed0406/statuswatch/internal/domain"
)

// CheckResult holds the outcome of a single probe attempt.
type CheckResult struct {
	Success    bool    `json:"success"`
	StatusCode int     `json:"status_code"` // 0 for transport errors and timeouts
	LatencyMS  float64 `json:"latency_ms,omitempty"`
	Message    string  `json:"message"`
}

// Checker performs a single check against a target.
type Checker interface {
	Check(ctx context.Context, t domain.Target) CheckResult
}
