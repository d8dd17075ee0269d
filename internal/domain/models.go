package domain

import "time"

// Target is one monitored HTTP endpoint with its expectations.
// Targets are built once from configuration and never mutated.
type Target struct {
	Name           string        `json:"name"`
	URL            string        `json:"url"`
	ExpectedStatus int           `json:"expected_status,omitempty"` // 0 = accept any 2xx/3xx
	BodySubstring  string        `json:"body_substring,omitempty"`  // "" = skip body check
	Timeout        time.Duration `json:"timeout"`
}

// Outcome is the result of probing a target once (after retries).
// Only Up survives across runs; everything else is produced fresh.
type Outcome struct {
	Target     Target    `json:"target"`
	Up         bool      `json:"up"`
	HTTPStatus int       `json:"http_status,omitempty"` // 0 = probe never completed
	LatencyMS  *float64  `json:"latency_ms,omitempty"`  // nil on failure
	Slow       bool      `json:"slow,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	DNSClass   string    `json:"dns_class,omitempty"` // set on transport-level failures
	CheckedAt  time.Time `json:"checked_at"`
}

// Snapshot maps a target URL to its last-known up/down state. The URL is the
// identity key: renaming a target keeps its state, changing its URL orphans it.
type Snapshot map[string]bool

type TransitionKind string

const (
	// InitialDown marks a target that is down on its very first recorded run.
	// There is no symmetric initial-up kind: a healthy first run stays silent.
	InitialDown TransitionKind = "initial-down"
	WentDown    TransitionKind = "went-down"
	Recovered   TransitionKind = "recovered"
)

// Transition is a detected up/down change since the previous run.
type Transition struct {
	Outcome    Outcome        `json:"outcome"`
	PreviousUp bool           `json:"previous_up"`
	Kind       TransitionKind `json:"kind"`
}
