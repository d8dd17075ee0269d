// Package runner sequences one agent invocation: probe every target
// concurrently, diff against the persisted snapshot, decide whether to
// notify, and persist the new snapshot.
package runner

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/statuswatch/internal/diff"
	"github.com/hamed0406/statuswatch/internal/domain"
	"github.com/hamed0406/statuswatch/internal/probe"
	"github.com/hamed0406/statuswatch/internal/report"
	"github.com/hamed0406/statuswatch/internal/state"
)

type Runner struct {
	Logger        *zap.Logger
	Checker       probe.Checker
	Store         state.Store
	Notifier      report.Notifier
	Targets       []domain.Target
	SlowThreshold time.Duration
	ForceReport   bool

	// DNSClassify diagnoses transport-level failures; nil disables it.
	DNSClassify func(url string) string
}

// Run executes a single check-diff-notify-persist pass. Probe failures,
// notification failures, and save failures are all absorbed along the way;
// the only hard error is having nothing to monitor.
func (r *Runner) Run(ctx context.Context) error {
	if len(r.Targets) == 0 {
		return errors.New("no targets configured")
	}
	started := time.Now()

	prior := r.Store.Load()

	// Fan out one goroutine per target and join. Outcomes slot in by index
	// so configuration order survives the concurrency.
	outcomes := make([]domain.Outcome, len(r.Targets))
	var wg sync.WaitGroup
	for i, tgt := range r.Targets {
		wg.Add(1)
		go func(i int, t domain.Target) {
			defer wg.Done()
			outcomes[i] = r.probeOne(ctx, t)
		}(i, tgt)
	}
	wg.Wait()

	transitions := diff.Detect(outcomes, prior)

	notified := false
	switch {
	case r.ForceReport:
		// forced mode bypasses change gating entirely
		r.send(ctx, report.BuildFull(outcomes, started, time.Since(started)))
		notified = true
	case len(transitions) > 0:
		r.send(ctx, report.BuildChanges(transitions))
		notified = true
	}

	// The snapshot is written regardless of the notify decision.
	r.Store.Save(diff.NextSnapshot(outcomes))

	upCount := 0
	for _, o := range outcomes {
		if o.Up {
			upCount++
		}
	}
	r.Logger.Info("run_complete",
		zap.Int("targets", len(outcomes)),
		zap.Int("up", upCount),
		zap.Int("down", len(outcomes)-upCount),
		zap.Int("transitions", len(transitions)),
		zap.Bool("notified", notified),
		zap.Duration("elapsed", time.Since(started)),
	)
	return nil
}

func (r *Runner) probeOne(ctx context.Context, t domain.Target) domain.Outcome {
	res := r.Checker.Check(ctx, t)

	o := domain.Outcome{
		Target:     t,
		Up:         res.Success,
		HTTPStatus: res.StatusCode,
		Reason:     res.Message,
		CheckedAt:  time.Now().UTC(),
	}
	if res.Success {
		lat := res.LatencyMS
		o.LatencyMS = &lat
		o.Slow = r.SlowThreshold > 0 && lat > float64(r.SlowThreshold.Milliseconds())
	} else if res.StatusCode == 0 && r.DNSClassify != nil {
		// a resolving name tells the reader nothing about a transport failure
		if class := r.DNSClassify(t.URL); class != probe.DNSResolves {
			o.DNSClass = class
		}
	}

	r.Logger.Info("target_checked",
		zap.String("name", t.Name),
		zap.String("url", t.URL),
		zap.Bool("up", o.Up),
		zap.Int("status", o.HTTPStatus),
		zap.Float64("latency_ms", res.LatencyMS),
		zap.Bool("slow", o.Slow),
		zap.String("reason", o.Reason),
	)
	return o
}

// send is deliberately best-effort: a failed notification must never fail
// the run, so the error stops here with a warning.
func (r *Runner) send(ctx context.Context, msg string) {
	if r.Notifier == nil || msg == "" {
		return
	}
	if err := r.Notifier.Send(ctx, msg); err != nil {
		r.Logger.Warn("notify_failed", zap.Error(err))
	}
}
