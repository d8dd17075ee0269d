package main

import (
	"context"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/statuswatch/internal/config"
	"github.com/hamed0406/statuswatch/internal/logging"
	"github.com/hamed0406/statuswatch/internal/probe"
	"github.com/hamed0406/statuswatch/internal/report"
	"github.com/hamed0406/statuswatch/internal/runner"
	"github.com/hamed0406/statuswatch/internal/state"
)

// The agent runs once per scheduler tick (cron invokes this binary); it
// probes everything, notifies on transitions, persists state, and exits.
func main() {
	cfgPath := os.Getenv("CONFIG_FILE")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		// config is broken; still try to tell someone before dying
		fatal(nil, os.Getenv("WEBHOOK_URL"), err)
	}

	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		fatal(nil, cfg.WebhookURL, err)
	}
	defer logger.Sync()

	r := &runner.Runner{
		Logger: logger,
		Checker: &probe.RetryChecker{
			Inner:    probe.NewHTTPChecker(),
			Retries:  cfg.Retries,
			Cooldown: cfg.Cooldown,
		},
		Store:         state.NewFileStore(cfg.StateFile, logger),
		Notifier:      report.NewDiscord(cfg.WebhookURL),
		Targets:       cfg.MonitoredTargets(),
		SlowThreshold: cfg.SlowThreshold,
		ForceReport:   cfg.ForceReport,
		DNSClassify:   probe.ClassifyDNS,
	}

	if err := r.Run(context.Background()); err != nil {
		logger.Error("run_failed", zap.Error(err))
		fatal(logger, cfg.WebhookURL, err)
	}
}

// fatal sends one best-effort failure notification and exits non-zero.
func fatal(logger *zap.Logger, webhook string, err error) {
	if logger == nil {
		log.Println("fatal:", err)
	} else {
		_ = logger.Sync()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = report.NewDiscord(webhook).Send(ctx, "🚨 statuswatch run failed: "+err.Error())

	os.Exit(1)
}
