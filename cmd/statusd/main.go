package main

import (
	"log"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/hamed0406/statuswatch/internal/config"
	"github.com/hamed0406/statuswatch/internal/httpapi"
	"github.com/hamed0406/statuswatch/internal/logging"
	"github.com/hamed0406/statuswatch/internal/state"
)

// statusd serves the agent's persisted snapshot as a small read-only API.
func main() {
	cfgPath := os.Getenv("CONFIG_FILE")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	store := state.NewFileStore(cfg.StateFile, logger)
	api := httpapi.NewServer(logger, store)

	logger.Info("statusd_listen", zap.String("addr", cfg.StatusAddr))
	if err := http.ListenAndServe(cfg.StatusAddr, api.Router()); err != nil {
		log.Fatal(err)
	}
}
