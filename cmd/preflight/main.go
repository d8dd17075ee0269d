// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"
)

// Preflight for the cron entry: catches the common misconfigurations before
// the first scheduled run fires.
func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfgFile := strings.TrimSpace(os.Getenv("CONFIG_FILE"))
	checkURLs := strings.TrimSpace(os.Getenv("CHECK_URLS"))
	webhook := strings.TrimSpace(os.Getenv("WEBHOOK_URL"))
	stateFile := strings.TrimSpace(os.Getenv("STATE_FILE"))
	force := strings.TrimSpace(os.Getenv("FORCE_REPORT"))

	if cfgFile == "" && checkURLs == "" {
		if _, err := os.Stat("config.yaml"); err != nil {
			fail("no CONFIG_FILE, no CHECK_URLS, no ./config.yaml — nothing would be monitored.")
		}
		ok("targets from ./config.yaml")
	} else if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err != nil {
			warn("CONFIG_FILE=" + cfgFile + " does not exist; only CHECK_URLS targets will run.")
		} else {
			ok("CONFIG_FILE=" + cfgFile)
		}
	}

	if checkURLs != "" {
		if strings.Contains(checkURLs, " ,") || strings.Contains(checkURLs, ", ") {
			warn("CHECK_URLS contains spaces around commas; they are tolerated but untidy.")
		}
		ok("CHECK_URLS has " + fmt.Sprint(len(strings.Split(checkURLs, ","))) + " entry/entries")
	}

	if webhook == "" {
		warn("WEBHOOK_URL empty — notifications are disabled, transitions go to logs only.")
	} else if !strings.HasPrefix(webhook, "https://") {
		warn("WEBHOOK_URL is not https; most webhook providers require it.")
	} else {
		ok("WEBHOOK_URL present")
	}

	if stateFile == "" {
		warn("STATE_FILE empty; default state/statuswatch.json will be used.")
	} else {
		ok("STATE_FILE=" + stateFile)
	}

	if force != "" && force != "true" && force != "false" && force != "1" && force != "0" {
		warn("FORCE_REPORT=" + force + " is not a boolean; it will read as false.")
	}

	ok("preflight passed")
}
