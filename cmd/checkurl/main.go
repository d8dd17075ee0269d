package main

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hamed0406/statuswatch/internal/domain"
	"github.com/hamed0406/statuswatch/internal/probe"
)

// One-off probe of a single URL, for poking at a target before adding it to
// the config. Exit code follows the check result so it scripts cleanly.
func main() {
	raw := ""
	if len(os.Args) > 1 {
		raw = os.Args[1]
	} else {
		reader := bufio.NewReader(os.Stdin)
		fmt.Print("Enter a site URL to check (e.g., https://example.com): ")
		line, _ := reader.ReadString('\n')
		raw = strings.TrimSpace(line)
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		fmt.Fprintln(os.Stderr, "Invalid URL.")
		os.Exit(2)
	}

	chk := probe.NewHTTPChecker()
	out := chk.Check(context.Background(), domain.Target{
		Name:    raw,
		URL:     raw,
		Timeout: 10 * time.Second,
	})

	if out.Success {
		fmt.Printf("UP   %s (%d, %.0f ms)\n", raw, out.StatusCode, out.LatencyMS)
		return
	}

	fmt.Printf("DOWN %s (%s)\n", raw, out.Message)
	if out.StatusCode == 0 {
		fmt.Printf("DNS  %s\n", probe.ClassifyDNS(raw))
	}
	os.Exit(1)
}
