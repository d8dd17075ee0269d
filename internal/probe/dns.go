package probe

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"time"
)

// DNS failure classes attached to transport-level probe failures. They
// distinguish "the name is gone" from "the resolver is struggling", which is
// the first question anyone asks about an unreachable target.
const (
	DNSResolves    = "RESOLVES"
	DNSNXDomain    = "NXDOMAIN"
	DNSNoARecord   = "NO_A_RECORD"
	DNSServFail    = "SERVFAIL_or_TIMEOUT"
	DNSInvalidName = "INVALID_NAME"
)

var dnsTimeout = 3 * time.Second

// ClassifyDNS resolves the host of a target URL and classifies the result.
// It uses the OS resolver and never returns an error: unknown outcomes
// collapse into the SERVFAIL class.
func ClassifyDNS(rawURL string) string {
	host := extractHost(rawURL)
	if host == "" {
		return DNSInvalidName
	}

	ctx, cancel := context.WithTimeout(context.Background(), dnsTimeout)
	defer cancel()
	r := &net.Resolver{}

	ips, err := r.LookupIP(ctx, "ip", host)
	if err == nil && len(ips) > 0 {
		return DNSResolves
	}

	class := DNSServFail
	if err != nil {
		var de *net.DNSError
		if errors.As(err, &de) {
			if de.IsNotFound {
				class = DNSNXDomain
			} else if de.IsTemporary || de.Timeout() {
				class = DNSServFail
			}
		}
	}

	// A delegated zone with no address records is a different failure than a
	// missing name.
	if class == DNSNXDomain {
		if ns, err := r.LookupNS(ctx, host); err == nil && len(ns) > 0 {
			class = DNSNoARecord
		}
	}
	return class
}

func extractHost(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return u.Hostname()
}
