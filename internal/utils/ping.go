package utils

import (
	"fmt"
	"net"
	"net/url"
	"time"
)

const authzPingTimeout = 1500 * time.Millisecond

// PingService opens and closes a TCP connection to the host behind the
// given URL. A plain dial is enough here: health checks only need to know
// the dependency is listening, not that it answers HTTP.
func PingService(serviceURL string, timeout time.Duration) error {
	parsed, err := url.Parse(serviceURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	port := parsed.Port()
	if port == "" {
		if parsed.Scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}

	addr := net.JoinHostPort(parsed.Hostname(), port)
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	return conn.Close()
}

// PingAuthorizer checks that the Authorizer auth service is reachable.
func PingAuthorizer(authzURL string) error {
	return PingService(authzURL, authzPingTimeout)
}
