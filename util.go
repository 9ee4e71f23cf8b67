package main

import (
	"net"
	"net/http"

	"github.com/google/uuid"
)

// GenerateUUID returns a random v4 UUID string.
func GenerateUUID() string {
	return uuid.NewString()
}

// extractIP strips the port from an HTTP remote address.
func extractIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
