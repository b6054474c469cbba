package middleware

import (
	"net"
	"net/http"
	"strings"
)

// RealIP extracts the client IP from the request.
// Checks X-Forwarded-For (reverse proxies) then RemoteAddr.
func RealIP(r *http.Request) string {
	if ip := forwardedFor(r); ip != "" {
		return ip
	}
	return remoteHost(r)
}

// forwardedFor returns the left-most X-Forwarded-For entry.
func forwardedFor(r *http.Request) string {
	first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
	return strings.TrimSpace(first)
}

func remoteHost(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
