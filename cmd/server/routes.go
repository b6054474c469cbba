package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/vladimirvolkov/hoopshot/internal/records"
	"github.com/vladimirvolkov/hoopshot/internal/ws"
)

const contentSecurityPolicy = "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; " +
	"connect-src 'self' ws: wss:; img-src 'self' data:"

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy", contentSecurityPolicy)
		next.ServeHTTP(w, r)
	})
}

// noCache keeps browsers from holding on to a stale client bundle.
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json: %v", err)
	}
}

// routes builds the server's handler: the game socket, stats, the best
// record and the static client.
func routes(hub *ws.Hub, best func() records.Record, staticDir string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.HandleWS)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, hub.Stats())
	})
	mux.HandleFunc("GET /best", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, best())
	})
	mux.Handle("/", noCache(http.FileServer(http.Dir(staticDir))))
	return securityHeaders(mux)
}
