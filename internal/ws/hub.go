package ws

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/coder/websocket"
	"github.com/vladimirvolkov/hoopshot/internal/middleware"
)

const (
	defaultMaxSessions = 100
	// Client frames carry a launch or a ping, never more.
	readLimit = 1024
)

// SessionCreator starts a game for a freshly accepted connection. It must
// not block; the returned channel closes when the game ends.
type SessionCreator interface {
	CreateSession(conn *Conn) <-chan struct{}
}

// HubStats holds live server metrics.
type HubStats struct {
	ActiveSessions   int64  `json:"activeSessions"`
	TotalConnections uint64 `json:"totalConnections"`
	TotalSessions    uint64 `json:"totalSessions"`
	Rejected         uint64 `json:"rejected"`
}

type HubOptions struct {
	OriginPatterns []string
	MaxSessions    int
	// DefaultCodec is used when the client does not pass ?codec=.
	DefaultCodec Codec
}

// Hub accepts websocket clients and hands each one a single-player session.
type Hub struct {
	creator SessionCreator
	limiter *middleware.IPRateLimiter
	opts    HubOptions

	nextID           atomic.Uint64
	active           atomic.Int64
	totalConnections atomic.Uint64
	totalSessions    atomic.Uint64
	rejected         atomic.Uint64

	wg sync.WaitGroup
}

func NewHub(creator SessionCreator, limiter *middleware.IPRateLimiter, opts HubOptions) *Hub {
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = defaultMaxSessions
	}
	if opts.DefaultCodec == nil {
		opts.DefaultCodec = JSON
	}
	return &Hub{creator: creator, limiter: limiter, opts: opts}
}

func (h *Hub) Stats() HubStats {
	return HubStats{
		ActiveSessions:   h.active.Load(),
		TotalConnections: h.totalConnections.Load(),
		TotalSessions:    h.totalSessions.Load(),
		Rejected:         h.rejected.Load(),
	}
}

// Wait blocks until every session started by the hub has ended.
func (h *Hub) Wait() {
	h.wg.Wait()
}

// clientIP resolves the caller's address the way the limiter does, so that
// connection counting and message limits agree on the key.
func (h *Hub) clientIP(r *http.Request) string {
	if h.limiter != nil {
		return h.limiter.RealIP(r)
	}
	return middleware.RealIP(r)
}

func (h *Hub) release(ip string) {
	if h.limiter != nil {
		h.limiter.Disconnect(ip)
	}
}

func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ip := h.clientIP(r)
	if h.limiter != nil && !h.limiter.ConnectAllowed(ip) {
		h.rejected.Add(1)
		http.Error(w, "too many connections", http.StatusTooManyRequests)
		return
	}

	codec, err := h.requestCodec(r)
	if err != nil {
		h.release(ip)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sock, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.opts.OriginPatterns})
	if err != nil {
		h.release(ip)
		log.Printf("ws accept error: %v", err)
		return
	}
	sock.SetReadLimit(readLimit)

	total := h.totalConnections.Add(1)
	conn := NewConn(sock, fmt.Sprintf("session-%d", h.nextID.Add(1)), ip, codec, h.limiter)
	conn.Nickname = sanitizeNickname(r.URL.Query().Get("name"))
	log.Printf("new connection: %s [%s] from %s codec=%s (total: %d)", conn.ID, conn.Nickname, ip, codec.Name(), total)

	// The writer outlives the request context.
	go conn.WriteLoop(context.Background())

	if h.acquire() {
		h.run(conn)
	} else {
		h.rejected.Add(1)
		log.Printf("max sessions reached, rejecting %s", conn.ID)
		conn.CloseWith(websocket.StatusTryAgainLater, "server full")
	}

	<-conn.Done()
	h.release(ip)
	log.Printf("connection closed: %s", conn.ID)
}

func (h *Hub) requestCodec(r *http.Request) (Codec, error) {
	name := r.URL.Query().Get("codec")
	if name == "" {
		return h.opts.DefaultCodec, nil
	}
	return CodecByName(name)
}

// acquire reserves a session slot.
func (h *Hub) acquire() bool {
	for {
		n := h.active.Load()
		if n >= int64(h.opts.MaxSessions) {
			return false
		}
		if h.active.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

func (h *Hub) run(conn *Conn) {
	h.totalSessions.Add(1)
	h.wg.Add(1)
	done := h.creator.CreateSession(conn)
	go func() {
		defer h.wg.Done()
		<-done
		left := h.active.Add(-1)
		log.Printf("%s session ended (active: %d)", conn.ID, left)
	}()
}
