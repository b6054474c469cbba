package middleware

import (
	"net/http"
	"sync"
	"time"
)

const sweepEvery = 5 * time.Minute

type visitor struct {
	connections int
	msgs        bucket
}

// IPRateLimiter caps simultaneous websocket connections and inbound message
// rate per client IP.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	opts     Options

	stop chan struct{}
	once sync.Once
}

type Options struct {
	MaxConnsPerIP int           // simultaneous websocket connections per IP
	MsgRate       int           // messages allowed per MsgWindow
	MsgWindow     time.Duration // token bucket refill period
	// TrustProxy honors X-Forwarded-For. Enable only behind a proxy that
	// overwrites the header.
	TrustProxy bool
	// Now overrides the clock; tests use it to refill buckets.
	Now func() time.Time
}

// NewIPRateLimiter creates a rate limiter and starts its janitor. Call
// Close to stop the janitor.
func NewIPRateLimiter(opts Options) *IPRateLimiter {
	if opts.MsgWindow <= 0 {
		opts.MsgWindow = time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	rl := &IPRateLimiter{
		visitors: make(map[string]*visitor),
		opts:     opts,
		stop:     make(chan struct{}),
	}
	go rl.janitor(sweepEvery)
	return rl
}

func (rl *IPRateLimiter) Close() {
	rl.once.Do(func() { close(rl.stop) })
}

// visitorLocked returns the entry for ip, creating one with a full bucket.
func (rl *IPRateLimiter) visitorLocked(ip string) *visitor {
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{msgs: newBucket(rl.opts.MsgRate, rl.opts.Now())}
		rl.visitors[ip] = v
	}
	return v
}

// ConnectAllowed reserves a connection slot for ip. The caller must release
// it with Disconnect.
func (rl *IPRateLimiter) ConnectAllowed(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	v := rl.visitorLocked(ip)
	if v.connections >= rl.opts.MaxConnsPerIP {
		return false
	}
	v.connections++
	return true
}

func (rl *IPRateLimiter) Disconnect(ip string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if v, ok := rl.visitors[ip]; ok && v.connections > 0 {
		v.connections--
	}
}

// Connections returns the tracked connection count for ip.
func (rl *IPRateLimiter) Connections(ip string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if v, ok := rl.visitors[ip]; ok {
		return v.connections
	}
	return 0
}

// MessageAllowed spends one message token for ip.
func (rl *IPRateLimiter) MessageAllowed(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.visitorLocked(ip).msgs.take(rl.opts.Now(), rl.opts.MsgRate, rl.opts.MsgWindow)
}

func (rl *IPRateLimiter) janitor(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stop:
			return
		}
	}
}

// sweep forgets visitors with no open connection.
func (rl *IPRateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, v := range rl.visitors {
		if v.connections == 0 {
			delete(rl.visitors, ip)
		}
	}
}

// RealIP is like the package RealIP but only honors X-Forwarded-For when
// the limiter trusts the proxy in front of it.
func (rl *IPRateLimiter) RealIP(r *http.Request) string {
	if !rl.opts.TrustProxy {
		return remoteHost(r)
	}
	return RealIP(r)
}
