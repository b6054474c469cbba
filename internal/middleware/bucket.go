package middleware

import "time"

// bucket is a token bucket refilled in whole windows: every elapsed window
// restores size tokens, never exceeding size.
type bucket struct {
	tokens int
	last   time.Time
}

func newBucket(size int, now time.Time) bucket {
	return bucket{tokens: size, last: now}
}

func (b *bucket) refill(now time.Time, size int, window time.Duration) {
	elapsed := now.Sub(b.last)
	if elapsed < window {
		return
	}
	n := elapsed / window
	b.tokens = min(b.tokens+int(n)*size, size)
	b.last = b.last.Add(n * window)
}

// take spends one token if there is one.
func (b *bucket) take(now time.Time, size int, window time.Duration) bool {
	b.refill(now, size, window)
	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}
