package middleware

import (
	"testing"
	"time"
)

func TestBucketRefillKeepsPartialWindow(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	b := newBucket(2, start)
	b.take(start, 2, time.Second)
	b.take(start, 2, time.Second)

	// 1.5 windows: one refill, and the half window carries over.
	now := start.Add(1500 * time.Millisecond)
	if !b.take(now, 2, time.Second) || !b.take(now, 2, time.Second) {
		t.Fatal("refill did not restore the bucket")
	}
	if b.take(now, 2, time.Second) {
		t.Fatal("bucket exceeded its size")
	}
	if want := start.Add(time.Second); !b.last.Equal(want) {
		t.Fatalf("last refill = %v, want %v", b.last, want)
	}
	if !b.take(start.Add(2*time.Second), 2, time.Second) {
		t.Fatal("carried half window was lost")
	}
}

func TestBucketZeroSizeNeverAllows(t *testing.T) {
	now := time.Now()
	b := newBucket(0, now)
	if b.take(now.Add(time.Hour), 0, time.Second) {
		t.Fatal("zero-size bucket allowed a message")
	}
}
