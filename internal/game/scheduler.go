package game

import (
	"sort"
	"sync"
	"time"
)

// Clock supplies the session's notion of now.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the monotonic wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a controllable clock for tests and replays.
type ManualClock struct {
	mu  sync.RWMutex
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// TaskKey identifies a deferred task. At most one task per key is pending.
type TaskKey string

const (
	taskReset        TaskKey = "reset"
	taskPerfectClear TaskKey = "perfect-clear"
	taskAnnounce     TaskKey = "announce-clear"
	taskCountdown    TaskKey = "countdown"
)

type task struct {
	key TaskKey
	at  time.Time
	seq uint64
	fn  func()
}

// Scheduler is a deferred task queue drained from the tick. It is not safe
// for concurrent use; the owning session confines it to one goroutine.
type Scheduler struct {
	tasks map[TaskKey]*task
	seq   uint64
}

func NewScheduler() *Scheduler {
	return &Scheduler{tasks: make(map[TaskKey]*task)}
}

// Schedule registers fn to run at or after at, superseding any pending
// task with the same key.
func (s *Scheduler) Schedule(key TaskKey, at time.Time, fn func()) {
	s.seq++
	s.tasks[key] = &task{key: key, at: at, seq: s.seq, fn: fn}
}

func (s *Scheduler) Cancel(key TaskKey) {
	delete(s.tasks, key)
}

func (s *Scheduler) Pending(key TaskKey) bool {
	_, ok := s.tasks[key]
	return ok
}

func (s *Scheduler) Len() int { return len(s.tasks) }

// Clear drops every pending task.
func (s *Scheduler) Clear() {
	clear(s.tasks)
}

// Run executes every task due at or before now, oldest deadline first.
// A task may schedule further tasks; those run on a later call.
func (s *Scheduler) Run(now time.Time) int {
	var due []*task
	for _, t := range s.tasks {
		if !t.at.After(now) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return 0
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	ran := 0
	for _, t := range due {
		// an earlier task may have cancelled or replaced this one
		if cur, ok := s.tasks[t.key]; !ok || cur != t {
			continue
		}
		delete(s.tasks, t.key)
		t.fn()
		ran++
	}
	return ran
}
