package records

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
)

// openTestManager points gdata at a throwaway home directory.
func openTestManager(t *testing.T) *gdata.Manager {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	m, err := gdata.Open(gdata.Config{AppName: fmt.Sprintf("hoopshot_test_%d", time.Now().UnixNano())})
	if err != nil {
		t.Skipf("gdata unavailable: %v", err)
	}
	return m
}

func TestMemoryStoreKeepsBest(t *testing.T) {
	s := New(nil)
	if score, holder := s.BestScore(); score != 0 || holder != "" {
		t.Fatalf("fresh store best = %d/%q", score, holder)
	}
	cases := []struct {
		holder string
		score  int
		want   bool
	}{
		{"ann", 4, true},
		{"bob", 3, false},
		{"cat", 4, false},
		{"", 7, true},
	}
	for _, tc := range cases {
		got, err := s.Submit(tc.holder, tc.score, tc.score, 0)
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if got != tc.want {
			t.Errorf("Submit(%q,%d) newBest = %v, want %v", tc.holder, tc.score, got, tc.want)
		}
	}
	r := s.Best()
	if r.Score != 7 || r.Holder != "anonymous" || r.Sessions != 4 {
		t.Fatalf("best = %+v", r)
	}
}

func TestStorePersistsAcrossOpen(t *testing.T) {
	m := openTestManager(t)
	s := New(m)
	s.now = func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }
	if _, err := s.Submit("ann", 6, 6, 2); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	reopened := New(m)
	r := reopened.Best()
	if r.Score != 6 || r.Holder != "ann" || r.Perfects != 2 || r.Sessions != 1 {
		t.Fatalf("reloaded best = %+v", r)
	}
	if !r.SetAt.Equal(s.now()) {
		t.Fatalf("setAt = %v", r.SetAt)
	}
}

func TestCorruptRecordStartsFresh(t *testing.T) {
	m := openTestManager(t)
	if err := m.SaveObjectProp(recordsObject, bestProperty, []byte("score: [")); err != nil {
		t.Fatal(err)
	}
	s := New(m)
	if r := s.Best(); r.Score != 0 {
		t.Fatalf("best = %+v, want empty", r)
	}
}

func TestConcurrentSubmit(t *testing.T) {
	s := New(nil)
	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			s.Submit(fmt.Sprintf("p%d", score), score, score, 0)
		}(i)
	}
	wg.Wait()
	if r := s.Best(); r.Score != 50 || r.Holder != "p50" || r.Sessions != 50 {
		t.Fatalf("best = %+v", r)
	}
}
