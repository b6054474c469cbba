package records

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	recordsObject = "records"
	bestProperty  = "best"
)

// Record is the best finished session seen so far.
type Record struct {
	Score    int       `yaml:"score" json:"score"`
	Holder   string    `yaml:"holder" json:"holder"`
	Made     int       `yaml:"made" json:"made"`
	Perfects int       `yaml:"perfects" json:"perfects"`
	Sessions int       `yaml:"sessions" json:"sessions"`
	SetAt    time.Time `yaml:"setAt" json:"setAt"`
}

// Store keeps the best score in gdata storage. With a nil manager it keeps
// the record in memory only. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	manager *gdata.Manager
	best    Record
	now     func() time.Time
}

// Open opens the gdata storage for appName. If storage is unavailable the
// store falls back to memory and the error is logged, not returned.
func Open(appName string) *Store {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[records] storage unavailable: %v (memory only)", err)
		m = nil
	}
	return New(m)
}

func New(m *gdata.Manager) *Store {
	s := &Store{manager: m, now: time.Now}
	if err := s.load(); err != nil {
		log.Printf("[records] load: %v (starting fresh)", err)
	}
	return s
}

func (s *Store) load() error {
	if s.manager == nil || !s.manager.ObjectPropExists(recordsObject, bestProperty) {
		return nil
	}
	data, err := s.manager.LoadObjectProp(recordsObject, bestProperty)
	if err != nil {
		return fmt.Errorf("failed to load record: %w", err)
	}
	var r Record
	if err := yaml.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("failed to unmarshal record: %w", err)
	}
	s.best = r
	return nil
}

func (s *Store) save() error {
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(s.best)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := s.manager.SaveObjectProp(recordsObject, bestProperty, data); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

// Best returns a copy of the current record.
func (s *Store) Best() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.best
}

func (s *Store) BestScore() (int, string) {
	r := s.Best()
	return r.Score, r.Holder
}

// Submit counts a finished session and keeps it if it beats the record.
// Ties keep the earlier holder.
func (s *Store) Submit(holder string, score, made, perfects int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.best.Sessions++
	newBest := score > s.best.Score
	if newBest {
		if holder == "" {
			holder = "anonymous"
		}
		s.best.Score = score
		s.best.Holder = holder
		s.best.Made = made
		s.best.Perfects = perfects
		s.best.SetAt = s.now().UTC()
		log.Printf("[records] new best %d by %s", score, holder)
	}
	return newBest, s.save()
}
