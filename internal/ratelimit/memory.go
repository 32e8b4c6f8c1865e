package ratelimit

import (
	"context"
	"sync"
	"time"
)

const sweepInterval = 5 * time.Minute

type window struct {
	count   int
	resetAt time.Time
}

// MemoryStore is the process-local fallback tier. State is not shared across
// instances and is lost on restart, so it is only selected outside
// production.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window

	now  func() time.Time
	done chan struct{}
}

// NewMemoryStore creates the store and starts a sweep loop that drops expired
// windows so the map cannot grow without bound. Call Close to stop the loop.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		windows: make(map[string]*window),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go s.sweepLoop()
	return s
}

func (s *MemoryStore) Check(_ context.Context, identifier string) (Result, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[identifier]
	if !ok || now.After(w.resetAt) {
		w = &window{count: 1, resetAt: now.Add(Window)}
		s.windows[identifier] = w
		return s.result(true, w), nil
	}

	if w.count >= Limit {
		return s.result(false, w), nil
	}

	w.count++
	return s.result(true, w), nil
}

func (s *MemoryStore) result(allowed bool, w *window) Result {
	remaining := Limit - w.count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   allowed,
		Remaining: remaining,
		Reset:     w.resetAt.Unix(),
		Source:    SourceMemory,
	}
}

// Close stops the sweep loop.
func (s *MemoryStore) Close() {
	close(s.done)
}

func (s *MemoryStore) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.done:
			return
		}
	}
}

func (s *MemoryStore) sweep() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, w := range s.windows {
		if now.After(w.resetAt) {
			delete(s.windows, id)
		}
	}
}
