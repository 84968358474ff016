package chat

import (
	"sync"
	"time"
)

// Scheduler runs delayed tasks tied to a session. Every task is held as
// a cancellable handle; closing a session cancels all of its outstanding
// tasks before the session state is released, so a stale timer can never
// mutate a newer run.
type Scheduler struct {
	mu     sync.Mutex
	nextID uint64
	timers map[string]map[uint64]*time.Timer
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{timers: make(map[string]map[uint64]*time.Timer)}
}

// Schedule runs fn after d, unless the task or its session is cancelled
// first. fn runs on the timer goroutine.
func (s *Scheduler) Schedule(sessionID string, d time.Duration, fn func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID

	timer := time.AfterFunc(d, func() {
		// Claim the handle first; a concurrent cancel wins or loses here.
		s.mu.Lock()
		session, ok := s.timers[sessionID]
		if ok {
			_, ok = session[id]
			delete(session, id)
		}
		s.mu.Unlock()
		if !ok {
			return
		}
		fn()
	})

	if s.timers[sessionID] == nil {
		s.timers[sessionID] = make(map[uint64]*time.Timer)
	}
	s.timers[sessionID][id] = timer
	s.mu.Unlock()
}

// CancelSession stops every outstanding task for a session.
func (s *Scheduler) CancelSession(sessionID string) {
	s.mu.Lock()
	session := s.timers[sessionID]
	delete(s.timers, sessionID)
	s.mu.Unlock()

	for _, timer := range session {
		timer.Stop()
	}
}

// Pending reports the number of outstanding tasks for a session.
func (s *Scheduler) Pending(sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers[sessionID])
}
