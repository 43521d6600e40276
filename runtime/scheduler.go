package runtime

import (
	"frog-pond/domain"
	"sync"
	"time"
)

type pendingReversion struct {
	timer *time.Timer
	gen   uint64
}

// Scheduler runs one delayed callback per frog.
// Scheduling again for the same frog cancels the pending callback.
type Scheduler struct {
	mu      sync.Mutex
	pending map[domain.FrogID]pendingReversion
	gen     uint64
	stopped bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{pending: make(map[domain.FrogID]pendingReversion)}
}

// Schedule runs fn after the delay unless it is replaced or cancelled first.
func (s *Scheduler) Schedule(id domain.FrogID, after time.Duration, fn func()) {
	s.ScheduleToken(id, after, func(token uint64) {
		if s.Claim(id, token) {
			fn()
		}
	})
}

// ScheduleToken hands the callback the token of its reversion.
// The callback must Claim the token before acting: a callback that fired
// while a newer reversion was being scheduled is stale and its claim fails.
// Claiming under the same lock that guards Schedule calls closes that window.
func (s *Scheduler) ScheduleToken(id domain.FrogID, after time.Duration, fn func(token uint64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if p, ok := s.pending[id]; ok {
		p.timer.Stop()
	}
	s.gen++
	gen := s.gen
	timer := time.AfterFunc(after, func() {
		if !s.current(id, gen) {
			return
		}
		fn(gen)
	})
	s.pending[id] = pendingReversion{timer: timer, gen: gen}
}

// Claim removes the pending reversion of a frog if token is still the current one.
func (s *Scheduler) Claim(id domain.FrogID, token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.pending[id]
	if !ok || current.gen != token {
		return false
	}
	delete(s.pending, id)
	return true
}

func (s *Scheduler) current(id domain.FrogID, token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.pending[id]
	return ok && current.gen == token
}

// Cancel drops the pending callback of a frog. Returns false if there was none.
func (s *Scheduler) Cancel(id domain.FrogID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[id]
	if !ok {
		return false
	}
	p.timer.Stop()
	delete(s.pending, id)
	return true
}

func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Stop cancels everything and refuses new callbacks.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for id, p := range s.pending {
		p.timer.Stop()
		delete(s.pending, id)
	}
}
