package store

import (
	"sync"
	"time"

	"ccgrid/bank"
	"ccgrid/debug"
)

// Saver debounces bank writes. Each Schedule call replaces the pending
// snapshot and restarts the delay timer, so a burst of edits collapses into
// one write of the newest data. The pending slot is the only state shared
// between the UI loop and the timer goroutine, guarded by the mutex.
type Saver struct {
	repo  Repository
	delay time.Duration

	mu      sync.Mutex
	pending map[string]bank.Bank
	timer   *time.Timer
}

// NewSaver creates a saver writing through repo after delay of quiet time.
func NewSaver(repo Repository, delay time.Duration) *Saver {
	return &Saver{repo: repo, delay: delay}
}

// Schedule records banks as the newest pending snapshot and (re)starts the
// debounce timer. Snapshots are immutable, so no copy is taken.
func (s *Saver) Schedule(banks map[string]bank.Bank) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = banks
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.fire)
}

func (s *Saver) fire() {
	s.write(s.take())
}

// Flush cancels the timer and writes any pending snapshot synchronously.
// Called on shutdown so the last edit is never lost.
func (s *Saver) Flush() {
	s.write(s.take())
}

// take claims the pending snapshot, leaving the slot empty. At most one
// caller gets any given snapshot, so there is never more than one writer.
func (s *Saver) take() map[string]bank.Bank {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	pending := s.pending
	s.pending = nil
	return pending
}

func (s *Saver) write(banks map[string]bank.Bank) {
	if banks == nil {
		return
	}
	if err := s.repo.SaveBanks(banks); err != nil {
		debug.Log("store", "save failed: %v", err)
	}
}
