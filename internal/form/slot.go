package form

import (
	"sync"
	"time"
)

// Slot holds the most recently saved submission. A later Save replaces the
// earlier one.
type Slot struct {
	mu      sync.RWMutex
	sub     Submission
	savedAt time.Time
	ok      bool
}

// Save stores a copy of sub.
func (s *Slot) Save(sub Submission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sub = sub.Clone()
	s.savedAt = time.Now()
	s.ok = true
}

// Load returns a copy of the saved submission and when it was saved.
func (s *Slot) Load() (Submission, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ok {
		return Submission{}, time.Time{}, false
	}
	return s.sub.Clone(), s.savedAt, true
}

// Clear empties the slot.
func (s *Slot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sub = Submission{}
	s.savedAt = time.Time{}
	s.ok = false
}
