package server

import (
	"sync"
	"time"
)

// ServingState tracks which file answers the root path and the modification
// time it was last confirmed with. One instance is shared between the watcher
// goroutine and every request handler; all access goes through the mutex, so
// a reader can never observe the name of one file paired with the timestamp
// of another. The zero value is ready to use.
type ServingState struct {
	mu      sync.Mutex
	current string
	modTime time.Time
}

// Current returns the selected filename and its last observed modification
// time as one consistent pair. The name is empty until the first Swap.
func (s *ServingState) Current() (string, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.modTime
}

// Swap records a version switch. Both fields change together so the pair
// always refers to a single file.
func (s *ServingState) Swap(name string, mod time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = name
	s.modTime = mod
}

// Touch refreshes the modification time of the file already selected.
func (s *ServingState) Touch(mod time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modTime = mod
}
