package setpoint

import (
	"sync"

	"smartpan"
)

// Store owns the target temperature. Only the control loop writes it (from a
// validated fetch result); the diagnostics API reads it concurrently, so
// access goes through a RWMutex. The value is seeded from config on every
// boot and is not persisted across restarts.
type Store struct {
	mu    sync.RWMutex
	value float64
}

func NewStore(initial float64) *Store {
	return &Store{value: initial}
}

// Current returns the most recently accepted target, or the initial value if
// no remote update has ever been accepted.
func (s *Store) Current() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// TryUpdate applies the fetched value only when it differs from the current
// one and reports whether a change occurred. No range validation is done:
// the remote service is the source of truth for the target.
func (s *Store) TryUpdate(res smartpan.SyncResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if res.TargetValue == s.value {
		return false
	}
	s.value = res.TargetValue
	return true
}
