package service

import (
	"sync"
	"time"

	"smartpan"
)

// MonitoringService holds the latest loop snapshot in memory. The loop is the
// single writer; HTTP handlers and websocket writers read concurrently.
type MonitoringService struct {
	mu            sync.RWMutex
	snap          smartpan.StateSnapshot
	initialTarget float64
}

func NewMonitoringService(initialTarget float64) *MonitoringService {
	return &MonitoringService{initialTarget: initialTarget}
}

// Publish replaces the snapshot wholesale; the loop passes a fresh copy each
// tick so readers never observe a partially updated state.
func (s *MonitoringService) Publish(snap smartpan.StateSnapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// GetState returns the latest snapshot, or a baseline one before the first
// tick has been published.
func (s *MonitoringService) GetState() smartpan.StateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap.UpdatedAt.IsZero() {
		return s.baselineSnapshot()
	}
	return s.snap
}

// baselineSnapshot is what the API serves while the loop is still in its
// boot self-test.
func (s *MonitoringService) baselineSnapshot() smartpan.StateSnapshot {
	return smartpan.StateSnapshot{
		TargetC:   s.initialTarget,
		Band:      smartpan.BandNormal,
		Link:      smartpan.LinkDisconnected.String(),
		UpdatedAt: time.Now().UTC(),
	}
}
