package setpoint

import (
	"testing"

	"smartpan"
)

func TestStore_Current_ReturnsInitialBeforeAnyUpdate(t *testing.T) {
	s := NewStore(50)
	if got := s.Current(); got != 50 {
		t.Fatalf("Current() = %v, want 50", got)
	}
}

func TestStore_TryUpdate_SameValueIsNoop(t *testing.T) {
	s := NewStore(50)
	if s.TryUpdate(smartpan.SyncResult{TargetValue: 50}) {
		t.Fatalf("TryUpdate with equal value should return false")
	}
	if got := s.Current(); got != 50 {
		t.Fatalf("Current() changed to %v after noop update", got)
	}
}

func TestStore_TryUpdate_NewValueApplies(t *testing.T) {
	s := NewStore(50)
	if !s.TryUpdate(smartpan.SyncResult{TargetValue: 55}) {
		t.Fatalf("TryUpdate with new value should return true")
	}
	if got := s.Current(); got != 55 {
		t.Fatalf("Current() = %v, want 55", got)
	}
}

func TestStore_TryUpdate_NoRangeValidation(t *testing.T) {
	// The remote service is the source of truth; even implausible values apply.
	s := NewStore(50)
	if !s.TryUpdate(smartpan.SyncResult{TargetValue: -273.15}) {
		t.Fatalf("expected update to apply")
	}
	if got := s.Current(); got != -273.15 {
		t.Fatalf("Current() = %v, want -273.15", got)
	}
}
