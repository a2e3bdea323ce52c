package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartpan"
)

// fakeEventRepo is a minimal stub that satisfies repository.EventRepo.
type fakeEventRepo struct {
	gotFrom time.Time
	gotTo   time.Time
	gotType string

	events []smartpan.DeviceEvent
	err    error

	calls int
}

func (f *fakeEventRepo) List(ctx context.Context, from, to time.Time, typ string) ([]smartpan.DeviceEvent, error) {
	f.calls++
	f.gotFrom = from
	f.gotTo = to
	f.gotType = typ
	return f.events, f.err
}

func (f *fakeEventRepo) Append(ctx context.Context, e smartpan.DeviceEvent) error {
	return nil
}

func TestEventLogService_List_NormalizesFilter(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := NewEventLogService(repo)

	loc := time.FixedZone("UTC+5", 5*3600)
	from := time.Date(2026, 8, 1, 10, 0, 0, 0, loc)
	to := time.Date(2026, 8, 2, 10, 0, 0, 0, loc)

	_, err := svc.List(context.Background(), LogFilter{From: from, To: to, Type: "  link_up "})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("repo called %d times, want 1", repo.calls)
	}
	if repo.gotFrom.Location() != time.UTC || repo.gotTo.Location() != time.UTC {
		t.Fatalf("times not normalized to UTC: %v / %v", repo.gotFrom, repo.gotTo)
	}
	if repo.gotType != "LINK_UP" {
		t.Fatalf("type = %q, want LINK_UP", repo.gotType)
	}
}

func TestEventLogService_List_RejectsInvertedRange(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := NewEventLogService(repo)

	from := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.List(context.Background(), LogFilter{From: from, To: to})
	if err == nil {
		t.Fatalf("expected error for inverted range")
	}
	if repo.calls != 0 {
		t.Fatalf("repo must not be called on invalid filter")
	}
}

func TestEventLogService_List_PropagatesRepoError(t *testing.T) {
	repo := &fakeEventRepo{err: errors.New("db down")}
	svc := NewEventLogService(repo)

	_, err := svc.List(context.Background(), LogFilter{})
	if err == nil {
		t.Fatalf("expected repo error, got nil")
	}
}
