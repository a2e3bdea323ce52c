package repository_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"smartpan"
	"smartpan/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestEventSQLite_Append_FillsIDAndTimestamp(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := repository.NewEventSQLite(db)

	isNonEmptyString := sqlmockArgumentFunc(func(v driver.Value) bool {
		s, ok := v.(string)
		return ok && s != ""
	})
	isTimestampString := sqlmockArgumentFunc(func(v driver.Value) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		_, perr := time.Parse("2006-01-02 15:04:05", s)
		return perr == nil
	})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO device_events")).
		WithArgs(
			isNonEmptyString,  // generated uuid
			isTimestampString, // formatted occurred_at
			"TARGET_UPDATE",
			"Target temperature updated from remote",
			sqlmock.AnyArg(), // meta
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	ev := smartpan.DeviceEvent{
		Type:        "target_update ", // normalized to upper/trimmed
		Description: "Target temperature updated from remote",
		Metadata:    map[string]any{"target_c": 55.0},
	}
	if err := repo.Append(context.Background(), ev); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEventSQLite_Append_ExecErrorIsPropagated(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := repository.NewEventSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO device_events")).
		WillReturnError(errors.New("db down"))

	if err := repo.Append(context.Background(), smartpan.DeviceEvent{Type: "SYNC_ERROR"}); err == nil {
		t.Fatalf("Append() expected error, got nil")
	}
}

func TestEventSQLite_List_BuildsFiltersAndUnmarshalsMeta(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := repository.NewEventSQLite(db)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)

	cols := []string{"id", "occurred_at", "type", "message", "meta"}
	rows := sqlmock.NewRows(cols).
		AddRow("ev-1", from.Add(time.Hour), "TARGET_UPDATE", "Target temperature updated from remote", `{"target_c":55}`).
		AddRow("ev-2", from.Add(2*time.Hour), "TARGET_UPDATE", "Target temperature updated from remote", nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, occurred_at, type, message, meta FROM device_events")).
		WithArgs(from, to, "TARGET_UPDATE").
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), from, to, "target_update")
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List() returned %d events, want 2", len(got))
	}
	meta, ok := got[0].Metadata.(map[string]any)
	if !ok {
		t.Fatalf("expected decoded metadata map, got %T", got[0].Metadata)
	}
	if meta["target_c"] != 55.0 {
		t.Fatalf("metadata target_c = %v, want 55", meta["target_c"])
	}
	if got[1].Metadata != nil {
		t.Fatalf("expected nil metadata for NULL column, got %v", got[1].Metadata)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEventSQLite_List_NoFiltersSelectsAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := repository.NewEventSQLite(db)

	cols := []string{"id", "occurred_at", "type", "message", "meta"}
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, occurred_at, type, message, meta FROM device_events ORDER BY occurred_at ASC")).
		WillReturnRows(sqlmock.NewRows(cols))

	got, err := repo.List(context.Background(), time.Time{}, time.Time{}, "")
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("List() returned %d events, want 0", len(got))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
